package arena

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openduel/arena/internal/game/geom"
)

// yamlArenaFile is the top-level YAML structure for arena files.
type yamlArenaFile struct {
	Arena yamlArena `yaml:"arena"`
}

// yamlArena is the YAML representation of an arena.
type yamlArena struct {
	Name         string      `yaml:"name"`
	HalfSize     float64     `yaml:"half_size"`
	MinY         float64     `yaml:"min_y"`
	MaxY         float64     `yaml:"max_y"`
	BulletSpeed  float64     `yaml:"bullet_speed"`
	BulletDamage int         `yaml:"bullet_damage"`
	HitRadius    float64     `yaml:"hit_radius"`
	Spawns       []yamlSpawn `yaml:"spawns"`
}

// yamlSpawn is the YAML representation of a spawn point.
type yamlSpawn struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// LoadFromFile reads and validates a single arena YAML file.
//
// Precondition: path must point to a valid YAML arena file.
// Postcondition: Returns a validated Arena or a non-nil error.
func LoadFromFile(path string) (*Arena, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading arena file %s: %w", path, err)
	}
	a, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("arena file %s: %w", path, err)
	}
	return a, nil
}

// LoadFromBytes parses and validates an arena from YAML bytes.
//
// Postcondition: Returns a validated Arena or a non-nil error.
func LoadFromBytes(data []byte) (*Arena, error) {
	var file yamlArenaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing arena YAML: %w", err)
	}

	a := convertYAMLArena(file.Arena)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func convertYAMLArena(y yamlArena) *Arena {
	a := &Arena{
		Name:         y.Name,
		HalfSize:     y.HalfSize,
		MinY:         y.MinY,
		MaxY:         y.MaxY,
		BulletSpeed:  y.BulletSpeed,
		BulletDamage: y.BulletDamage,
		HitRadius:    y.HitRadius,
	}
	for _, s := range y.Spawns {
		a.Spawns = append(a.Spawns, geom.Vec3{X: s.X, Y: s.Y, Z: s.Z})
	}
	return a
}
