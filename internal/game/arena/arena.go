// Package arena defines the playfield geometry and combat tuning for a match.
// Definitions are loaded from YAML content files, with a built-in default used
// when no file is configured.
package arena

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openduel/arena/internal/game/geom"
)

// Arena describes the playfield bounds, spawn points, and combat tuning
// applied to every match fought in it.
type Arena struct {
	// Name is a human-readable identifier for logging.
	Name string
	// HalfSize is the arena half-extent on the X and Z axes. A bullet whose
	// |x| or |z| exceeds it is out of bounds.
	HalfSize float64
	// MinY and MaxY are the vertical bounds for bullets.
	MinY float64
	MaxY float64
	// BulletSpeed is the per-tick displacement multiplier applied to a
	// bullet's direction vector. Directions are used as supplied by the
	// client and never renormalized, so a non-unit direction changes the
	// effective speed.
	BulletSpeed float64
	// BulletDamage is subtracted from a participant's health per hit.
	BulletDamage int
	// HitRadius is the point-sphere hit test threshold.
	HitRadius float64
	// Spawns are the seat positions assigned in join order at match start.
	Spawns []geom.Vec3
}

// Default returns the stock arena used when no definition file is configured.
// The numbers mirror the reference client's expectations.
func Default() *Arena {
	return &Arena{
		Name:         "default",
		HalfSize:     18,
		MinY:         -5,
		MaxY:         20,
		BulletSpeed:  0.3,
		BulletDamage: 10,
		HitRadius:    1,
		Spawns: []geom.Vec3{
			{X: -8, Y: 1, Z: 0},
			{X: 8, Y: 1, Z: 0},
		},
	}
}

// Contains reports whether p is inside the arena's bullet bounds.
//
// Postcondition: Returns false iff |x| or |z| exceeds HalfSize, or y is
// outside [MinY, MaxY].
func (a *Arena) Contains(p geom.Vec3) bool {
	if p.X > a.HalfSize || p.X < -a.HalfSize {
		return false
	}
	if p.Z > a.HalfSize || p.Z < -a.HalfSize {
		return false
	}
	if p.Y < a.MinY || p.Y > a.MaxY {
		return false
	}
	return true
}

// Validate checks all arena invariants.
//
// Postcondition: Returns nil if the arena is usable, or an error describing
// all violations.
func (a *Arena) Validate() error {
	var errs []string

	if a.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if a.HalfSize <= 0 {
		errs = append(errs, fmt.Sprintf("half_size must be > 0, got %v", a.HalfSize))
	}
	if a.MinY >= a.MaxY {
		errs = append(errs, fmt.Sprintf("min_y must be below max_y, got [%v, %v]", a.MinY, a.MaxY))
	}
	if a.BulletSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("bullet_speed must be > 0, got %v", a.BulletSpeed))
	}
	if a.BulletDamage <= 0 {
		errs = append(errs, fmt.Sprintf("bullet_damage must be > 0, got %d", a.BulletDamage))
	}
	if a.HitRadius <= 0 {
		errs = append(errs, fmt.Sprintf("hit_radius must be > 0, got %v", a.HitRadius))
	}
	if len(a.Spawns) < 2 {
		errs = append(errs, fmt.Sprintf("at least 2 spawn points required, got %d", len(a.Spawns)))
	}

	if len(errs) > 0 {
		return errors.New("invalid arena: " + strings.Join(errs, "; "))
	}
	return nil
}
