package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Add(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}.Add(Vec3{X: -1, Y: 0.5, Z: 3})
	assert.Equal(t, Vec3{X: 0, Y: 2.5, Z: 6}, v)
}

func TestVec3_Scale(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 0}.Scale(0.3)
	assert.InDelta(t, 0.3, v.X, 1e-9)
	assert.InDelta(t, -0.6, v.Y, 1e-9)
	assert.Zero(t, v.Z)
}

func TestVec3_Dist(t *testing.T) {
	a := Vec3{X: -8, Y: 1, Z: 0}
	b := Vec3{X: 8, Y: 1, Z: 0}
	assert.InDelta(t, 16.0, a.Dist(b), 1e-9)
	assert.Zero(t, a.Dist(a))
}

func TestVec3_ScaleIsNotNormalization(t *testing.T) {
	// A non-unit direction scaled by a speed keeps its magnitude bias.
	dir := Vec3{X: 2, Y: 0, Z: 0}
	step := dir.Scale(0.3)
	assert.InDelta(t, 0.6, step.X, 1e-9)
}
