package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/openduel/arena/internal/game/arena"
	"github.com/openduel/arena/internal/game/geom"
)

func seated(t *testing.T) *State {
	t.Helper()
	s := NewState(arena.Default())
	s.Seat([]*Participant{
		NewParticipant("a", "Alice"),
		NewParticipant("b", "Bob"),
	})
	return s
}

func TestSeat_AssignsSpawnsInJoinOrder(t *testing.T) {
	s := seated(t)

	require.Len(t, s.Players, 2)
	assert.Equal(t, geom.Vec3{X: -8, Y: 1, Z: 0}, s.Players["a"].Position)
	assert.Equal(t, geom.Vec3{X: 8, Y: 1, Z: 0}, s.Players["b"].Position)
	assert.Equal(t, MaxHealth, s.Players["a"].Health)
	assert.Equal(t, MaxHealth, s.Players["b"].Health)
	assert.Empty(t, s.Bullets)
	assert.False(t, s.Over)
}

func TestStep_AdvancesBullet(t *testing.T) {
	s := seated(t)
	s.Spawn("a", geom.Vec3{Y: 10}, geom.Vec3{X: 1})

	res := s.Step()

	assert.Empty(t, res.Hits)
	require.Len(t, s.Bullets, 1)
	assert.InDelta(t, 0.3, s.Bullets[0].Position.X, 1e-9)
}

func TestStep_NonUnitDirectionChangesEffectiveSpeed(t *testing.T) {
	s := seated(t)
	s.Spawn("a", geom.Vec3{Y: 10}, geom.Vec3{X: 2})

	s.Step()

	assert.InDelta(t, 0.6, s.Bullets[0].Position.X, 1e-9)
}

func TestStep_CullsOutOfBounds(t *testing.T) {
	s := seated(t)
	// One tick from crossing the x bound.
	s.Spawn("a", geom.Vec3{X: 17.9, Y: 10}, geom.Vec3{X: 1})

	s.Step()

	assert.Empty(t, s.Bullets, "bullet must be removed the tick it leaves the arena")
}

func TestStep_HitDamagesTargetAndRemovesBullet(t *testing.T) {
	s := seated(t)
	// Fired directly at Bob's seat; lands inside the hit sphere next tick.
	s.Spawn("a", geom.Vec3{X: 7.5, Y: 1, Z: 0}, geom.Vec3{X: 1})

	res := s.Step()

	require.Len(t, res.Hits, 1)
	assert.Equal(t, Hit{PlayerID: "b", Health: 90, ShooterID: "a"}, res.Hits[0])
	assert.Equal(t, 90, s.Players["b"].Health)
	assert.Empty(t, s.Bullets)
	assert.Nil(t, res.End)
}

func TestStep_ShooterIsNeverHitBySelf(t *testing.T) {
	s := seated(t)
	// Spawned inside Alice's own hit sphere, moving slowly.
	s.Spawn("a", s.Players["a"].Position, geom.Vec3{X: 0.001})

	res := s.Step()

	assert.Empty(t, res.Hits)
	assert.Equal(t, MaxHealth, s.Players["a"].Health)
	require.Len(t, s.Bullets, 1)
}

func TestStep_EliminationEndsMatch(t *testing.T) {
	s := seated(t)
	s.Players["b"].Health = 10

	s.Spawn("a", geom.Vec3{X: 7.5, Y: 1, Z: 0}, geom.Vec3{X: 1})
	res := s.Step()

	require.Len(t, res.Hits, 1)
	assert.Equal(t, 0, res.Hits[0].Health)
	require.NotNil(t, res.End)
	assert.Equal(t, "Alice", res.End.Winner)
	assert.Equal(t, ReasonElimination, res.End.Reason)
	assert.True(t, s.Over)
	assert.Equal(t, "Alice", s.Winner)
}

func TestStep_WinnerFallsBackWhenShooterGone(t *testing.T) {
	s := seated(t)
	s.Players["b"].Health = 5
	s.Spawn("a", geom.Vec3{X: 7.5, Y: 1, Z: 0}, geom.Vec3{X: 1})

	// Shooter record removed the same tick (e.g. disconnect racing the kill).
	s.Remove("a")
	res := s.Step()

	require.NotNil(t, res.End)
	assert.Equal(t, "Unknown", res.End.Winner)
}

func TestStep_HealthCanGoNegativeInternally(t *testing.T) {
	s := seated(t)
	s.Players["b"].Health = 3
	s.Spawn("a", geom.Vec3{X: 7.5, Y: 1, Z: 0}, geom.Vec3{X: 1})

	res := s.Step()

	require.Len(t, res.Hits, 1)
	assert.Equal(t, -7, res.Hits[0].Health)
	require.NotNil(t, res.End)
}

func TestForfeit(t *testing.T) {
	s := seated(t)

	end := s.Forfeit("Bob")
	require.NotNil(t, end)
	assert.Equal(t, "Bob", end.Winner)
	assert.Equal(t, ReasonForfeit, end.Reason)
	assert.True(t, s.Over)

	// Second forfeit (or forfeit after elimination) is a no-op.
	assert.Nil(t, s.Forfeit("Alice"))
	assert.Equal(t, "Bob", s.Winner)
}

func TestMovePlayer(t *testing.T) {
	s := seated(t)

	ok := s.MovePlayer("a", geom.Vec3{X: 1, Y: 2, Z: 3}, geom.Vec3{Y: 90})
	require.True(t, ok)
	assert.Equal(t, geom.Vec3{X: 1, Y: 2, Z: 3}, s.Players["a"].Position)
	assert.Equal(t, geom.Vec3{Y: 90}, s.Players["a"].Rotation)

	assert.False(t, s.MovePlayer("ghost", geom.Vec3{}, geom.Vec3{}))
}

func TestPropertyCullingIsExhaustive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := arena.Default()
		s := NewState(a)
		s.Seat([]*Participant{NewParticipant("a", "Alice"), NewParticipant("b", "Bob")})
		// Keep participants far outside bullet paths so no hits interfere.
		s.Players["a"].Position = geom.Vec3{X: -17, Y: 19, Z: -17}
		s.Players["b"].Position = geom.Vec3{X: 17, Y: 19, Z: 17}

		n := rapid.IntRange(1, 30).Draw(t, "bullets")
		coord := rapid.Float64Range(-25, 25)
		for i := 0; i < n; i++ {
			pos := geom.Vec3{
				X: coord.Draw(t, "px"),
				Y: rapid.Float64Range(-10, 25).Draw(t, "py"),
				Z: coord.Draw(t, "pz"),
			}
			dir := geom.Vec3{
				X: rapid.Float64Range(-2, 2).Draw(t, "dx"),
				Y: rapid.Float64Range(-2, 2).Draw(t, "dy"),
				Z: rapid.Float64Range(-2, 2).Draw(t, "dz"),
			}
			s.Spawn("a", pos, dir)
		}

		ticks := rapid.IntRange(1, 10).Draw(t, "ticks")
		for i := 0; i < ticks; i++ {
			s.Step()
			// Every surviving bullet is inside bounds after each tick.
			for _, b := range s.Bullets {
				if !a.Contains(b.Position) {
					t.Fatalf("out-of-bounds bullet %s survived at %+v", b.ID, b.Position)
				}
			}
		}
	})
}
