// pkg/enemy/fighter_test.go
package enemy

import (
	"testing"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFighter(pos physics.Vector2D) (*Fighter, *entity.ProjectileManager) {
	pm := entity.NewProjectileManager(testWorld())
	return NewFighter(pos, nil, DefaultFighterStats(), pm, testWorld()), pm
}

func TestFighter_Hysteresis(t *testing.T) {
	tests := []struct {
		name      string
		attacking bool
		distance  float64
		expected  bool
	}{
		{"attacking_inside_retreat_breaks_off", true, 200, false},
		{"attacking_in_band_holds", true, 400, true},
		{"retreating_in_band_holds", false, 400, false},
		{"retreating_beyond_attack_turns_back", false, 700, true},
		{"attacking_far_holds", true, 900, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFighter(physics.Vector2D{})
			f.attacking = tt.attacking
			target := &stubTarget{pos: physics.Vector2D{X: tt.distance}}
			f.Update(16, target)
			assert.Equal(t, tt.expected, f.Attacking())
		})
	}
}

func TestFighter_TurnRateIsCapped(t *testing.T) {
	f, _ := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{X: -900, Y: 1}}

	for frame := 0; frame < 20; frame++ {
		before := f.Heading
		f.Update(100, target)
		assert.LessOrEqual(t, physics.AngleBetween(before, f.Heading), f.Stats.TurnSpeed*0.1+1e-9)
	}
}

func TestFighter_RetreatsAwayFromTarget(t *testing.T) {
	f, _ := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{X: -100}}

	f.Update(16, target)
	require.False(t, f.Attacking())
	assert.Greater(t, f.Acceleration.X, 0.0, "accelerates away from the target")
}

func TestFighter_BurstFire(t *testing.T) {
	f, pm := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{X: 900}}

	f.Update(16, target)
	require.Equal(t, 1, pm.Len(), "first shot leaves on the frame the burst starts")
	assert.Equal(t, 4, f.BurstRemaining())
	assert.Equal(t, 1000, f.ReloadRemaining())

	shot := pm.Projectiles()[0]
	assert.Equal(t, 10, shot.Damage)
	assert.Equal(t, entity.Enemy, shot.Side)
	assert.InDelta(t, 200.0, shot.Velocity.Length(), 1e-9)

	// 50 ms between shots: a new one every fourth 16 ms frame
	for frame := 0; frame < 3; frame++ {
		f.Update(16, target)
	}
	assert.Equal(t, 1, pm.Len())
	f.Update(16, target)
	assert.Equal(t, 2, pm.Len())

	for frame := 0; frame < 36; frame++ {
		f.Update(16, target)
	}
	assert.Equal(t, 5, pm.Len(), "a burst is exactly BurstShots long")
	assert.Equal(t, 0, f.BurstRemaining())
	assert.Greater(t, f.ReloadRemaining(), 0)
}

func TestFighter_HoldsFireWhenNotLinedUp(t *testing.T) {
	f, pm := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{Y: 900}}

	f.Update(16, target)
	assert.Equal(t, 0, pm.Len())
	assert.Equal(t, 0, f.ReloadRemaining())
}

func TestFighter_HoldsFireOutOfRange(t *testing.T) {
	f, pm := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{X: 1200}}

	f.Update(16, target)
	assert.Equal(t, 0, pm.Len())
}

func TestFighter_SpeedClamp(t *testing.T) {
	f, _ := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{X: 1e6}}

	for frame := 0; frame < 500; frame++ {
		f.Update(16, target)
		require.LessOrEqual(t, f.Velocity.Length(), f.Stats.MaxVelocity+1e-9)
	}
}

func TestFighter_WreckStopsFiringAndSteering(t *testing.T) {
	f, pm := newTestFighter(physics.Vector2D{})
	target := &stubTarget{pos: physics.Vector2D{X: 900}}
	f.Update(16, target)
	require.Equal(t, 1, pm.Len())

	f.ApplyDamage(1)
	require.True(t, f.Destroyed())
	for frame := 0; frame < 40; frame++ {
		f.Update(16, target)
	}
	assert.Equal(t, 1, pm.Len())
	assert.Equal(t, physics.Vector2D{}, f.Acceleration)
	assert.True(t, f.Removable(), "fade ends after 500 ms")
}
