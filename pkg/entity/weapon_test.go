// pkg/entity/weapon_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMount_FireAndReload(t *testing.T) {
	pm := NewProjectileManager(testWorld())
	m := NewMount(DefaultWeaponProfile(), 0, 0, NewSolidMask(16, 6))
	require.Equal(t, 8.0, m.BarrelLength)
	require.True(t, m.Ready())

	ok := m.Fire(pm, physics.Vector2D{X: 10}, Friendly, fixedRand(0.5))
	require.True(t, ok)
	require.Equal(t, 1, pm.Len())

	shot := pm.Projectiles()[0]
	assert.InDelta(t, 8.0, shot.Position.X, 1e-9, "shots leave the muzzle")
	assert.InDelta(t, 310.0, shot.Velocity.X, 1e-9, "shots inherit the carrier velocity")
	assert.Equal(t, 5, shot.Damage)
	assert.Equal(t, Friendly, shot.Side)

	assert.False(t, m.Ready())
	assert.False(t, m.Fire(pm, physics.Vector2D{}, Friendly, fixedRand(0.5)))
	assert.Equal(t, 100, m.ReloadRemaining())

	m.Tick(60)
	assert.Equal(t, 40, m.ReloadRemaining())
	m.Tick(60)
	assert.True(t, m.Ready())
}

func TestMount_SpreadBounds(t *testing.T) {
	profile := DefaultWeaponProfile()
	for _, r := range []float64{0, 0.25, 0.75, 0.999999} {
		pm := NewProjectileManager(testWorld())
		m := NewMount(profile, 0, 0, nil)
		m.RotateTo(1)
		m.Fire(pm, physics.Vector2D{}, Friendly, fixedRand(r))

		heading := pm.Projectiles()[0].Heading()
		assert.LessOrEqual(t, physics.AngleBetween(1, heading), profile.Spread+1e-9)
	}
}

func TestMount_Attach(t *testing.T) {
	m := NewMount(DefaultWeaponProfile(), 10, 0.5*3.141592653589793, nil)
	m.Attach(physics.Vector2D{X: 5, Y: 5}, 0)
	assert.InDelta(t, 5.0, m.Position.X, 1e-9)
	assert.InDelta(t, 15.0, m.Position.Y, 1e-9)
}

func TestWeaponProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WeaponProfile)
		wantErr bool
	}{
		{"default", func(*WeaponProfile) {}, false},
		{"negative_damage", func(w *WeaponProfile) { w.Damage = -1 }, true},
		{"negative_reload", func(w *WeaponProfile) { w.Reload = -1 }, true},
		{"zero_decay", func(w *WeaponProfile) { w.ShotDecay = 0 }, true},
		{"accelerating_decay", func(w *WeaponProfile) { w.ShotDecay = 1.5 }, true},
		{"unknown_category", func(w *WeaponProfile) { w.Category = "laser" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeaponProfile()
			tt.mutate(&w)
			if tt.wantErr {
				assert.Error(t, w.Validate())
			} else {
				assert.NoError(t, w.Validate())
			}
		})
	}
}
