// pkg/entity/weapon.go
package entity

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// ShotCategory selects how a projectile is drawn
type ShotCategory string

const (
	Bullet ShotCategory = "bullet"
	Plasma ShotCategory = "plasma"
)

// WeaponProfile is the static description of a weapon type.
// Reload is in milliseconds, ShotVelocity in m/s, Spread in radians either side of aim.
// Homing and Weight are carried for loadout data and not used by the physics.
type WeaponProfile struct {
	Name         string       `json:"name" mapstructure:"name"`
	Damage       int          `json:"damage" mapstructure:"damage"`
	Reload       int          `json:"reload" mapstructure:"reload"`
	Spread       float64      `json:"spread" mapstructure:"spread"`
	ShotVelocity float64      `json:"shotVelocity" mapstructure:"shotVelocity"`
	ShotDecay    float64      `json:"shotDecay" mapstructure:"shotDecay"`
	Category     ShotCategory `json:"category" mapstructure:"category"`
	Homing       float64      `json:"homing" mapstructure:"homing"`
	Weight       int          `json:"weight" mapstructure:"weight"`
}

// DefaultWeaponProfile returns the stock autocannon
func DefaultWeaponProfile() WeaponProfile {
	return WeaponProfile{
		Name:         "autocannon",
		Damage:       5,
		Reload:       100,
		Spread:       0.10,
		ShotVelocity: 300,
		ShotDecay:    1.0,
		Category:     Bullet,
		Homing:       0,
		Weight:       250,
	}
}

// Validate checks the profile for values the simulation cannot use
func (w WeaponProfile) Validate() error {
	if w.Damage < 0 {
		return fmt.Errorf("weapon %q: negative damage %d", w.Name, w.Damage)
	}
	if w.Reload < 0 {
		return fmt.Errorf("weapon %q: negative reload %d", w.Name, w.Reload)
	}
	if w.ShotDecay <= 0 || w.ShotDecay > 1 {
		return fmt.Errorf("weapon %q: shot decay %v outside (0, 1]", w.Name, w.ShotDecay)
	}
	if w.Category != Bullet && w.Category != Plasma {
		return fmt.Errorf("weapon %q: unknown category %q", w.Name, w.Category)
	}
	return nil
}

// ErrNoSlot is returned when a mount slot index is out of range
var ErrNoSlot = errors.New("no such mount slot")

// Mount is a turret fixed to a hull at a polar offset. Its Entity carries the
// world position and the aim heading. BarrelLength is the distance from the
// pivot to the muzzle.
type Mount struct {
	Entity
	Profile      WeaponProfile
	OffsetRadius float64
	OffsetAngle  float64
	BarrelLength float64

	reload int
}

// NewMount creates a ready mount; the barrel is half the turret sprite's width
func NewMount(profile WeaponProfile, offsetRadius, offsetAngle float64, sprite Sprite) *Mount {
	m := &Mount{
		Entity:       NewEntity(physics.Vector2D{}, sprite),
		Profile:      profile,
		OffsetRadius: offsetRadius,
		OffsetAngle:  offsetAngle,
	}
	if sprite != nil {
		w, _ := sprite.Bounds()
		m.BarrelLength = float64(w) / 2
	}
	return m
}

// Ready reports whether the mount can fire
func (m *Mount) Ready() bool {
	return m.reload == 0
}

// ReloadRemaining returns the milliseconds until the mount is ready
func (m *Mount) ReloadRemaining() int {
	return m.reload
}

// Tick counts the reload down
func (m *Mount) Tick(deltaMs int) {
	m.reload = max(0, m.reload-deltaMs)
}

// Attach places the mount at its offset on a hull with the given position and heading
func (m *Mount) Attach(hull physics.Vector2D, heading float64) {
	m.Position = hull.Add(physics.FromAngle(heading+m.OffsetAngle, m.OffsetRadius))
}

// Muzzle returns the barrel tip along the current aim
func (m *Mount) Muzzle() physics.Vector2D {
	return m.Position.Add(physics.FromAngle(m.Heading, m.BarrelLength))
}

// Fire spawns one shot if the mount is ready. The shot leaves the muzzle at
// the aim heading jittered within the spread and inherits the carrier velocity.
func (m *Mount) Fire(shots *ProjectileManager, carrier physics.Vector2D, side Allegiance, rng Rand) bool {
	if !m.Ready() {
		return false
	}

	heading := m.Heading + (2*rng.Float64()-1)*m.Profile.Spread
	velocity := carrier.Add(physics.FromAngle(heading, m.Profile.ShotVelocity))
	shots.Spawn(m.Muzzle(), velocity, m.Profile.ShotDecay, m.Profile.Category, m.Profile.Damage, side)

	m.reload = m.Profile.Reload
	return true
}
