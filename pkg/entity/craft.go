// pkg/entity/craft.go
package entity

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// diagonal scales each thrust axis when two axes are engaged
const diagonal = 1 / math.Sqrt2

// MountPoint is a turret slot on the hull in polar coordinates relative to the heading
type MountPoint struct {
	Radius float64 `json:"radius" mapstructure:"radius"`
	Angle  float64 `json:"angle" mapstructure:"angle"`
	Weapon string  `json:"weapon" mapstructure:"weapon"`
}

// CraftStats are the player craft's tuning values.
// Thrust is in newtons, Mass in kilograms, MaxVelocity in m/s,
// Drag is the velocity fraction kept per second and BankDegrees the
// heading swing at full lateral speed.
type CraftStats struct {
	Armor       int          `json:"armor" mapstructure:"armor"`
	Shield      int          `json:"shield" mapstructure:"shield"`
	ShieldRegen float64      `json:"shieldRegen" mapstructure:"shieldRegen"`
	Mass        float64      `json:"mass" mapstructure:"mass"`
	Thrust      float64      `json:"thrust" mapstructure:"thrust"`
	MaxVelocity float64      `json:"maxVelocity" mapstructure:"maxVelocity"`
	Drag        float64      `json:"drag" mapstructure:"drag"`
	BankDegrees float64      `json:"bankDegrees" mapstructure:"bankDegrees"`
	Mounts      []MountPoint `json:"mounts" mapstructure:"mounts"`
}

// DefaultCraftStats returns the stock player craft
func DefaultCraftStats() CraftStats {
	return CraftStats{
		Armor:       5000,
		Shield:      5000,
		Mass:        5000,
		Thrust:      1200000,
		MaxVelocity: 200,
		Drag:        physics.DefaultDrag,
		BankDegrees: 75,
		Mounts: []MountPoint{
			{Radius: 31.5, Angle: 0.7 * math.Pi, Weapon: "autocannon"},
			{Radius: 31.5, Angle: -0.7 * math.Pi, Weapon: "autocannon"},
		},
	}
}

// Thrust holds the directional thrust flags sampled from input for one frame
type Thrust struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// PlayerCraft is the player's ship: thrust-driven, wall-clamped, banking with
// lateral speed and carrying weapon mounts.
type PlayerCraft struct {
	CombatEntity
	physics.Kinematics
	Stats CraftStats

	mounts []*Mount
	shots  *ProjectileManager
	world  physics.World
	rng    Rand
	regen  float64
}

// NewPlayerCraft creates a friendly craft at the world origin with empty mount slots
func NewPlayerCraft(stats CraftStats, sprite Sprite, shots *ProjectileManager, world physics.World, rng Rand) *PlayerCraft {
	c := &PlayerCraft{
		CombatEntity: NewCombatEntity(physics.Vector2D{}, sprite, stats.Armor, stats.Shield, Friendly),
		Stats:        stats,
		mounts:       make([]*Mount, len(stats.Mounts)),
		shots:        shots,
		world:        world,
		rng:          rng,
	}
	c.RotateToDegrees(90)
	return c
}

// SetMount installs a mount in a slot, taking the slot's hull offset
func (c *PlayerCraft) SetMount(slot int, m *Mount) error {
	if slot < 0 || slot >= len(c.mounts) {
		return fmt.Errorf("slot %d of %d: %w", slot, len(c.mounts), ErrNoSlot)
	}
	m.OffsetRadius = c.Stats.Mounts[slot].Radius
	m.OffsetAngle = c.Stats.Mounts[slot].Angle
	m.Attach(c.Position, c.Heading)
	c.mounts[slot] = m
	return nil
}

// Mount returns the mount in a slot, or nil when empty or out of range
func (c *PlayerCraft) Mount(slot int) *Mount {
	if slot < 0 || slot >= len(c.mounts) {
		return nil
	}
	return c.mounts[slot]
}

// Mounts returns the installed mounts in slot order
func (c *PlayerCraft) Mounts() []*Mount {
	out := make([]*Mount, 0, len(c.mounts))
	for _, m := range c.mounts {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// Integrate advances the craft by one frame. Steps run in a fixed order:
// hull timer, thrust, velocity cap, drag, wall-clamped position, bank heading,
// mounts, then incoming fire.
func (c *PlayerCraft) Integrate(in Thrust, deltaMs int) {
	c.CombatEntity.Update(deltaMs)
	c.rechargeShield(deltaMs)

	c.Acceleration = c.thrustAcceleration(in)
	c.Accelerate(deltaMs, c.Stats.MaxVelocity)
	c.ApplyDrag(c.Stats.Drag, deltaMs)

	c.Position = c.world.Clamp(c.Position.Add(c.world.Displacement(c.Velocity, deltaMs)))
	c.RotateToDegrees(90 - c.Stats.BankDegrees*c.Velocity.X/c.Stats.MaxVelocity)

	for _, m := range c.Mounts() {
		m.Tick(deltaMs)
		m.Attach(c.Position, c.Heading)
	}

	c.shots.ResolveHits(c)
}

// thrustAcceleration maps thrust flags to an acceleration in m/s^2.
// Wrecks get no thrust.
func (c *PlayerCraft) thrustAcceleration(in Thrust) physics.Vector2D {
	if c.Destroyed() || c.Stats.Mass <= 0 {
		return physics.Vector2D{}
	}

	accel := c.Stats.Thrust / c.Stats.Mass
	var a physics.Vector2D
	if in.Up {
		a.Y += accel
	}
	if in.Down {
		a.Y -= accel
	}
	if in.Right {
		a.X += accel
	}
	if in.Left {
		a.X -= accel
	}
	if a.X != 0 && a.Y != 0 {
		a = a.Scale(diagonal)
	}
	return a
}

// rechargeShield regenerates ShieldRegen points per second, carrying fractions between frames
func (c *PlayerCraft) rechargeShield(deltaMs int) {
	if c.Stats.ShieldRegen <= 0 {
		return
	}
	c.regen += c.Stats.ShieldRegen * physics.Seconds(deltaMs)
	whole := math.Floor(c.regen)
	c.regen -= whole
	c.Recharge(int(whole))
}

// AimAt points every mount at a world position
func (c *PlayerCraft) AimAt(p physics.Vector2D) {
	for _, m := range c.Mounts() {
		m.PointAt(p)
	}
}

// Fire triggers every ready mount and returns the number of shots spawned
func (c *PlayerCraft) Fire() int {
	if c.Destroyed() {
		return 0
	}
	fired := 0
	for _, m := range c.Mounts() {
		if m.Fire(c.shots, c.Velocity, c.Side, c.rng) {
			fired++
		}
	}
	return fired
}

// Info returns a one-line status summary for debug overlays
func (c *PlayerCraft) Info() string {
	return fmt.Sprintf("armor %d/%d shield %d/%d speed %.1f m/s pos (%.0f, %.0f)",
		c.Armor, c.MaxArmor, c.Shield, c.MaxShield, c.Velocity.Length(), c.Position.X, c.Position.Y)
}
