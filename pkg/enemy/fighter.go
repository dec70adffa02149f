// pkg/enemy/fighter.go
package enemy

import (
	"math"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// FighterStats tune the seek/flee fighter. Distances are in pixels,
// speeds in m/s, times in milliseconds and angles in radians.
type FighterStats struct {
	Armor           int                 `json:"armor" mapstructure:"armor"`
	Shield          int                 `json:"shield" mapstructure:"shield"`
	MaxAcceleration float64             `json:"maxAcceleration" mapstructure:"maxAcceleration"`
	MaxVelocity     float64             `json:"maxVelocity" mapstructure:"maxVelocity"`
	TurnSpeed       float64             `json:"turnSpeed" mapstructure:"turnSpeed"`
	AttackDistance  float64             `json:"attackDistance" mapstructure:"attackDistance"`
	RetreatDistance float64             `json:"retreatDistance" mapstructure:"retreatDistance"`
	MaxRange        float64             `json:"maxRange" mapstructure:"maxRange"`
	Damage          int                 `json:"damage" mapstructure:"damage"`
	BurstShots      int                 `json:"burstShots" mapstructure:"burstShots"`
	ShotCooldown    int                 `json:"shotCooldown" mapstructure:"shotCooldown"`
	Reload          int                 `json:"reload" mapstructure:"reload"`
	FiringArc       float64             `json:"firingArc" mapstructure:"firingArc"`
	BarrelLength    float64             `json:"barrelLength" mapstructure:"barrelLength"`
	ShotVelocity    float64             `json:"shotVelocity" mapstructure:"shotVelocity"`
	ShotDecay       float64             `json:"shotDecay" mapstructure:"shotDecay"`
	Category        entity.ShotCategory `json:"category" mapstructure:"category"`
}

// DefaultFighterStats returns the stock fighter
func DefaultFighterStats() FighterStats {
	return FighterStats{
		Armor:           1,
		Shield:          0,
		MaxAcceleration: 100,
		MaxVelocity:     150,
		TurnSpeed:       0.5 * math.Pi,
		AttackDistance:  600,
		RetreatDistance: 250,
		MaxRange:        1000,
		Damage:          10,
		BurstShots:      5,
		ShotCooldown:    50,
		Reload:          1000,
		FiringArc:       0.1,
		BarrelLength:    10,
		ShotVelocity:    200,
		ShotDecay:       1,
		Category:        entity.Bullet,
	}
}

// Fighter closes on the player until it is too near, then breaks away and
// turns back once far enough out. While attacking and lined up it fires
// bursts of shots along its heading.
type Fighter struct {
	entity.CombatEntity
	physics.Kinematics
	Stats FighterStats

	attacking    bool
	burst        int
	shotCooldown int
	reload       int

	shots *entity.ProjectileManager
	world physics.World
}

// NewFighter creates a fighter in attack mode
func NewFighter(position physics.Vector2D, sprite entity.Sprite, stats FighterStats, shots *entity.ProjectileManager, world physics.World) *Fighter {
	return &Fighter{
		CombatEntity: entity.NewCombatEntity(position, sprite, stats.Armor, stats.Shield, entity.Enemy),
		Stats:        stats,
		attacking:    true,
		shots:        shots,
		world:        world,
	}
}

// Attacking reports whether the fighter is closing on its target
func (f *Fighter) Attacking() bool {
	return f.attacking
}

// BurstRemaining returns the shots left in the current burst
func (f *Fighter) BurstRemaining() int {
	return f.burst
}

// ReloadRemaining returns the milliseconds until the next burst may start
func (f *Fighter) ReloadRemaining() int {
	return f.reload
}

// Update advances the fighter one frame against target
func (f *Fighter) Update(deltaMs int, target Target) {
	f.CombatEntity.Update(deltaMs)

	f.Acceleration = physics.Vector2D{}
	if !f.Destroyed() {
		f.steer(deltaMs, target.GetPosition())
	}

	f.ApplyDrag(physics.DefaultDrag, deltaMs)
	f.Accelerate(deltaMs, f.Stats.MaxVelocity)
	f.Position = f.Position.Add(f.world.Displacement(f.Velocity, deltaMs))

	f.reload = max(0, f.reload-deltaMs)
	f.shotCooldown = max(0, f.shotCooldown-deltaMs)
	f.fire(target.GetPosition())
}

// steer switches mode with hysteresis and turns toward or away from the target
func (f *Fighter) steer(deltaMs int, target physics.Vector2D) {
	distance := f.Position.Distance(target)
	if f.attacking && distance < f.Stats.RetreatDistance {
		f.attacking = false
	} else if !f.attacking && distance > f.Stats.AttackDistance {
		f.attacking = true
	}

	desired := f.Position.AngleTo(target)
	if !f.attacking {
		desired += math.Pi
	}
	f.Heading = physics.TurnToward(f.Heading, desired, f.Stats.TurnSpeed*physics.Seconds(deltaMs))
	f.Acceleration = physics.FromAngle(f.Heading, f.Stats.MaxAcceleration)
}

// fire starts a burst when lined up and spaces the burst's shots by the cooldown
func (f *Fighter) fire(target physics.Vector2D) {
	if f.Destroyed() {
		f.burst = 0
		return
	}

	distance := f.Position.Distance(target)
	linedUp := physics.AngleBetween(f.Heading, f.Position.AngleTo(target)) < f.Stats.FiringArc
	if f.reload == 0 && f.attacking && distance < f.Stats.MaxRange && linedUp {
		f.burst = f.Stats.BurstShots
		f.reload = f.Stats.Reload
	}

	if f.burst > 0 && f.shotCooldown == 0 {
		muzzle := f.Position.Add(physics.FromAngle(f.Heading, f.Stats.BarrelLength))
		velocity := physics.FromAngle(f.Heading, f.Stats.ShotVelocity)
		f.shots.Spawn(muzzle, velocity, f.Stats.ShotDecay, f.Stats.Category, f.Stats.Damage, f.Side)
		f.burst--
		f.shotCooldown = f.Stats.ShotCooldown
	}
}
