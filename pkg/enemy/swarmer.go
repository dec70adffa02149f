// pkg/enemy/swarmer.go
package enemy

import (
	"math"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// impactStep is the ray-march step used to find where a laser meets the hull
const impactStep = 5.0

// SwarmerStats tune the flocking swarmer. Area is the space each member
// claims in the flock, Spacing the separation scale, Orbit the preferred
// distance from the target and Radius the body and bounce radius.
type SwarmerStats struct {
	Armor           int     `json:"armor" mapstructure:"armor"`
	Shield          int     `json:"shield" mapstructure:"shield"`
	MaxAcceleration float64 `json:"maxAcceleration" mapstructure:"maxAcceleration"`
	MaxVelocity     float64 `json:"maxVelocity" mapstructure:"maxVelocity"`
	Area            float64 `json:"area" mapstructure:"area"`
	Spacing         float64 `json:"spacing" mapstructure:"spacing"`
	Orbit           float64 `json:"orbit" mapstructure:"orbit"`
	Radius          float64 `json:"radius" mapstructure:"radius"`
	MaxRange        float64 `json:"maxRange" mapstructure:"maxRange"`
	Damage          int     `json:"damage" mapstructure:"damage"`
	LaserDuration   int     `json:"laserDuration" mapstructure:"laserDuration"`
	Reload          int     `json:"reload" mapstructure:"reload"`
}

// DefaultSwarmerStats returns the stock swarmer
func DefaultSwarmerStats() SwarmerStats {
	return SwarmerStats{
		Armor:           1,
		Shield:          0,
		MaxAcceleration: 100,
		MaxVelocity:     150,
		Area:            700,
		Spacing:         10,
		Orbit:           75,
		Radius:          8,
		MaxRange:        200,
		Damage:          1,
		LaserDuration:   50,
		Reload:          500,
	}
}

// Swarmer flocks with its siblings around the player, bounces off the
// player's shield and zaps it with an instant-hit laser when close.
type Swarmer struct {
	entity.CombatEntity
	physics.Kinematics
	Stats SwarmerStats

	laserActive bool
	laserFired  bool
	reload      int
	impact      physics.Vector2D

	world physics.World
}

// NewSwarmer creates a swarmer; it is hit as a circle of Stats.Radius
func NewSwarmer(position physics.Vector2D, sprite entity.Sprite, stats SwarmerStats, world physics.World) *Swarmer {
	s := &Swarmer{
		CombatEntity: entity.NewCombatEntity(position, sprite, stats.Armor, stats.Shield, entity.Enemy),
		Stats:        stats,
		world:        world,
	}
	s.HitRadius = stats.Radius
	return s
}

// LaserActive reports whether the laser beam is visible this frame
func (s *Swarmer) LaserActive() bool {
	return s.laserActive
}

// LaserFired reports whether the laser discharged during the last update
func (s *Swarmer) LaserFired() bool {
	return s.laserFired
}

// Impact returns where the laser beam ends; meaningful while LaserActive
func (s *Swarmer) Impact() physics.Vector2D {
	return s.impact
}

// Update advances the swarmer one frame. centroid is the mean position of the
// live swarm, nil when there is none; swarm is the full sibling list and may
// include s itself.
func (s *Swarmer) Update(deltaMs int, target Target, centroid *physics.Vector2D, swarm []*Swarmer) {
	s.CombatEntity.Update(deltaMs)

	s.Acceleration = physics.Vector2D{}
	if !s.Destroyed() {
		s.Acceleration = s.cohesion(centroid, swarm).
			Add(s.separation(swarm)).
			Add(s.orbit(target.GetPosition())).
			ClampLength(s.Stats.MaxAcceleration)
	}

	s.ApplyDrag(physics.DefaultDrag, deltaMs)
	s.Accelerate(deltaMs, s.Stats.MaxVelocity)
	if s.Velocity.LengthSquared() > 0 {
		s.Heading = s.Velocity.Angle()
	}
	s.Position = s.Position.Add(s.world.Displacement(s.Velocity, deltaMs))

	if !s.Destroyed() {
		s.bounce(target)
	}
	s.updateLaser(deltaMs, target)
}

// Centroid returns the mean position of the live swarmers, or nil when none are alive
func Centroid(swarm []*Swarmer) *physics.Vector2D {
	var sum physics.Vector2D
	n := 0
	for _, s := range swarm {
		if s.Destroyed() {
			continue
		}
		sum = sum.Add(s.Position)
		n++
	}
	if n == 0 {
		return nil
	}
	c := sum.Scale(1 / float64(n))
	return &c
}

// cohesion pulls toward the flock centre, harder the further out and the smaller the flock
func (s *Swarmer) cohesion(centroid *physics.Vector2D, swarm []*Swarmer) physics.Vector2D {
	if centroid == nil {
		return physics.Vector2D{}
	}
	n := 0
	for _, other := range swarm {
		if !other.Destroyed() {
			n++
		}
	}
	if n == 0 {
		return physics.Vector2D{}
	}

	toCentre := centroid.Sub(s.Position)
	flockRadius := math.Sqrt(s.Stats.Area * float64(n) / math.Pi)
	magnitude := s.Stats.MaxAcceleration * toCentre.Length() / flockRadius
	return toCentre.Normalize().Scale(magnitude).ClampLength(s.Stats.MaxAcceleration)
}

// separation pushes away from every live sibling with an inverse-square falloff
func (s *Swarmer) separation(swarm []*Swarmer) physics.Vector2D {
	var push physics.Vector2D
	spacing2 := s.Stats.Spacing * s.Stats.Spacing
	for _, other := range swarm {
		if other == s || other.Destroyed() {
			continue
		}
		away := s.Position.Sub(other.Position)
		d2 := away.LengthSquared()
		if d2 < separationEpsilon {
			continue
		}
		push = push.Add(away.Normalize().Scale(s.Stats.MaxAcceleration * spacing2 / d2))
	}
	return push.ClampLength(s.Stats.MaxAcceleration)
}

// orbit attracts toward the target beyond the orbit distance and repels inside it
func (s *Swarmer) orbit(target physics.Vector2D) physics.Vector2D {
	toTarget := target.Sub(s.Position)
	d := toTarget.Length()
	if d*d < separationEpsilon {
		return physics.Vector2D{}
	}
	r := s.Stats.Orbit / d
	magnitude := s.Stats.MaxAcceleration * (d/s.Stats.Orbit - r*r)
	return toTarget.Normalize().Scale(magnitude).ClampLength(s.Stats.MaxAcceleration)
}

// bounce pushes the swarmer back out of the target's shield and reflects its velocity
func (s *Swarmer) bounce(target Target) {
	if !target.ShieldActive() {
		return
	}

	bubble := physics.Circle{Center: target.GetPosition(), Radius: target.GetShieldRadius()}
	contact := physics.CheckCollision(bubble, physics.Circle{Center: s.Position, Radius: s.Stats.Radius})
	if !contact.Collided {
		return
	}

	normal := contact.Normal
	if normal.LengthSquared() == 0 {
		normal = physics.FromAngle(s.Heading+math.Pi, 1)
	}
	s.Position = bubble.Center.Add(normal.Scale(bubble.Radius + s.Stats.Radius))
	target.ApplyDamage(0)
	if s.Velocity.Dot(normal) < 0 {
		s.Velocity = s.Velocity.Reflect(normal)
	}
}

// updateLaser runs the reload cycle; the beam stays visible for LaserDuration after each shot
func (s *Swarmer) updateLaser(deltaMs int, target Target) {
	s.laserFired = false
	if s.reload < s.Stats.Reload-s.Stats.LaserDuration || s.Destroyed() {
		s.laserActive = false
	}
	s.reload = max(0, s.reload-deltaMs)

	if !s.Destroyed() && s.reload == 0 && s.Position.Distance(target.GetPosition()) < s.Stats.MaxRange {
		s.laserActive = true
		s.laserFired = true
		s.reload = s.Stats.Reload
		target.ApplyDamage(s.Stats.Damage)
	}

	if s.laserActive {
		s.impact = s.impactPoint(target)
	}
}

// impactPoint is the shield surface facing the swarmer, or the last point of
// the hull hit when marching outward from the target's centre
func (s *Swarmer) impactPoint(target Target) physics.Vector2D {
	centre := target.GetPosition()
	direction := centre.AngleTo(s.Position)
	radius := target.GetShieldRadius()

	if target.ShieldActive() {
		return physics.Circle{Center: centre, Radius: radius}.SurfacePoint(direction)
	}

	impact := centre
	for r := impactStep; r <= radius; r += impactStep {
		p := centre.Add(physics.FromAngle(direction, r))
		if !target.HitTest(p) {
			break
		}
		impact = p
	}
	return impact
}
