// pkg/entity/projectile.go
package entity

import "github.com/opd-ai/go-starfighter/pkg/physics"

// fadeSpeed is the speed below which a shot starts fading out, in m/s
const fadeSpeed = 50.0

// Projectile is a weapon shot. Velocity is in m/s and bleeds by Decay per second.
type Projectile struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Decay    float64
	Category ShotCategory
	Damage   int
	Side     Allegiance
}

// Speed returns the shot speed in m/s
func (p *Projectile) Speed() float64 {
	return p.Velocity.Length()
}

// Heading returns the direction of travel
func (p *Projectile) Heading() float64 {
	return p.Velocity.Angle()
}

// Alpha is the draw opacity: shots fade as they slow down
func (p *Projectile) Alpha() float64 {
	if s := p.Speed(); s < fadeSpeed {
		return s / fadeSpeed
	}
	return 1
}

// ProjectileManager owns every live projectile.
// There is no capacity limit: shots live until they leave the world or stall.
type ProjectileManager struct {
	world       physics.World
	projectiles []*Projectile
}

// NewProjectileManager creates an empty manager for the given world
func NewProjectileManager(world physics.World) *ProjectileManager {
	return &ProjectileManager{world: world}
}

// Spawn adds a projectile
func (pm *ProjectileManager) Spawn(position, velocity physics.Vector2D, decay float64, category ShotCategory, damage int, side Allegiance) *Projectile {
	p := &Projectile{
		ID:       GenerateID(),
		Position: position,
		Velocity: velocity,
		Decay:    decay,
		Category: category,
		Damage:   damage,
		Side:     side,
	}
	pm.projectiles = append(pm.projectiles, p)
	return p
}

// Integrate decays and advances every projectile, then drops those that
// left the world or slowed below the minimum shot speed.
func (pm *ProjectileManager) Integrate(deltaMs int) {
	live := pm.projectiles[:0]
	for _, p := range pm.projectiles {
		p.Velocity = p.Velocity.Scale(physics.Decay(p.Decay, deltaMs))
		p.Position = p.Position.Add(pm.world.Displacement(p.Velocity, deltaMs))

		if pm.world.Expired(p.Position) || p.Speed() < pm.world.MinShotSpeed {
			continue
		}
		live = append(live, p)
	}
	clear(pm.projectiles[len(live):])
	pm.projectiles = live
}

// ResolveHits applies every hostile projectile that strikes target and removes it.
// It returns the number of hits. A fading wreck still takes shots, which
// restarts its fade.
func (pm *ProjectileManager) ResolveHits(target Hittable) int {
	hits := 0
	side := target.GetAllegiance()
	live := pm.projectiles[:0]
	for _, p := range pm.projectiles {
		if p.Side != side && target.HitTest(p.Position) {
			target.ApplyDamage(p.Damage)
			hits++
			continue
		}
		live = append(live, p)
	}
	clear(pm.projectiles[len(live):])
	pm.projectiles = live
	return hits
}

// Len returns the number of live projectiles
func (pm *ProjectileManager) Len() int {
	return len(pm.projectiles)
}

// Projectiles returns a copy of the live projectiles for rendering
func (pm *ProjectileManager) Projectiles() []Projectile {
	out := make([]Projectile, len(pm.projectiles))
	for i, p := range pm.projectiles {
		out[i] = *p
	}
	return out
}

// Clear removes every projectile
func (pm *ProjectileManager) Clear() {
	clear(pm.projectiles)
	pm.projectiles = pm.projectiles[:0]
}
