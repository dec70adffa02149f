// pkg/entity/combat.go
package entity

import "github.com/opd-ai/go-starfighter/pkg/physics"

// Hittable is anything projectiles can strike
type Hittable interface {
	GetAllegiance() Allegiance
	HitTest(p physics.Vector2D) bool
	ApplyDamage(amount int)
}

// CombatEntity is an entity that can take damage.
// While its shield holds, hits are tested against the shield circle;
// afterwards against HitRadius when set, or the sprite's opaque texels.
type CombatEntity struct {
	Entity
	Hull
	Side      Allegiance
	HitRadius float64

	shieldRadius float64
}

// NewCombatEntity creates a combat entity at full strength.
// The shield radius is the sprite's bounding circle.
func NewCombatEntity(position physics.Vector2D, sprite Sprite, armor, shield int, side Allegiance) CombatEntity {
	return CombatEntity{
		Entity:       NewEntity(position, sprite),
		Hull:         NewHull(armor, shield),
		Side:         side,
		shieldRadius: BoundingRadius(sprite),
	}
}

// Update advances the flash/fade timer
func (c *CombatEntity) Update(deltaMs int) {
	c.Hull.Tick(deltaMs)
}

// GetAllegiance returns the side the entity fights for
func (c *CombatEntity) GetAllegiance() Allegiance {
	return c.Side
}

// GetShieldRadius returns the radius of the shield bubble
func (c *CombatEntity) GetShieldRadius() float64 {
	return c.shieldRadius
}

// ShieldCircle returns the shield bubble at the current position
func (c *CombatEntity) ShieldCircle() physics.Circle {
	return physics.Circle{Center: c.Position, Radius: c.shieldRadius}
}

// HitTest reports whether a point strikes the entity
func (c *CombatEntity) HitTest(p physics.Vector2D) bool {
	if c.ShieldActive() {
		return c.ShieldCircle().Contains(p)
	}
	if c.HitRadius > 0 {
		return physics.Circle{Center: c.Position, Radius: c.HitRadius}.Contains(p)
	}
	return c.Overlaps(p)
}
