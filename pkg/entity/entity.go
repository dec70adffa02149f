// pkg/entity/entity.go
package entity

import (
	"math"
	"sync/atomic"

	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-unique entity ID
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Rand is the random source consumed by weapons and spawners.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Entity is a positioned, oriented object in the world with an optional sprite.
// Heading is in radians, counter-clockwise from +X.
type Entity struct {
	ID       ID
	Position physics.Vector2D
	Heading  float64
	Sprite   Sprite
}

// NewEntity creates an entity with a fresh ID
func NewEntity(position physics.Vector2D, sprite Sprite) Entity {
	return Entity{ID: GenerateID(), Position: position, Sprite: sprite}
}

// GetID returns the entity's unique identifier
func (e *Entity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *Entity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetHeading returns the entity's heading in radians
func (e *Entity) GetHeading() float64 {
	return e.Heading
}

// HeadingDegrees returns the heading in degrees
func (e *Entity) HeadingDegrees() float64 {
	return e.Heading * 180 / math.Pi
}

// SetPosition moves the entity to p
func (e *Entity) SetPosition(p physics.Vector2D) {
	e.Position = p
}

// Translate offsets the position in world axes
func (e *Entity) Translate(dx, dy float64) {
	e.Position.X += dx
	e.Position.Y += dy
}

// Move offsets the position relative to the heading: forward along it,
// sideways to its left.
func (e *Entity) Move(forward, sideways float64) {
	e.Position = e.Position.
		Add(physics.FromAngle(e.Heading, forward)).
		Add(physics.FromAngle(e.Heading+math.Pi/2, sideways))
}

// Turn rotates by rad radians
func (e *Entity) Turn(rad float64) {
	e.Heading += rad
}

// TurnDegrees rotates by deg degrees
func (e *Entity) TurnDegrees(deg float64) {
	e.Turn(deg * math.Pi / 180)
}

// RotateTo sets the heading in radians
func (e *Entity) RotateTo(rad float64) {
	e.Heading = rad
}

// RotateToDegrees sets the heading in degrees
func (e *Entity) RotateToDegrees(deg float64) {
	e.Heading = deg * math.Pi / 180
}

// PointAt turns the entity to face p. Pointing at its own position keeps the heading.
func (e *Entity) PointAt(p physics.Vector2D) {
	if p == e.Position {
		return
	}
	e.Heading = e.Position.AngleTo(p)
}

// SpriteCoords maps a world point into the entity's sprite texel space.
// Sprite +X is the entity's forward direction; sprite rows grow toward its right side.
func (e *Entity) SpriteCoords(p physics.Vector2D) (x, y int) {
	var w, h int
	if e.Sprite != nil {
		w, h = e.Sprite.Bounds()
	}
	dx := p.X - e.Position.X
	dy := p.Y - e.Position.Y
	cos := math.Cos(e.Heading)
	sin := math.Sin(e.Heading)
	fx := dx*cos + dy*sin + float64(w)/2
	fy := dx*sin - dy*cos + float64(h)/2
	return int(math.Floor(fx)), int(math.Floor(fy))
}

// Overlaps reports whether p lands on an opaque texel of the rotated sprite.
// Entities without a sprite overlap nothing.
func (e *Entity) Overlaps(p physics.Vector2D) bool {
	if e.Sprite == nil {
		return false
	}
	x, y := e.SpriteCoords(p)
	return e.Sprite.Opaque(x, y)
}
