// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape: shields, swarm hulls, bounce spheres
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are overlapping
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Contains reports whether the point lies inside or on the circle
func (c Circle) Contains(p Vector2D) bool {
	return c.Center.Sub(p).LengthSquared() <= c.Radius*c.Radius
}

// SurfacePoint returns the point on the circle's rim in the given direction
func (c Circle) SurfacePoint(angle float64) Vector2D {
	return c.Center.Add(FromAngle(angle, c.Radius))
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D // unit vector from A toward B
	Penetration  float64
	ContactPoint Vector2D // on A's rim
}

// CheckCollision performs detailed collision detection between two circles.
// Coincident centres report a zero normal; callers choose a fallback direction.
func CheckCollision(a, b Circle) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance >= a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	normal = normal.Normalize()
	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Scale(a.Radius)),
	}
}
