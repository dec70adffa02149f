// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns magnitude squared
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Distance returns the distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Angle returns the direction of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the bearing from v to other in radians
func (v Vector2D) AngleTo(other Vector2D) float64 {
	return other.Sub(v).Angle()
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rotate rotates the vector by angle (in radians)
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ClampLength rescales the vector to max when it is longer, keeping its direction
func (v Vector2D) ClampLength(max float64) Vector2D {
	length := v.Length()
	if length <= max || length == 0 {
		return v
	}
	return v.Scale(max / length)
}

// Reflect mirrors the vector across a surface with the given unit normal
func (v Vector2D) Reflect(normal Vector2D) Vector2D {
	return v.Sub(normal.Scale(2 * v.Dot(normal)))
}
