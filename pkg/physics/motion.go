// pkg/physics/motion.go
package physics

import (
	"errors"
	"math"
)

// DefaultDrag is the fraction of velocity a craft keeps after one second of coasting.
const DefaultDrag = 0.5

// World describes the playfield: coordinates are pixels centred on the origin,
// velocities are metres per second and PixelRatio converts between them.
type World struct {
	HalfWidth    float64 `json:"halfWidth" mapstructure:"halfWidth"`
	HalfHeight   float64 `json:"halfHeight" mapstructure:"halfHeight"`
	PixelRatio   float64 `json:"pixelRatio" mapstructure:"pixelRatio"`
	ExpiryMargin float64 `json:"expiryMargin" mapstructure:"expiryMargin"`
	MinShotSpeed float64 `json:"minShotSpeed" mapstructure:"minShotSpeed"`
}

// ErrInvalidWorld is returned for a world with non-positive extents or scale
var ErrInvalidWorld = errors.New("invalid world")

// DefaultWorld returns the stock 3200x2000 playfield
func DefaultWorld() World {
	return World{
		HalfWidth:    1600,
		HalfHeight:   1000,
		PixelRatio:   5,
		ExpiryMargin: 50,
		MinShotSpeed: 5,
	}
}

// Validate rejects worlds the integrators cannot use
func (w World) Validate() error {
	if w.HalfWidth <= 0 || w.HalfHeight <= 0 || w.PixelRatio <= 0 {
		return ErrInvalidWorld
	}
	if w.ExpiryMargin < 0 || w.MinShotSpeed < 0 {
		return ErrInvalidWorld
	}
	return nil
}

// Clamp keeps a point inside the world rectangle
func (w World) Clamp(p Vector2D) Vector2D {
	return Vector2D{
		X: math.Max(-w.HalfWidth, math.Min(w.HalfWidth, p.X)),
		Y: math.Max(-w.HalfHeight, math.Min(w.HalfHeight, p.Y)),
	}
}

// Expired reports whether a point has left the world by more than the expiry margin
func (w World) Expired(p Vector2D) bool {
	return math.Abs(p.X) >= w.HalfWidth+w.ExpiryMargin ||
		math.Abs(p.Y) >= w.HalfHeight+w.ExpiryMargin
}

// Displacement converts a velocity in m/s into the pixel offset covered in deltaMs
func (w World) Displacement(velocity Vector2D, deltaMs int) Vector2D {
	return velocity.Scale(w.PixelRatio * Seconds(deltaMs))
}

// Seconds converts a frame delta in milliseconds into seconds
func Seconds(deltaMs int) float64 {
	return float64(deltaMs) / 1000
}

// Decay returns the multiplier for something that keeps perSecond of its
// magnitude each second, applied over deltaMs.
func Decay(perSecond float64, deltaMs int) float64 {
	if perSecond == 1 {
		return 1
	}
	return math.Pow(perSecond, Seconds(deltaMs))
}

// Kinematics is the velocity/acceleration state of a self-propelled body
type Kinematics struct {
	Velocity     Vector2D
	Acceleration Vector2D
}

// Accelerate adds the current acceleration over deltaMs and caps the speed
func (k *Kinematics) Accelerate(deltaMs int, maxSpeed float64) {
	k.Velocity = k.Velocity.Add(k.Acceleration.Scale(Seconds(deltaMs)))
	k.Velocity = k.Velocity.ClampLength(maxSpeed)
}

// ApplyDrag bleeds velocity exponentially
func (k *Kinematics) ApplyDrag(perSecond float64, deltaMs int) {
	k.Velocity = k.Velocity.Scale(Decay(perSecond, deltaMs))
}
