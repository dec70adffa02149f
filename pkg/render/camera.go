// pkg/render/camera.go
package render

import (
	"math"

	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Camera maps world coordinates (Y up, origin at the centre of the field)
// to screen coordinates (Y down, origin at the top-left corner).
type Camera struct {
	Position physics.Vector2D
	Width    float64 // viewport width in screen units
	Height   float64 // viewport height in screen units
	Scale    float64 // world units per screen unit
	Aspect   float64 // height of a screen unit relative to its width
}

// NewCamera creates a camera centred on the origin with square screen units
func NewCamera(width, height, scale float64) *Camera {
	return &Camera{Width: width, Height: height, Scale: scale, Aspect: 1}
}

// FitScale returns the smallest scale at which the whole world fits a
// width x height viewport whose units are aspect times taller than wide.
func FitScale(world physics.World, width, height, aspect float64) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	if aspect <= 0 {
		aspect = 1
	}
	return math.Max(2*world.HalfWidth/width, 2*world.HalfHeight/(height*aspect))
}

func (c *Camera) scaleY() float64 {
	if c.Aspect <= 0 {
		return c.Scale
	}
	return c.Scale * c.Aspect
}

// ToScreen converts a world position to screen coordinates
func (c *Camera) ToScreen(p physics.Vector2D) (float64, float64) {
	return c.ToScreenParallax(p, 1)
}

// ToScreenParallax converts a position on a layer that moves depth times as
// fast as the camera. Depth 1 is the playing field, 0 is fixed to the screen.
func (c *Camera) ToScreenParallax(p physics.Vector2D, depth float64) (float64, float64) {
	x := c.Width/2 + (p.X-c.Position.X*depth)/c.Scale
	y := c.Height/2 - (p.Y-c.Position.Y*depth)/c.scaleY()
	return x, y
}

// ToWorld converts screen coordinates back to a world position
func (c *Camera) ToWorld(x, y float64) physics.Vector2D {
	return physics.Vector2D{
		X: c.Position.X + (x-c.Width/2)*c.Scale,
		Y: c.Position.Y - (y-c.Height/2)*c.scaleY(),
	}
}

// ViewHalfExtent returns half the visible area in world units
func (c *Camera) ViewHalfExtent() (float64, float64) {
	return c.Width / 2 * c.Scale, c.Height / 2 * c.scaleY()
}

// Follow moves the camera proportionally to the target's place in the world,
// so the field edges line up with the screen edges when the target reaches them.
func (c *Camera) Follow(target physics.Vector2D, world physics.World) {
	viewW, viewH := c.ViewHalfExtent()
	c.Position = physics.Vector2D{
		X: math.Max(world.HalfWidth-viewW, 0) * target.X / world.HalfWidth,
		Y: math.Max(world.HalfHeight-viewH, 0) * target.Y / world.HalfHeight,
	}
}

// Visible reports whether p lies within the viewport grown by margin world units
func (c *Camera) Visible(p physics.Vector2D, margin float64) bool {
	viewW, viewH := c.ViewHalfExtent()
	return math.Abs(p.X-c.Position.X) <= viewW+margin &&
		math.Abs(p.Y-c.Position.Y) <= viewH+margin
}
