// pkg/render/starfield.go
package render

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Star is one background point. Depth in [0.3, 0.8] sets both its parallax
// factor and its brightness; nearer stars are larger and brighter.
type Star struct {
	Position physics.Vector2D
	Depth    float64
	Color    color.NRGBA
}

// Starfield is a drifting parallax background
type Starfield struct {
	stars    []Star
	velocity float64
	world    physics.World
	viewW    float64
	viewH    float64
	rng      entity.Rand
}

// NewStarfield scatters count stars over the area the camera can reveal.
// velocity is the downward drift of the nearest layer in world units per ms.
func NewStarfield(count int, velocity float64, cam *Camera, world physics.World, rng entity.Rand) *Starfield {
	viewW, viewH := cam.ViewHalfExtent()
	s := &Starfield{
		stars:    make([]Star, count),
		velocity: math.Abs(velocity),
		world:    world,
		viewW:    viewW,
		viewH:    viewH,
		rng:      rng,
	}
	for i := range s.stars {
		s.stars[i] = s.newStar()
		s.stars[i].Position.Y = (2*rng.Float64() - 1) * s.extentY(s.stars[i].Depth)
	}
	return s
}

// starDepth favours distant stars: it maps a uniform sample onto [0.3, 0.8]
// with more weight at the low end.
func starDepth(u float64) float64 {
	return -math.Log(0.489682-0.34*u) / 2.38
}

func (s *Starfield) extentX(depth float64) float64 {
	return math.Max(s.world.HalfWidth-s.viewW, 0)*depth + s.viewW
}

func (s *Starfield) extentY(depth float64) float64 {
	return math.Max(s.world.HalfHeight-s.viewH, 0)*depth + s.viewH
}

// newStar places a star just above the top of its layer
func (s *Starfield) newStar() Star {
	depth := starDepth(s.rng.Float64())
	shade := 0.2 + depth
	channel := func() uint8 {
		return uint8(255 * (1 - 0.3*s.rng.Float64()) * shade)
	}
	return Star{
		Position: physics.Vector2D{
			X: (2*s.rng.Float64() - 1) * s.extentX(depth),
			Y: s.extentY(depth) + 10,
		},
		Depth: depth,
		Color: color.NRGBA{R: channel(), G: channel(), B: channel(), A: 255},
	}
}

// Update drifts every star downward, recycling those that leave their layer
func (s *Starfield) Update(deltaMs int) {
	for i := range s.stars {
		st := &s.stars[i]
		st.Position.Y -= s.velocity * st.Depth * float64(deltaMs)
		if st.Position.Y < -s.extentY(st.Depth) {
			*st = s.newStar()
		}
	}
}

// Stars returns the current stars. The slice is owned by the starfield.
func (s *Starfield) Stars() []Star {
	return s.stars
}
