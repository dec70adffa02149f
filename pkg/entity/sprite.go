// pkg/entity/sprite.go
package entity

import (
	"image"
	"math"
)

// Sprite is the opaque image handle an entity carries. The simulation only
// needs its size and per-texel opacity; renderers resolve pixels elsewhere.
type Sprite interface {
	Bounds() (width, height int)
	Opaque(x, y int) bool
}

// Mask is an opacity bitmap. Texels outside the bounds are transparent.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// NewMask builds a mask from an image, treating any non-zero alpha as opaque
func NewMask(img image.Image) *Mask {
	b := img.Bounds()
	m := &Mask{width: b.Dx(), height: b.Dy(), bits: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.bits[y*m.width+x] = a != 0
		}
	}
	return m
}

// NewSolidMask returns a fully opaque width x height mask
func NewSolidMask(width, height int) *Mask {
	m := &Mask{width: width, height: height, bits: make([]bool, width*height)}
	for i := range m.bits {
		m.bits[i] = true
	}
	return m
}

// Bounds returns the mask size in texels
func (m *Mask) Bounds() (int, int) {
	return m.width, m.height
}

// Opaque reports whether the texel at (x, y) is solid
func (m *Mask) Opaque(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// BoundingRadius is the radius of the circle enclosing a sprite, truncated to whole pixels
func BoundingRadius(s Sprite) float64 {
	if s == nil {
		return 0
	}
	w, h := s.Bounds()
	return math.Trunc(math.Hypot(float64(h)/2, float64(w)/2))
}
