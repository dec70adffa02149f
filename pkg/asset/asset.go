// Package asset supplies the sprite images used by the simulation and the
// clients. Every sprite is drawn facing +X. The simulation only sees the
// opacity mask; renderers use the image.
package asset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"math"
	"os"

	"github.com/opd-ai/go-starfighter/pkg/entity"
)

// Kind names a sprite slot
type Kind string

const (
	Craft   Kind = "craft"
	Turret  Kind = "turret"
	Fighter Kind = "fighter"
	Swarmer Kind = "swarmer"
	Bullet  Kind = "bullet"
	Plasma  Kind = "plasma"
)

// Kinds lists every slot a registry fills
var Kinds = []Kind{Craft, Turret, Fighter, Swarmer, Bullet, Plasma}

// ErrUnknownKind is returned for a sprite slot the registry does not hold
var ErrUnknownKind = errors.New("unknown sprite kind")

// Sprite pairs an image with the opacity mask derived from it
type Sprite struct {
	Image *image.NRGBA
	Mask  *entity.Mask
}

func newSprite(img *image.NRGBA) *Sprite {
	return &Sprite{Image: img, Mask: entity.NewMask(img)}
}

// Registry holds one sprite per kind
type Registry struct {
	sprites map[Kind]*Sprite
}

// NewRegistry creates a registry filled with the built-in procedural sprites
func NewRegistry() *Registry {
	r := &Registry{sprites: make(map[Kind]*Sprite, len(Kinds))}

	r.sprites[Craft] = newSprite(drawCraft(64, 56, color.NRGBA{170, 190, 220, 255}))
	r.sprites[Turret] = newSprite(drawBar(16, 6, color.NRGBA{120, 130, 150, 255}))
	r.sprites[Fighter] = newSprite(drawCraft(24, 18, color.NRGBA{220, 70, 60, 255}))
	r.sprites[Swarmer] = newSprite(drawDisc(16, color.NRGBA{230, 160, 40, 255}))
	r.sprites[Bullet] = newSprite(drawDisc(4, color.NRGBA{255, 255, 200, 255}))
	r.sprites[Plasma] = newSprite(drawDisc(8, color.NRGBA{120, 220, 255, 255}))

	return r
}

// Get returns the sprite for a kind
func (r *Registry) Get(kind Kind) (*Sprite, error) {
	s, ok := r.sprites[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return s, nil
}

// Mask returns the collision mask for a kind, or nil when the kind is unknown
func (r *Registry) Mask(kind Kind) entity.Sprite {
	s, ok := r.sprites[kind]
	if !ok {
		return nil
	}
	return s.Mask
}

// Set replaces the sprite for a kind with img
func (r *Registry) Set(kind Kind, img image.Image) {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	r.sprites[kind] = newSprite(nrgba)
}

// LoadFile decodes a PNG from disk into a kind's slot
func (r *Registry) LoadFile(kind Kind, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sprite %s: %w", kind, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode sprite %s: %w", kind, err)
	}
	r.Set(kind, img)
	return nil
}

// createBaseImage creates a transparent image with the specified dimensions
func createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{}}, image.Point{}, draw.Src)
	return img
}

// drawCraft draws an arrowhead pointing +X with a notched tail
func drawCraft(width, height int, c color.NRGBA) *image.NRGBA {
	img := createBaseImage(width, height)
	w, h := float64(width), float64(height)
	for y := 0; y < height; y++ {
		// distance from the centre line, 0 at the axis and 1 at the edge
		off := math.Abs(float64(y)+0.5-h/2) / (h / 2)
		nose := w * (1 - off)
		notch := w * 0.25 * (1 - off)
		for x := 0; x < width; x++ {
			fx := float64(x) + 0.5
			if fx >= notch && fx <= nose {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// drawBar draws a solid barrel
func drawBar(width, height int, c color.NRGBA) *image.NRGBA {
	img := createBaseImage(width, height)
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// drawDisc draws a filled circle with the given diameter
func drawDisc(diameter int, c color.NRGBA) *image.NRGBA {
	img := createBaseImage(diameter, diameter)
	r := float64(diameter) / 2
	for y := 0; y < diameter; y++ {
		for x := 0; x < diameter; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}
