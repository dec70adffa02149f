// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/logging"
)

// starSize is the edge of the star texture in pixels
const starSize = 3

// AssetManager holds one texture per sprite kind
type AssetManager struct {
	registry *asset.Registry
	sprites  map[asset.Kind]common.Drawable
	star     common.Drawable

	// toTexture uploads an image; it needs a live GL context
	toTexture func(img *image.NRGBA) common.Drawable
}

// NewAssetManager creates an asset manager over a sprite registry
func NewAssetManager(registry *asset.Registry) *AssetManager {
	return &AssetManager{
		registry:  registry,
		sprites:   make(map[asset.Kind]common.Drawable),
		toTexture: convertToEngoTexture,
	}
}

// LoadAssets converts every registered sprite into a texture
func (am *AssetManager) LoadAssets() error {
	for _, kind := range asset.Kinds {
		s, err := am.registry.Get(kind)
		if err != nil {
			return logging.WrapError(err, "loading %s texture", kind)
		}
		am.sprites[kind] = am.toTexture(s.Image)
	}
	am.star = am.toTexture(starImage())
	return nil
}

// starImage is a small opaque white square, tinted per star at draw time
func starImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, starSize, starSize))
	for y := 0; y < starSize; y++ {
		for x := 0; x < starSize; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

// convertToEngoTexture converts an image to an Engo drawable
func convertToEngoTexture(img *image.NRGBA) common.Drawable {
	texture := common.NewImageObject(img)
	return common.NewTextureSingle(texture)
}

// GetSprite returns the texture for a kind, or nil when it was never loaded
func (am *AssetManager) GetSprite(kind asset.Kind) common.Drawable {
	return am.sprites[kind]
}

// GetStar returns the star texture
func (am *AssetManager) GetStar() common.Drawable {
	return am.star
}

// Size returns the pixel size of a kind's sprite
func (am *AssetManager) Size(kind asset.Kind) (float32, float32) {
	s, err := am.registry.Get(kind)
	if err != nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float32(b.Dx()), float32(b.Dy())
}
