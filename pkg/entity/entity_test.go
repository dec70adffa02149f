// pkg/entity/entity_test.go
package entity

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same value forever
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func testWorld() physics.World {
	return physics.World{HalfWidth: 1600, HalfHeight: 1000, PixelRatio: 5, ExpiryMargin: 50, MinShotSpeed: 5}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestEntity_Move(t *testing.T) {
	e := NewEntity(physics.Vector2D{X: 10, Y: 10}, nil)
	e.RotateToDegrees(90)
	e.Move(5, 2)
	assert.InDelta(t, 8.0, e.Position.X, 1e-9, "sideways is to the left of the heading")
	assert.InDelta(t, 15.0, e.Position.Y, 1e-9)

	e.Translate(-8, 1)
	assert.InDelta(t, 0.0, e.Position.X, 1e-9)
	assert.InDelta(t, 16.0, e.Position.Y, 1e-9)
}

func TestEntity_Rotation(t *testing.T) {
	e := NewEntity(physics.Vector2D{}, nil)
	e.TurnDegrees(45)
	e.Turn(math.Pi / 4)
	assert.InDelta(t, 90.0, e.HeadingDegrees(), 1e-9)

	e.RotateTo(1)
	assert.Equal(t, 1.0, e.GetHeading())
}

func TestEntity_PointAt(t *testing.T) {
	e := NewEntity(physics.Vector2D{X: 1, Y: 1}, nil)
	e.PointAt(physics.Vector2D{X: 1, Y: -5})
	assert.InDelta(t, -math.Pi/2, e.Heading, 1e-9)

	e.PointAt(e.Position)
	assert.InDelta(t, -math.Pi/2, e.Heading, 1e-9, "pointing at itself keeps the heading")
}

func TestEntity_OverlapsRotatedSprite(t *testing.T) {
	// long thin sprite: 40 along the heading, 10 across
	e := NewEntity(physics.Vector2D{}, NewSolidMask(40, 10))
	e.RotateTo(math.Pi / 2)

	tests := []struct {
		name     string
		point    physics.Vector2D
		expected bool
	}{
		{"nose", physics.Vector2D{X: 0, Y: 15}, true},
		{"tail", physics.Vector2D{X: 0, Y: -19}, true},
		{"beam_inside", physics.Vector2D{X: 4, Y: 0}, true},
		{"beam_outside", physics.Vector2D{X: 15, Y: 0}, false},
		{"past_nose", physics.Vector2D{X: 0, Y: 25}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Overlaps(tt.point))
		})
	}
}

func TestEntity_OverlapsWithoutSprite(t *testing.T) {
	e := NewEntity(physics.Vector2D{}, nil)
	assert.False(t, e.Overlaps(physics.Vector2D{}))
}

func TestNewMask_FromImageAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 0, color.NRGBA{R: 255, A: 255})
	img.Set(3, 1, color.NRGBA{A: 1})

	m := NewMask(img)
	w, h := m.Bounds()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.True(t, m.Opaque(1, 0))
	assert.True(t, m.Opaque(3, 1))
	assert.False(t, m.Opaque(0, 0))
	assert.False(t, m.Opaque(-1, 0))
	assert.False(t, m.Opaque(4, 1))
}

func TestBoundingRadius(t *testing.T) {
	assert.Equal(t, 0.0, BoundingRadius(nil))
	assert.Equal(t, 25.0, BoundingRadius(NewSolidMask(40, 30)))
	assert.Equal(t, 7.0, BoundingRadius(NewSolidMask(10, 10)), "truncated to whole pixels")
}
