// pkg/render/engo/camera_test.go
package engo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/render"
)

func newTestCameraSystem() (*CameraSystem, *fakeButtons, *float32) {
	cs := NewCameraSystem(render.NewCamera(1280, 800, 1), physics.DefaultWorld())
	b := &fakeButtons{down: map[string]bool{}, pressed: map[string]bool{}}
	scroll := new(float32)
	cs.buttons = b
	cs.scroll = func() float32 { return *scroll }
	return cs, b, scroll
}

func TestCameraSystem_FirstTargetSnaps(t *testing.T) {
	cs, _, _ := newTestCameraSystem()
	cs.SetTarget(physics.Vector2D{X: 1600, Y: 1000})
	assert.Equal(t, physics.Vector2D{X: 960, Y: 600}, cs.GetCurrentPosition())
}

func TestCameraSystem_Smoothing(t *testing.T) {
	cs, _, _ := newTestCameraSystem()
	cs.SetTarget(physics.Vector2D{})
	cs.SetTarget(physics.Vector2D{X: 1600})

	cs.Update(0.05)
	pos := cs.GetCurrentPosition()
	assert.InDelta(t, 960*0.4, pos.X, 1e-3, "followSpeed 8 over 50ms covers 40%")

	for i := 0; i < 100; i++ {
		cs.Update(0.05)
	}
	assert.InDelta(t, 960, cs.GetCurrentPosition().X, 1e-6)

	cs.EnableSmoothing(false)
	cs.SetTarget(physics.Vector2D{X: -800})
	cs.Update(0.016)
	assert.InDelta(t, -480, cs.GetCurrentPosition().X, 1e-9)
}

func TestCameraSystem_ClearTarget(t *testing.T) {
	cs, _, _ := newTestCameraSystem()
	cs.SetTarget(physics.Vector2D{X: 1600})
	cs.ClearTarget()
	before := cs.GetCurrentPosition()
	cs.Update(1)
	assert.Equal(t, before, cs.GetCurrentPosition())
}

func TestCameraSystem_Zoom(t *testing.T) {
	cs, b, scroll := newTestCameraSystem()

	tests := []struct {
		name string
		zoom float32
		want float32
	}{
		{"in range", 2, 2},
		{"clamped low", 0.1, 0.5},
		{"clamped high", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs.SetZoom(tt.zoom)
			assert.Equal(t, tt.want, cs.GetZoom())
			assert.InDelta(t, 1/float64(tt.want), cs.camera.Scale, 1e-6)
		})
	}

	cs.SetZoom(1)
	*scroll = 1
	cs.Update(0.016)
	assert.InDelta(t, 1.1, cs.GetZoom(), 1e-6)

	*scroll = 0
	b.pressed[ButtonResetZoom] = true
	cs.Update(0.016)
	assert.Equal(t, float32(1), cs.GetZoom())

	b.pressed = map[string]bool{}
	b.down[ButtonZoomIn] = true
	cs.Update(0.016)
	assert.Greater(t, cs.GetZoom(), float32(1))
}

func TestCameraSystem_ScreenToWorld(t *testing.T) {
	cs, _, _ := newTestCameraSystem()
	cs.SetTarget(physics.Vector2D{X: 1600, Y: 1000})
	assert.Equal(t, physics.Vector2D{X: 1600, Y: 1000}, cs.ScreenToWorld(1280, 0))
}
