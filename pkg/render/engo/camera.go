// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/render"
)

// Camera control button names
const (
	ButtonZoomIn    = "zoomIn"
	ButtonZoomOut   = "zoomOut"
	ButtonResetZoom = "resetZoom"
)

// CameraSystem keeps the shared camera on the player craft and handles zoom
type CameraSystem struct {
	camera    *render.Camera
	world     physics.World
	baseScale float64

	// Target to follow
	target    physics.Vector2D
	targetSet bool

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	buttons buttons
	scroll  func() float32
}

// NewCameraSystem creates a camera system driving camera over world
func NewCameraSystem(camera *render.Camera, world physics.World) *CameraSystem {
	return &CameraSystem{
		camera:      camera,
		world:       world,
		baseScale:   camera.Scale,
		zoom:        1.0,
		minZoom:     0.5,
		maxZoom:     3.0,
		followSpeed: 8.0,
		smoothing:   true,
		buttons:     engoButtons{},
		scroll:      func() float32 { return engo.Input.Mouse.ScrollY },
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update updates the camera position and zoom
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := cs.scroll(); scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
	if cs.buttons.Down(ButtonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.buttons.Down(ButtonZoomOut) {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.JustPressed(ButtonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves the camera toward the follow position for the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	current := cs.camera.Position
	cs.camera.Follow(cs.target, cs.world)
	if !cs.smoothing {
		return
	}
	goal := cs.camera.Position
	step := float64(cs.followSpeed * dt)
	if step > 1 {
		step = 1
	}
	cs.camera.Position = current.Add(goal.Sub(current).Scale(step))
}

// SetTarget sets the target position for the camera to follow
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if first {
		cs.camera.Follow(target, cs.world)
	}
}

// ClearTarget clears the camera target
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the zoom level; zoom 2 shows half as much of the world
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
	cs.camera.Scale = cs.baseScale / float64(cs.zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.camera.Position
}

// ScreenToWorld converts a window position to world coordinates
func (cs *CameraSystem) ScreenToWorld(x, y float32) physics.Vector2D {
	return cs.camera.ToWorld(float64(x), float64(y))
}

// SetupCameraControls registers the zoom key bindings
func SetupCameraControls() {
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyR)
}
