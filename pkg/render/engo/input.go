// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Game control button names
const (
	ButtonUp         = "up"
	ButtonDown       = "down"
	ButtonLeft       = "left"
	ButtonRight      = "right"
	ButtonFire       = "fire"
	ButtonSwarm      = "swarm"
	ButtonFighters   = "fighters"
	ButtonQuit       = "quit"
	ButtonFullscreen = "fullscreen"
)

// buttons is the view of engo's button state the systems read
type buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
}

type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }

// InputSystem turns keyboard and mouse state into an engine.Input each frame
type InputSystem struct {
	buttons buttons
	mouse   func() engo.Mouse
	toWorld func(x, y float32) physics.Vector2D

	// the mouse reports press and release edges; firing lasts in between
	mouseHeld bool
	current   engine.Input
	quit      bool
	toggle    bool
}

// NewInputSystem creates an input system aiming through toWorld
func NewInputSystem(toWorld func(x, y float32) physics.Vector2D) *InputSystem {
	return &InputSystem{
		buttons: engoButtons{},
		mouse:   func() engo.Mouse { return engo.Input.Mouse },
		toWorld: toWorld,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the controls
func (is *InputSystem) Update(dt float32) {
	m := is.mouse()
	if m.Button == engo.MouseButtonLeft {
		switch m.Action {
		case engo.Press:
			is.mouseHeld = true
		case engo.Release:
			is.mouseHeld = false
		}
	}

	is.current = engine.Input{
		Up:            is.buttons.Down(ButtonUp),
		Down:          is.buttons.Down(ButtonDown),
		Left:          is.buttons.Down(ButtonLeft),
		Right:         is.buttons.Down(ButtonRight),
		Fire:          is.mouseHeld || is.buttons.Down(ButtonFire),
		Aim:           is.toWorld(m.X, m.Y),
		HasAim:        true,
		SpawnSwarm:    is.buttons.JustPressed(ButtonSwarm),
		SpawnFighters: is.buttons.JustPressed(ButtonFighters),
	}
	is.quit = is.buttons.JustPressed(ButtonQuit)
	is.toggle = is.buttons.JustPressed(ButtonFullscreen)
}

// Input returns the controls sampled by the last Update
func (is *InputSystem) Input() engine.Input {
	return is.current
}

// QuitRequested reports whether quit was pressed on the last Update
func (is *InputSystem) QuitRequested() bool {
	return is.quit
}

// FullscreenToggled reports whether the fullscreen key was pressed on the last Update
func (is *InputSystem) FullscreenToggled() bool {
	return is.toggle
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonFire, engo.KeyLeftControl)
	engo.Input.RegisterButton(ButtonSwarm, engo.KeySpace)
	engo.Input.RegisterButton(ButtonFighters, engo.KeyF)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
	engo.Input.RegisterButton(ButtonFullscreen, engo.KeyF1)
}
