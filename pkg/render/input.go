// pkg/render/input.go
package render

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// KeyHold is how long one key press keeps its control active. Terminals
// report presses but not releases, so auto-repeat refreshes a held key.
const KeyHold = 150 * time.Millisecond

// TerminalInput turns tcell events into engine controls.
//
// Keys: WASD or arrows thrust, space fires, e calls a swarm wave,
// f calls a fighter wave, q or Esc quits. The mouse aims, and its
// left button fires.
type TerminalInput struct {
	camera *Camera
	held   map[rune]time.Time

	mouseFire bool
	aim       physics.Vector2D
	hasAim    bool

	swarm    bool
	fighters bool
	quit     bool
	resized  bool
}

// NewTerminalInput creates an input reader aiming through camera
func NewTerminalInput(camera *Camera) *TerminalInput {
	return &TerminalInput{camera: camera, held: make(map[rune]time.Time)}
}

// Handle consumes one event received at now
func (t *TerminalInput) Handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(ev, now)
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.aim = t.camera.ToWorld(float64(x)+0.5, float64(y)+0.5)
		t.hasAim = true
		t.mouseFire = ev.Buttons()&tcell.Button1 != 0
	case *tcell.EventResize:
		t.resized = true
	}
}

func (t *TerminalInput) handleKey(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit = true
	case tcell.KeyUp:
		t.held['w'] = now
	case tcell.KeyDown:
		t.held['s'] = now
	case tcell.KeyLeft:
		t.held['a'] = now
	case tcell.KeyRight:
		t.held['d'] = now
	case tcell.KeyRune:
		switch ch := unicode.ToLower(ev.Rune()); ch {
		case 'w', 'a', 's', 'd', ' ':
			t.held[ch] = now
		case 'e':
			t.swarm = true
		case 'f':
			t.fighters = true
		case 'q':
			t.quit = true
		}
	}
}

func (t *TerminalInput) down(ch rune, now time.Time) bool {
	at, ok := t.held[ch]
	return ok && now.Sub(at) < KeyHold
}

// Input returns the controls active at now and clears one-shot actions
func (t *TerminalInput) Input(now time.Time) engine.Input {
	in := engine.Input{
		Up:            t.down('w', now),
		Down:          t.down('s', now),
		Left:          t.down('a', now),
		Right:         t.down('d', now),
		Fire:          t.mouseFire || t.down(' ', now),
		Aim:           t.aim,
		HasAim:        t.hasAim,
		SpawnSwarm:    t.swarm,
		SpawnFighters: t.fighters,
	}
	t.swarm, t.fighters = false, false
	return in
}

// Quit reports whether the player asked to leave
func (t *TerminalInput) Quit() bool {
	return t.quit
}

// Resized reports and clears a pending terminal resize
func (t *TerminalInput) Resized() bool {
	r := t.resized
	t.resized = false
	return r
}
