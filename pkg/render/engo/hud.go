// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/render"
)

// hudFontURL is the name the embedded font is registered under
const hudFontURL = "gofont/goregular.ttf"

// messageLifetime is how long a log line stays on screen, in seconds
const messageLifetime = 4

const hudZ = 100

// Message is one line of the HUD event log
type Message struct {
	Text string
	TTL  float32
}

// HUDSystem manages the heads-up display: status line, event log and minimap
type HUDSystem struct {
	system spriteSystem
	font   *common.Font
	world  physics.World

	messages []Message
	maxLines int
	state    *engine.GameState

	minimapEnabled bool
	minimapSize    float32

	text  *sprite
	frame *sprite
	blips []*sprite
}

// LoadHUDFont registers the embedded Go font with Engo's file loader
func LoadHUDFont() error {
	return engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(goregular.TTF))
}

// NewHUDSystem creates a HUD drawing through system. A nil system keeps
// the HUD's bookkeeping without drawing anything.
func NewHUDSystem(system spriteSystem, world physics.World) (*HUDSystem, error) {
	hud := &HUDSystem{
		system:         system,
		world:          world,
		maxLines:       6,
		minimapEnabled: true,
		minimapSize:    160,
	}
	if system == nil {
		return hud, nil
	}

	hud.font = &common.Font{URL: hudFontURL, FG: color.White, Size: 16}
	if err := hud.font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to create HUD font: %w", err)
	}
	hud.text = hud.newSprite(common.Text{Font: hud.font}, 0, 0)
	hud.text.Position = engo.Point{X: 10, Y: 10}
	hud.frame = hud.newSprite(common.Rectangle{BorderWidth: 1, BorderColor: color.NRGBA{R: 120, G: 120, B: 120, A: 255}}, 0, 0)
	hud.frame.Color = color.NRGBA{A: 120}
	return hud, nil
}

func (hud *HUDSystem) newSprite(drawable common.Drawable, w, h float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{Drawable: drawable, Color: color.White}
	s.SetZIndex(hudZ)
	s.SetShader(common.HUDShader)
	s.SpaceComponent = common.SpaceComponent{Width: w, Height: h}
	hud.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update ages the event log and redraws the HUD
func (hud *HUDSystem) Update(dt float32) {
	kept := hud.messages[:0]
	for _, m := range hud.messages {
		m.TTL -= dt
		if m.TTL > 0 {
			kept = append(kept, m)
		}
	}
	hud.messages = kept

	if hud.system == nil || hud.state == nil {
		return
	}
	hud.text.Drawable = common.Text{Font: hud.font, Text: strings.Join(hud.Lines(), "\n"), LineSpacing: 0.3}
	hud.renderMinimap()
}

// Lines returns the text lines the HUD shows, status first
func (hud *HUDSystem) Lines() []string {
	var lines []string
	if hud.state != nil {
		lines = append(lines, render.StatusText(hud.state))
	}
	for _, m := range hud.messages {
		lines = append(lines, m.Text)
	}
	return lines
}

// AddMessage appends a line to the event log
func (hud *HUDSystem) AddMessage(text string) {
	hud.messages = append(hud.messages, Message{Text: text, TTL: messageLifetime})
	if len(hud.messages) > hud.maxLines {
		hud.messages = hud.messages[len(hud.messages)-hud.maxLines:]
	}
}

// Messages returns the live log lines
func (hud *HUDSystem) Messages() []Message {
	return hud.messages
}

// UpdateGameState sets the snapshot the next Update draws
func (hud *HUDSystem) UpdateGameState(gameState *engine.GameState) {
	hud.state = gameState
}

// Subscribe logs wave, kill and loss events from bus
func (hud *HUDSystem) Subscribe(bus *event.Bus) []*event.Subscription {
	return []*event.Subscription{
		bus.Subscribe(event.WaveSpawned, func(e event.Event) {
			if w, ok := e.(*event.WaveEvent); ok {
				hud.AddMessage(fmt.Sprintf("%d %ss inbound", w.Count, w.Kind))
			}
		}),
		bus.Subscribe(event.EnemyDestroyed, func(e event.Event) {
			if ev, ok := e.(*event.EnemyEvent); ok {
				hud.AddMessage(ev.Kind + " destroyed")
			}
		}),
		bus.Subscribe(event.PlayerDestroyed, func(event.Event) {
			hud.AddMessage("craft lost")
		}),
	}
}

// SetMinimapEnabled toggles the minimap
func (hud *HUDSystem) SetMinimapEnabled(enabled bool) {
	hud.minimapEnabled = enabled
}

// MinimapPoint maps a world position into a minimap of the given size,
// measured from the minimap's top-left corner.
func MinimapPoint(world physics.World, pos physics.Vector2D, size float32) engo.Point {
	h := size * float32(world.HalfHeight/world.HalfWidth)
	return engo.Point{
		X: size * float32((pos.X+world.HalfWidth)/(2*world.HalfWidth)),
		Y: h * float32((world.HalfHeight-pos.Y)/(2*world.HalfHeight)),
	}
}

// renderMinimap draws the field outline with one blip per craft
func (hud *HUDSystem) renderMinimap() {
	hud.frame.Hidden = !hud.minimapEnabled
	if !hud.minimapEnabled {
		hud.hideBlips(0)
		return
	}

	size := hud.minimapSize
	height := size * float32(hud.world.HalfHeight/hud.world.HalfWidth)
	origin := engo.Point{X: engo.WindowWidth() - size - 10, Y: 10}
	hud.frame.Position = origin
	hud.frame.Width, hud.frame.Height = size, height

	n := 0
	blip := func(pos physics.Vector2D, c color.Color) {
		if n == len(hud.blips) {
			hud.blips = append(hud.blips, hud.newSprite(common.Rectangle{}, 3, 3))
		}
		b := hud.blips[n]
		p := MinimapPoint(hud.world, pos, size)
		b.Position = engo.Point{X: origin.X + p.X - 1, Y: origin.Y + p.Y - 1}
		b.Color = c
		b.Hidden = false
		n++
	}
	for _, s := range hud.state.Swarmers {
		if !s.Destroyed {
			blip(s.Position, colorHostileShot)
		}
	}
	for _, f := range hud.state.Fighters {
		if !f.Destroyed {
			blip(f.Position, colorFriendlyShot)
		}
	}
	if !hud.state.Player.Destroyed {
		blip(hud.state.Player.Position, colorShield)
	}
	hud.hideBlips(n)
}

func (hud *HUDSystem) hideBlips(from int) {
	for _, b := range hud.blips[from:] {
		b.Hidden = true
	}
}
