// pkg/render/terminal.go
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// TerminalAspect is the height of a terminal cell relative to its width
const TerminalAspect = 2.0

var (
	styleCraft    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleShield   = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleMount    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleSwarmer  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFighter  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleAttack   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFlash    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleWreck    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLaser    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleFriendly = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHostile  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Glyphs used by the terminal renderer
const (
	GlyphSwarmer = 's'
	GlyphFighter = 'F'
	GlyphWreck   = 'x'
	GlyphBullet  = '.'
	GlyphPlasma  = 'o'
	GlyphMount   = '+'
	GlyphShield  = '·'
	GlyphLaser   = ':'
	GlyphStar    = '.'
)

// headingGlyphs are indexed by octant, counter-clockwise from +X
var headingGlyphs = [8]rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'}

// TerminalRenderer draws snapshots onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	camera *Camera
	world  physics.World
	stars  *Starfield
}

// NewTerminalRenderer creates a renderer sized to the screen, scaled so the
// whole world fits on it.
func NewTerminalRenderer(screen tcell.Screen, world physics.World) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen, world: world, camera: NewCamera(0, 0, 1)}
	r.camera.Aspect = TerminalAspect
	r.Resize()
	return r
}

// Resize re-reads the screen size and refits the camera
func (r *TerminalRenderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Width = float64(w)
	r.camera.Height = float64(h)
	r.camera.Scale = FitScale(r.world, float64(w), float64(h), TerminalAspect)
}

// Camera returns the renderer's camera
func (r *TerminalRenderer) Camera() *Camera {
	return r.camera
}

// SetStarfield sets the background drawn on every Clear; nil disables it
func (r *TerminalRenderer) SetStarfield(s *Starfield) {
	r.stars = s
}

// cell converts a world position to a screen cell, reporting whether it is on screen
func (r *TerminalRenderer) cell(p physics.Vector2D) (int, int, bool) {
	fx, fy := r.camera.ToScreen(p)
	return r.onScreen(fx, fy)
}

func (r *TerminalRenderer) onScreen(fx, fy float64) (int, int, bool) {
	x, y := int(math.Floor(fx)), int(math.Floor(fy))
	w, h := r.screen.Size()
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

func (r *TerminalRenderer) put(p physics.Vector2D, ch rune, style tcell.Style) {
	if x, y, ok := r.cell(p); ok {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
	if r.stars == nil {
		return
	}
	for _, st := range r.stars.Stars() {
		fx, fy := r.camera.ToScreenParallax(st.Position, st.Depth)
		if x, y, ok := r.onScreen(fx, fy); ok {
			r.screen.SetContent(x, y, GlyphStar, nil, tcell.StyleDefault.Foreground(rgb(st.Color)))
		}
	}
}

// Present implements Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderCraft implements Renderer
func (r *TerminalRenderer) RenderCraft(craft engine.CraftState) {
	if craft.Destroyed {
		if craft.Fade > 0 {
			r.put(craft.Position, GlyphWreck, styleWreck)
		}
		return
	}
	if craft.ShieldActive {
		r.ring(craft.Position, craft.ShieldRadius, GlyphShield, styleShield)
	}
	style := styleCraft
	if craft.Flash > 0 {
		style = styleFlash
	}
	r.put(craft.Position, HeadingGlyph(craft.Heading), style)
}

// RenderMount implements Renderer
func (r *TerminalRenderer) RenderMount(mount engine.MountState) {
	style := styleMount
	if mount.Ready {
		style = style.Bold(true)
	}
	r.put(mount.Position, GlyphMount, style)
}

// RenderEnemy implements Renderer
func (r *TerminalRenderer) RenderEnemy(e engine.EnemyState) {
	if e.Destroyed {
		if e.Fade > 0 {
			r.put(e.Position, GlyphWreck, styleWreck)
		}
		return
	}

	glyph, style := rune(GlyphSwarmer), styleSwarmer
	if e.Kind == enemy.KindFighter {
		glyph, style = GlyphFighter, styleFighter
		if e.Attacking {
			style = styleAttack
		}
	}
	if e.LaserActive {
		r.line(e.Position, e.Impact, GlyphLaser, styleLaser)
	}
	if e.Flash > 0 {
		style = styleFlash
	}
	r.put(e.Position, glyph, style)
}

// RenderProjectile implements Renderer
func (r *TerminalRenderer) RenderProjectile(p engine.ProjectileState) {
	glyph := rune(GlyphBullet)
	if p.Category == entity.Plasma {
		glyph = GlyphPlasma
	}
	style := styleHostile
	if p.Side == entity.Friendly {
		style = styleFriendly
	}
	r.put(p.Position, glyph, style)
}

// RenderStatus implements StatusRenderer, filling the top row
func (r *TerminalRenderer) RenderStatus(state *engine.GameState) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	drawText(r.screen, 0, 0, " "+StatusText(state)+" ", styleStatus)
}

// StatusText summarises a snapshot in one line
func StatusText(state *engine.GameState) string {
	p := state.Player
	text := fmt.Sprintf("armor %d/%d  shield %d/%d  swarmers %d  fighters %d  kills %d/%d  %ds",
		p.Armor, p.MaxArmor, p.Shield, p.MaxShield,
		len(state.Swarmers), len(state.Fighters),
		state.Kills[enemy.KindSwarmer], state.Kills[enemy.KindFighter],
		state.ElapsedMs/1000)
	if p.Destroyed {
		text += "  DESTROYED"
	}
	return text
}

// ring draws a circle of the given world radius around centre
func (r *TerminalRenderer) ring(centre physics.Vector2D, radius float64, ch rune, style tcell.Style) {
	if radius <= 0 {
		return
	}
	steps := int(math.Ceil(2 * math.Pi * radius / r.camera.Scale))
	steps = max(steps, 8)
	for i := 0; i < steps; i++ {
		r.put(centre.Add(physics.FromAngle(2*math.Pi*float64(i)/float64(steps), radius)), ch, style)
	}
}

// line draws a straight segment between two world positions
func (r *TerminalRenderer) line(from, to physics.Vector2D, ch rune, style tcell.Style) {
	fx0, fy0 := r.camera.ToScreen(from)
	fx1, fy1 := r.camera.ToScreen(to)
	steps := int(math.Ceil(math.Max(math.Abs(fx1-fx0), math.Abs(fy1-fy0))))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		if x, y, ok := r.onScreen(fx0+(fx1-fx0)*t, fy0+(fy1-fy0)*t); ok {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// HeadingGlyph returns the arrow character closest to a heading in radians
func HeadingGlyph(heading float64) rune {
	octant := int(math.Round(physics.NormalizeAngle(heading)/(math.Pi/4))) & 7
	return headingGlyphs[octant]
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, style)
		x++
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
