// pkg/render/terminal_test.go
package render

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(screen tcell.Screen, x, y int) (rune, tcell.Color) {
	mainc, _, style, _ := screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return mainc, fg
}

// cols returns the world offset of n terminal columns
func cols(r *TerminalRenderer, n float64) float64 {
	return n * r.Camera().Scale
}

func TestTerminalRenderer_FitsWorld(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	assert.InDelta(t, 2000.0/48, r.Camera().Scale, 1e-9)
	for _, p := range []physics.Vector2D{{X: -1599, Y: 999}, {X: 1599, Y: -999}} {
		_, _, on := r.cell(p)
		assert.True(t, on, "%v is on screen", p)
	}
}

func TestTerminalRenderer_Craft(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	r.Clear()
	r.RenderCraft(engine.CraftState{Heading: math.Pi / 2})
	r.Present()
	ch, fg := cellAt(screen, 40, 12)
	assert.Equal(t, '^', ch)
	assert.Equal(t, tcell.ColorWhite, fg)

	r.Clear()
	r.RenderCraft(engine.CraftState{Flash: 0.5})
	ch, fg = cellAt(screen, 40, 12)
	assert.Equal(t, '>', ch)
	assert.Equal(t, tcell.ColorRed, fg)

	r.Clear()
	r.RenderCraft(engine.CraftState{Destroyed: true})
	ch, _ = cellAt(screen, 40, 12)
	assert.NotEqual(t, GlyphWreck, ch, "fully faded wrecks are not drawn")
}

func TestTerminalRenderer_Shield(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	r.Clear()
	r.RenderCraft(engine.CraftState{ShieldActive: true, ShieldRadius: cols(r, 6.5)})
	ch, fg := cellAt(screen, 46, 12)
	assert.Equal(t, GlyphShield, ch)
	assert.Equal(t, tcell.ColorDarkCyan, fg)
}

func TestTerminalRenderer_Enemies(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	r.Clear()
	r.RenderEnemy(engine.EnemyState{Kind: enemy.KindFighter, Position: physics.Vector2D{X: cols(r, 5.5)}})
	r.RenderEnemy(engine.EnemyState{Kind: enemy.KindFighter, Attacking: true, Position: physics.Vector2D{X: cols(r, 7.5)}})
	r.RenderEnemy(engine.EnemyState{Kind: enemy.KindSwarmer, Destroyed: true, Fade: 0.5, Position: physics.Vector2D{X: cols(r, 9.5)}})
	r.RenderEnemy(engine.EnemyState{
		Kind:        enemy.KindSwarmer,
		Position:    physics.Vector2D{X: -cols(r, 10.5)},
		LaserActive: true,
		Impact:      physics.Vector2D{},
	})

	ch, fg := cellAt(screen, 45, 12)
	assert.Equal(t, GlyphFighter, ch)
	assert.Equal(t, tcell.ColorOrange, fg)

	_, fg = cellAt(screen, 47, 12)
	assert.Equal(t, tcell.ColorRed, fg)

	ch, _ = cellAt(screen, 49, 12)
	assert.Equal(t, GlyphWreck, ch)

	ch, _ = cellAt(screen, 29, 12)
	assert.Equal(t, GlyphSwarmer, ch)
	ch, fg = cellAt(screen, 35, 12)
	assert.Equal(t, GlyphLaser, ch)
	assert.Equal(t, tcell.ColorFuchsia, fg)
}

func TestTerminalRenderer_Projectiles(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	r.Clear()
	r.RenderProjectile(engine.ProjectileState{Category: entity.Bullet, Side: entity.Friendly, Position: physics.Vector2D{X: cols(r, 10.5)}})
	r.RenderProjectile(engine.ProjectileState{Category: entity.Plasma, Side: entity.Enemy, Position: physics.Vector2D{Y: cols(r, 2*4.5)}})
	// far off screen must be ignored
	r.RenderProjectile(engine.ProjectileState{Position: physics.Vector2D{X: 1e6, Y: -1e6}})

	ch, fg := cellAt(screen, 50, 12)
	assert.Equal(t, GlyphBullet, ch)
	assert.Equal(t, tcell.ColorYellow, fg)

	ch, fg = cellAt(screen, 40, 7)
	assert.Equal(t, GlyphPlasma, ch)
	assert.Equal(t, tcell.ColorRed, fg)
}

func TestTerminalRenderer_Status(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	state := sampleState()
	state.Kills = map[string]int{enemy.KindSwarmer: 3}
	Draw(r, state)

	var row []rune
	for x := 0; x < 30; x++ {
		ch, _ := cellAt(screen, x, 0)
		row = append(row, ch)
	}
	assert.Equal(t, " armor 100/100  shield 0/0  sw", string(row))
}

func TestTerminalRenderer_Starfield(t *testing.T) {
	screen := newTestScreen(t)
	world := physics.DefaultWorld()
	r := NewTerminalRenderer(screen, world)
	r.SetStarfield(NewStarfield(200, 0.2, r.Camera(), world, rand.New(rand.NewPCG(1, 1))))

	r.Clear()
	stars := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if ch, _ := cellAt(screen, x, y); ch == GlyphStar {
				stars++
			}
		}
	}
	assert.Greater(t, stars, 0)

	r.SetStarfield(nil)
	r.Clear()
	ch, _ := cellAt(screen, 0, 0)
	assert.Equal(t, ' ', ch)
}

func TestTerminalRenderer_Resize(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.DefaultWorld())

	screen.SetSize(160, 48)
	r.Resize()
	assert.Equal(t, 160.0, r.Camera().Width)
	assert.InDelta(t, 2000.0/96, r.Camera().Scale, 1e-9)
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '>'},
		{math.Pi / 2, '^'},
		{math.Pi, '<'},
		{-math.Pi, '<'},
		{-math.Pi / 2, 'v'},
		{math.Pi / 4, '/'},
		{-3 * math.Pi / 4, '/'},
		{2 * math.Pi, '>'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeadingGlyph(tt.heading), "heading %v", tt.heading)
	}
}

func TestStatusText(t *testing.T) {
	state := sampleState()
	state.ElapsedMs = 12500
	state.Kills = map[string]int{enemy.KindSwarmer: 4, enemy.KindFighter: 2}
	assert.Equal(t, "armor 100/100  shield 0/0  swarmers 1  fighters 1  kills 4/2  12s", StatusText(state))

	state.Player.Destroyed = true
	assert.Contains(t, StatusText(state), "DESTROYED")
}
