// Package engine provides unit tests for game.go
package engine

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, mutate func(*config.GameConfig)) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	g, err := NewGame(cfg, SpritesFrom(asset.NewRegistry()), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	g.Logger = logging.NewNopLogger()
	return g
}

func run(g *Game, in Input, frames int) {
	for i := 0; i < frames; i++ {
		g.Update(in, 16)
	}
}

func TestNewGame_InitializesState(t *testing.T) {
	g := newTestGame(t, nil)

	p := g.Player()
	assert.Equal(t, physics.Vector2D{}, p.Position)
	assert.InDelta(t, math.Pi/2, p.Heading, 1e-12)
	require.Len(t, p.Mounts(), 2)
	for _, m := range p.Mounts() {
		assert.Equal(t, "autocannon", m.Profile.Name)
		assert.Equal(t, 8.0, m.BarrelLength)
		assert.InDelta(t, 31.5, m.Position.Distance(p.Position), 1e-9)
	}
	assert.Zero(t, g.Director().Len())
	assert.Zero(t, g.Projectiles().Len())
	assert.NotEmpty(t, logging.GetRunID(g.Context()))
}

func TestNewGame_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.World.PixelRatio = 0
	g, err := NewGame(cfg, Sprites{}, rand.New(rand.NewPCG(1, 2)))
	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, physics.ErrInvalidWorld)

	cfg = config.DefaultConfig()
	cfg.Player.Mounts[1].Weapon = "railgun"
	_, err = NewGame(cfg, Sprites{}, rand.New(rand.NewPCG(1, 2)))
	assert.ErrorIs(t, err, config.ErrUnknownWeapon)
}

func TestGame_ThrustAndWallClamp(t *testing.T) {
	g := newTestGame(t, nil)

	run(g, Input{Up: true}, 30)
	p := g.Player()
	assert.Greater(t, p.Position.Y, 0.0)
	assert.Equal(t, 0.0, p.Position.X)

	run(g, Input{Up: true, Right: true}, 600)
	assert.Equal(t, 1000.0, p.Position.Y, "pinned to the top wall")
	assert.Equal(t, 1600.0, p.Position.X, "pinned to the right wall")
	assert.LessOrEqual(t, p.Velocity.Length(), p.Stats.MaxVelocity)
}

func TestGame_NegativeDeltaIsClamped(t *testing.T) {
	g := newTestGame(t, nil)
	var buf bytes.Buffer
	g.Logger = logging.NewLoggerWithWriter(&buf, slog.LevelDebug)

	g.Update(Input{Up: true, Fire: true}, -50)

	assert.Equal(t, uint64(1), g.CurrentTick)
	assert.Zero(t, g.ElapsedMs)
	assert.Equal(t, physics.Vector2D{}, g.Player().Position)
	assert.Contains(t, buf.String(), "negative frame delta clamped")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), logging.GetRunID(g.Context()))
}

func TestGame_FireAndAim(t *testing.T) {
	g := newTestGame(t, nil)
	var fired []int
	g.EventBus.Subscribe(event.ShotsFired, func(e event.Event) {
		fired = append(fired, e.(*event.PlayerEvent).Count)
	})

	aim := physics.Vector2D{X: 300, Y: 300}
	g.Update(Input{Fire: true, Aim: aim, HasAim: true}, 16)

	require.Equal(t, []int{2}, fired)
	assert.Equal(t, 2, g.Projectiles().Len())
	for _, m := range g.GetGameState().Mounts {
		assert.InDelta(t, m.Position.AngleTo(aim), m.Heading, 1e-9)
		assert.False(t, m.Ready)
	}

	g.Update(Input{Fire: true}, 16)
	assert.Len(t, fired, 1, "mounts are still reloading")

	run(g, Input{}, 7)
	g.Update(Input{Fire: true}, 16)
	assert.Len(t, fired, 2)
}

func TestGame_SpawnInputs(t *testing.T) {
	g := newTestGame(t, nil)
	waves := 0
	g.EventBus.Subscribe(event.WaveSpawned, func(event.Event) { waves++ })

	g.Update(Input{SpawnSwarm: true, SpawnFighters: true}, 16)
	assert.Len(t, g.Director().Swarmers(), 40)
	assert.Len(t, g.Director().Fighters(), 5)
	assert.Equal(t, 2, waves)

	g.SpawnSwarmWave(3)
	g.SpawnFighterWave(2)
	assert.Equal(t, 50, g.Director().Len())
}

func TestGame_FighterDamagesShieldlessPlayer(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) { c.Player.Shield = 0 })
	g.SpawnFighterWave(1)

	run(g, Input{}, 150)
	p := g.Player()
	assert.Less(t, p.Armor, p.MaxArmor)
	assert.False(t, p.Destroyed())
}

func TestGame_FighterInsideAttackRangeLandsABurst(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) { c.Player.ShieldRegen = 0 })
	g.SpawnFighterWave(1)

	p := g.Player()
	f := g.Director().Fighters()[0]
	stats := f.Stats
	f.Position = p.Position.Add(physics.Vector2D{Y: stats.AttackDistance - 1})
	require.True(t, f.Attacking())

	// one reload and burst, a second of turning, and the shot's flight time
	budgetMs := stats.Reload + stats.BurstShots*stats.ShotCooldown + 1000 +
		int(1000*stats.AttackDistance/stats.ShotVelocity)
	start := p.Armor + p.Shield

	frames := 0
	for ; frames*16 < budgetMs && start-(p.Armor+p.Shield) < stats.Damage; frames++ {
		g.Update(Input{}, 16)
	}
	assert.GreaterOrEqual(t, start-(p.Armor+p.Shield), stats.Damage, "landed within %d frames", frames)
	assert.Equal(t, physics.Vector2D{}, p.Velocity, "the player never moved")
}

func TestGame_PlayerDestroyedPublishedOnce(t *testing.T) {
	g := newTestGame(t, func(c *config.GameConfig) {
		c.Player.Armor = 10
		c.Player.Shield = 0
	})
	destroyed := 0
	g.EventBus.Subscribe(event.PlayerDestroyed, func(event.Event) { destroyed++ })
	g.SpawnFighterWave(1)

	run(g, Input{Fire: true}, 300)
	require.True(t, g.Player().Destroyed())
	assert.Equal(t, 1, destroyed)

	state := g.GetGameState()
	assert.True(t, state.Player.Destroyed)
	assert.Equal(t, 0.0, state.Player.Flash)
}

func TestGame_GetGameStateIsACopy(t *testing.T) {
	g := newTestGame(t, nil)
	g.SpawnSwarmWave(10)
	g.SpawnFighterWave(2)
	run(g, Input{Fire: true, HasAim: true, Aim: physics.Vector2D{Y: 500}}, 10)

	state := g.GetGameState()
	assert.Equal(t, uint64(10), state.Tick)
	assert.Equal(t, int64(160), state.ElapsedMs)
	assert.Len(t, state.Swarmers, 10)
	assert.Len(t, state.Fighters, 2)
	assert.Equal(t, g.Projectiles().Len(), len(state.Projectiles))
	require.NotNil(t, state.Centroid)
	for _, s := range state.Swarmers {
		assert.Equal(t, enemy.KindSwarmer, s.Kind)
	}

	state.Swarmers[0].Position = physics.Vector2D{X: 12345}
	state.Kills[enemy.KindSwarmer] = 99
	*state.Centroid = physics.Vector2D{X: -1}
	again := g.GetGameState()
	assert.NotEqual(t, 12345.0, again.Swarmers[0].Position.X)
	assert.Zero(t, again.Kills[enemy.KindSwarmer])
	assert.NotEqual(t, -1.0, again.Centroid.X)
}

func TestGame_LongSkirmishStaysFinite(t *testing.T) {
	g := newTestGame(t, nil)
	rng := rand.New(rand.NewPCG(9, 9))
	g.Update(Input{SpawnSwarm: true, SpawnFighters: true}, 16)

	for frame := 0; frame < 900; frame++ {
		in := Input{
			Up:    rng.Float64() < 0.5,
			Down:  rng.Float64() < 0.2,
			Left:  rng.Float64() < 0.3,
			Right: rng.Float64() < 0.3,
			Fire:  true,
		}
		if c := g.Director().Centroid(); c != nil {
			in.Aim, in.HasAim = *c, true
		}
		g.Update(in, 10+rng.IntN(20))
	}

	state := g.GetGameState()
	assert.False(t, math.IsNaN(state.Player.Position.X) || math.IsNaN(state.Player.Position.Y))
	for _, s := range append(state.Swarmers, state.Fighters...) {
		require.False(t, math.IsNaN(s.Position.X) || math.IsNaN(s.Position.Y), "agent %d", s.ID)
	}
	for _, p := range state.Projectiles {
		assert.False(t, state.World.Expired(p.Position))
	}
}

// TestGameConcurrentSnapshots runs the frame loop against snapshot readers,
// the way a renderer goroutine reads state while the simulation advances.
func TestGameConcurrentSnapshots(t *testing.T) {
	g := newTestGame(t, nil)
	g.SpawnSwarmWave(20)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		run(g, Input{Fire: true, Up: true}, 200)
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			state := g.GetGameState()
			_ = len(state.Swarmers) + len(state.Projectiles)
		}
	}()
	wg.Wait()

	assert.Equal(t, uint64(200), g.GetGameState().Tick)
}
