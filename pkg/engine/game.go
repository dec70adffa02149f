// pkg/engine/game.go
package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Input is the control state sampled once per frame.
// Aim is a world position and only used when HasAim is set.
type Input struct {
	Up, Down, Left, Right bool
	Fire                  bool
	Aim                   physics.Vector2D
	HasAim                bool
	SpawnSwarm            bool
	SpawnFighters         bool
}

// Sprites are the collision masks handed to new entities
type Sprites struct {
	Craft   entity.Sprite
	Turret  entity.Sprite
	Fighter entity.Sprite
	Swarmer entity.Sprite
}

// SpritesFrom picks the simulation masks out of an asset registry
func SpritesFrom(r *asset.Registry) Sprites {
	return Sprites{
		Craft:   r.Mask(asset.Craft),
		Turret:  r.Mask(asset.Turret),
		Fighter: r.Mask(asset.Fighter),
		Swarmer: r.Mask(asset.Swarmer),
	}
}

// NewRand returns a PCG source for a seed; seed 0 picks one from the clock
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Game represents one play session: the player craft, the enemy director
// and the shared projectile pool, advanced together one frame at a time.
type Game struct {
	Config      *config.GameConfig
	EntityLock  sync.RWMutex
	CurrentTick uint64
	ElapsedMs   int64
	EventBus    *event.Bus
	Logger      *logging.Logger

	ctx          context.Context
	player       *entity.PlayerCraft
	director     *Director
	shots        *entity.ProjectileManager
	playerKilled bool
}

// NewGame builds a session from a validated configuration
func NewGame(cfg *config.GameConfig, sprites Sprites, rng entity.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid game config")
	}

	g := &Game{
		Config:   cfg,
		EventBus: event.NewEventBus(),
		Logger:   logging.NewLogger(),
		ctx:      logging.WithRunID(context.Background(), ""),
		shots:    entity.NewProjectileManager(cfg.World),
	}

	g.player = entity.NewPlayerCraft(cfg.Player, sprites.Craft, g.shots, cfg.World, rng)
	for slot, mp := range cfg.Player.Mounts {
		profile, err := cfg.Weapon(mp.Weapon)
		if err != nil {
			return nil, logging.WrapError(err, "mount %d", slot)
		}
		m := entity.NewMount(profile, mp.Radius, mp.Angle, sprites.Turret)
		if err := g.player.SetMount(slot, m); err != nil {
			return nil, err
		}
		m.RotateTo(g.player.Heading)
	}

	g.director = NewDirector(cfg, g.player, g.shots, sprites, rng, g.EventBus)
	return g, nil
}

// Context returns the session context carrying the run ID used in log entries
func (g *Game) Context() context.Context {
	return g.ctx
}

// Update advances the game state by one frame of deltaMs milliseconds.
// Negative deltas are treated as zero.
func (g *Game) Update(in Input, deltaMs int) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if deltaMs < 0 {
		g.Logger.Warn(g.ctx, "negative frame delta clamped", "delta", deltaMs, "tick", g.CurrentTick)
		deltaMs = 0
	}

	g.updatePlayer(in, deltaMs)
	g.spawnRequested(in)
	g.director.Update(deltaMs)
	g.shots.Integrate(deltaMs)

	g.CurrentTick++
	g.ElapsedMs += int64(deltaMs)
	g.checkPlayerDestroyed()
}

// updatePlayer integrates the craft from the thrust flags, aims and fires
func (g *Game) updatePlayer(in Input, deltaMs int) {
	g.player.Integrate(entity.Thrust{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right}, deltaMs)

	if in.HasAim {
		g.player.AimAt(in.Aim)
	}
	if in.Fire {
		if n := g.player.Fire(); n > 0 {
			g.EventBus.Publish(event.NewPlayerEvent(event.ShotsFired, g, uint64(g.player.ID), n))
		}
	}
}

func (g *Game) spawnRequested(in Input) {
	if in.SpawnSwarm {
		g.spawnSwarmWave(g.Config.Waves.SwarmSize)
	}
	if in.SpawnFighters {
		g.spawnFighterWave(g.Config.Waves.FighterCount)
	}
}

func (g *Game) spawnSwarmWave(count int) {
	g.director.SpawnSwarmWave(count)
	g.Logger.Info(g.ctx, "wave spawned", "kind", enemy.KindSwarmer, "count", count, "tick", g.CurrentTick)
}

func (g *Game) spawnFighterWave(count int) {
	g.director.SpawnFighterWave(count)
	g.Logger.Info(g.ctx, "wave spawned", "kind", enemy.KindFighter, "count", count, "tick", g.CurrentTick)
}

// checkPlayerDestroyed publishes the player's destruction exactly once
func (g *Game) checkPlayerDestroyed() {
	if g.playerKilled || !g.player.Destroyed() {
		return
	}
	g.playerKilled = true
	g.Logger.Info(g.ctx, "player destroyed",
		"tick", g.CurrentTick,
		"swarmer_kills", g.director.Kills(enemy.KindSwarmer),
		"fighter_kills", g.director.Kills(enemy.KindFighter))
	g.EventBus.Publish(event.NewPlayerEvent(event.PlayerDestroyed, g, uint64(g.player.ID), 0))
}

// SpawnSwarmWave queues a swarm of count agents outside the top edge
func (g *Game) SpawnSwarmWave(count int) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.spawnSwarmWave(count)
}

// SpawnFighterWave adds a line of count fighters near the top edge
func (g *Game) SpawnFighterWave(count int) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.spawnFighterWave(count)
}

// Player returns the player craft. Callers outside the frame loop should use GetGameState.
func (g *Game) Player() *entity.PlayerCraft {
	return g.player
}

// Director returns the enemy director
func (g *Game) Director() *Director {
	return g.director
}

// Projectiles returns the shared projectile manager
func (g *Game) Projectiles() *entity.ProjectileManager {
	return g.shots
}
