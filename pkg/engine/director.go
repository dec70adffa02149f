// pkg/engine/director.go
package engine

import (
	"math"

	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Director owns the live enemy collections. Each frame it steers every
// agent, resolves the player's shots against it and prunes the wrecks whose
// fade has run out. The player and projectile manager are shared with the Game.
type Director struct {
	swarmers []*enemy.Swarmer
	fighters []*enemy.Fighter

	player *entity.PlayerCraft
	shots  *entity.ProjectileManager
	bus    *event.Bus
	rng    entity.Rand

	world        physics.World
	waves        config.WaveConfig
	fighterStats enemy.FighterStats
	swarmerStats enemy.SwarmerStats
	sprites      Sprites

	centroid *physics.Vector2D
	kills    map[string]int
}

// NewDirector creates a director with no enemies on the field
func NewDirector(cfg *config.GameConfig, player *entity.PlayerCraft, shots *entity.ProjectileManager, sprites Sprites, rng entity.Rand, bus *event.Bus) *Director {
	return &Director{
		player:       player,
		shots:        shots,
		bus:          bus,
		rng:          rng,
		world:        cfg.World,
		waves:        cfg.Waves,
		fighterStats: cfg.Fighter,
		swarmerStats: cfg.Swarmer,
		sprites:      sprites,
		kills:        make(map[string]int),
	}
}

// Update advances every agent by one frame: the swarm first around its
// centroid, then the fighters, then removal of finished wrecks.
func (d *Director) Update(deltaMs int) {
	d.centroid = enemy.Centroid(d.swarmers)

	for _, s := range d.swarmers {
		wasDestroyed := s.Destroyed()
		s.Update(deltaMs, d.player, d.centroid, d.swarmers)
		d.shots.ResolveHits(s)

		if s.LaserFired() {
			d.publish(event.NewEnemyEvent(event.LaserFired, d, uint64(s.ID), enemy.KindSwarmer, s.Position))
		}
		if !wasDestroyed && s.Destroyed() {
			d.destroyed(enemy.KindSwarmer, s.ID, s.Position)
		}
	}

	for _, f := range d.fighters {
		wasDestroyed := f.Destroyed()
		f.Update(deltaMs, d.player)
		d.shots.ResolveHits(f)

		if !wasDestroyed && f.Destroyed() {
			d.destroyed(enemy.KindFighter, f.ID, f.Position)
		}
	}

	d.prune()
}

func (d *Director) destroyed(kind string, id entity.ID, position physics.Vector2D) {
	d.kills[kind]++
	d.publish(event.NewEnemyEvent(event.EnemyDestroyed, d, uint64(id), kind, position))
}

func (d *Director) publish(e event.Event) {
	if d.bus != nil {
		d.bus.Publish(e)
	}
}

// prune drops agents whose destruction fade has elapsed, keeping order
func (d *Director) prune() {
	swarmers := d.swarmers[:0]
	for _, s := range d.swarmers {
		if !s.Removable() {
			swarmers = append(swarmers, s)
		}
	}
	clear(d.swarmers[len(swarmers):])
	d.swarmers = swarmers

	fighters := d.fighters[:0]
	for _, f := range d.fighters {
		if !f.Removable() {
			fighters = append(fighters, f)
		}
	}
	clear(d.fighters[len(fighters):])
	d.fighters = fighters
}

// SpawnSwarmWave adds count swarmers in a disc above the top edge. The disc
// is sized so each member gets SwarmArea of room; positions are uniform over it.
func (d *Director) SpawnSwarmWave(count int) {
	if count <= 0 {
		return
	}

	radius := math.Sqrt(d.waves.SwarmArea * float64(count) / math.Pi)
	center := physics.Vector2D{X: 0, Y: d.world.HalfHeight + d.waves.RespawnLine + radius}
	for i := 0; i < count; i++ {
		angle := d.rng.Float64() * 2 * math.Pi
		r := radius * math.Sqrt(d.rng.Float64())
		pos := center.Add(physics.FromAngle(angle, r))
		d.swarmers = append(d.swarmers, enemy.NewSwarmer(pos, d.sprites.Swarmer, d.swarmerStats, d.world))
	}

	d.publish(event.NewWaveEvent(d, enemy.KindSwarmer, count))
}

// SpawnFighterWave adds count fighters evenly spaced along a line just
// inside the top edge, centred on the vertical axis.
func (d *Director) SpawnFighterWave(count int) {
	if count <= 0 {
		return
	}

	y := d.world.HalfHeight - d.waves.RespawnLine
	width := d.waves.FighterLine
	for i := 0; i < count; i++ {
		x := -width/2 + width*float64(i+1)/float64(count+1)
		f := enemy.NewFighter(physics.Vector2D{X: x, Y: y}, d.sprites.Fighter, d.fighterStats, d.shots, d.world)
		f.RotateToDegrees(-90)
		d.fighters = append(d.fighters, f)
	}

	d.publish(event.NewWaveEvent(d, enemy.KindFighter, count))
}

// Swarmers returns the live swarm, wrecks included until they are pruned
func (d *Director) Swarmers() []*enemy.Swarmer {
	return d.swarmers
}

// Fighters returns the live fighters, wrecks included until they are pruned
func (d *Director) Fighters() []*enemy.Fighter {
	return d.fighters
}

// Len returns the number of agents on the field
func (d *Director) Len() int {
	return len(d.swarmers) + len(d.fighters)
}

// Centroid returns the swarm centroid computed by the last Update, or nil
func (d *Director) Centroid() *physics.Vector2D {
	return d.centroid
}

// Kills returns the number of agents destroyed so far for a kind
func (d *Director) Kills(kind string) int {
	return d.kills[kind]
}

// Clear removes every agent
func (d *Director) Clear() {
	d.swarmers = nil
	d.fighters = nil
	d.centroid = nil
}
