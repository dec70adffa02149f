// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// GameState is a copy of everything a renderer draws for one frame
type GameState struct {
	Tick        uint64
	ElapsedMs   int64
	World       physics.World
	Player      CraftState
	Mounts      []MountState
	Swarmers    []EnemyState
	Fighters    []EnemyState
	Projectiles []ProjectileState
	Centroid    *physics.Vector2D
	Kills       map[string]int
}

// CraftState represents a snapshot of the player craft
type CraftState struct {
	ID           entity.ID
	Position     physics.Vector2D
	Velocity     physics.Vector2D
	Heading      float64
	Armor        int
	MaxArmor     int
	Shield       int
	MaxShield    int
	ShieldActive bool
	ShieldRadius float64
	Destroyed    bool
	Flash        float64
	Fade         float64
}

// MountState represents a snapshot of one turret
type MountState struct {
	Position physics.Vector2D
	Heading  float64
	Ready    bool
}

// EnemyState represents a snapshot of one agent.
// Attacking is only meaningful for fighters, the laser fields for swarmers.
type EnemyState struct {
	ID          entity.ID
	Kind        string
	Position    physics.Vector2D
	Velocity    physics.Vector2D
	Heading     float64
	Destroyed   bool
	Flash       float64
	Fade        float64
	Attacking   bool
	LaserActive bool
	Impact      physics.Vector2D
}

// ProjectileState represents a snapshot of a projectile
type ProjectileState struct {
	ID       entity.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Category entity.ShotCategory
	Side     entity.Allegiance
	Alpha    float64
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds and returns the complete game state.
func (g *Game) createGameStateSnapshot() *GameState {
	state := &GameState{
		Tick:        g.CurrentTick,
		ElapsedMs:   g.ElapsedMs,
		World:       g.Config.World,
		Player:      g.getCraftState(),
		Mounts:      g.getMountStates(),
		Swarmers:    g.getSwarmerStates(),
		Fighters:    g.getFighterStates(),
		Projectiles: g.getProjectileStates(),
		Kills: map[string]int{
			enemy.KindSwarmer: g.director.Kills(enemy.KindSwarmer),
			enemy.KindFighter: g.director.Kills(enemy.KindFighter),
		},
	}
	if c := g.director.Centroid(); c != nil {
		centroid := *c
		state.Centroid = &centroid
	}
	return state
}

func (g *Game) getCraftState() CraftState {
	p := g.player
	return CraftState{
		ID:           p.ID,
		Position:     p.Position,
		Velocity:     p.Velocity,
		Heading:      p.Heading,
		Armor:        p.Armor,
		MaxArmor:     p.MaxArmor,
		Shield:       p.Shield,
		MaxShield:    p.MaxShield,
		ShieldActive: p.ShieldActive(),
		ShieldRadius: p.GetShieldRadius(),
		Destroyed:    p.Destroyed(),
		Flash:        p.FlashAlpha(),
		Fade:         p.FadeAlpha(),
	}
}

func (g *Game) getMountStates() []MountState {
	mounts := g.player.Mounts()
	states := make([]MountState, len(mounts))
	for i, m := range mounts {
		states[i] = MountState{Position: m.Position, Heading: m.Heading, Ready: m.Ready()}
	}
	return states
}

func (g *Game) getSwarmerStates() []EnemyState {
	swarm := g.director.Swarmers()
	states := make([]EnemyState, len(swarm))
	for i, s := range swarm {
		states[i] = EnemyState{
			ID:          s.ID,
			Kind:        enemy.KindSwarmer,
			Position:    s.Position,
			Velocity:    s.Velocity,
			Heading:     s.Heading,
			Destroyed:   s.Destroyed(),
			Flash:       s.FlashAlpha(),
			Fade:        s.FadeAlpha(),
			LaserActive: s.LaserActive(),
			Impact:      s.Impact(),
		}
	}
	return states
}

func (g *Game) getFighterStates() []EnemyState {
	fighters := g.director.Fighters()
	states := make([]EnemyState, len(fighters))
	for i, f := range fighters {
		states[i] = EnemyState{
			ID:        f.ID,
			Kind:      enemy.KindFighter,
			Position:  f.Position,
			Velocity:  f.Velocity,
			Heading:   f.Heading,
			Destroyed: f.Destroyed(),
			Flash:     f.FlashAlpha(),
			Fade:      f.FadeAlpha(),
			Attacking: f.Attacking(),
		}
	}
	return states
}

func (g *Game) getProjectileStates() []ProjectileState {
	shots := g.shots.Projectiles()
	states := make([]ProjectileState, len(shots))
	for i := range shots {
		p := &shots[i]
		states[i] = ProjectileState{
			ID:       p.ID,
			Position: p.Position,
			Velocity: p.Velocity,
			Category: p.Category,
			Side:     p.Side,
			Alpha:    p.Alpha(),
		}
	}
	return states
}
