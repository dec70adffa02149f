// Package autopilot flies the player craft from game snapshots. Headless
// runs and demos use it in place of a human at the controls.
package autopilot

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Behavior selects how the pilot moves; every behavior aims and fires the same way
type Behavior int

const (
	BehaviorTurret    Behavior = iota // holds position
	BehaviorEvasive                   // keeps its distance from the nearest enemy
	BehaviorAggressor                 // closes in on the nearest enemy
)

var behaviorNames = map[Behavior]string{
	BehaviorTurret:    "turret",
	BehaviorEvasive:   "evasive",
	BehaviorAggressor: "aggressor",
}

// String returns the behavior name
func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Behavior(%d)", int(b))
}

// ParseBehavior returns the behavior with the given name
func ParseBehavior(name string) (Behavior, error) {
	for b, n := range behaviorNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", name)
}

// Pilot decides controls for one frame at a time
type Pilot struct {
	Behavior Behavior

	// FireRange is the distance at which the pilot opens fire
	FireRange float64
	// Standoff is the distance evasive pilots keep and aggressors close to
	Standoff float64
	// deadband keeps the pilot from jittering around Standoff
	deadband float64

	// AutoWaves calls a new wave, alternating kinds, once the field is clear
	AutoWaves bool
	nextWave  bool
}

// New creates a pilot with default ranges
func New(behavior Behavior) *Pilot {
	return &Pilot{
		Behavior:  behavior,
		FireRange: 1500,
		Standoff:  400,
		deadband:  50,
	}
}

// Decide returns the controls for the snapshot
func (p *Pilot) Decide(state *engine.GameState) engine.Input {
	var in engine.Input
	if state == nil || state.Player.Destroyed {
		return in
	}

	self := state.Player.Position
	target, ok := Nearest(state)
	if !ok {
		if p.AutoWaves {
			in.SpawnSwarm, in.SpawnFighters = !p.nextWave, p.nextWave
			p.nextWave = !p.nextWave
		}
		return in
	}

	in.Aim = target
	in.HasAim = true
	in.Fire = self.Distance(target) <= p.FireRange

	switch p.Behavior {
	case BehaviorEvasive:
		if self.Distance(target) < p.Standoff-p.deadband {
			steer(&in, self.Sub(target))
		}
	case BehaviorAggressor:
		if self.Distance(target) > p.Standoff+p.deadband {
			steer(&in, target.Sub(self))
		}
	}
	return in
}

// steer thrusts along the dominant components of dir
func steer(in *engine.Input, dir physics.Vector2D) {
	d := dir.Normalize()
	const threshold = 0.38 // about sin(22.5 degrees)
	in.Right = d.X > threshold
	in.Left = d.X < -threshold
	in.Up = d.Y > threshold
	in.Down = d.Y < -threshold
}

// Nearest returns the position of the live enemy closest to the player
func Nearest(state *engine.GameState) (physics.Vector2D, bool) {
	self := state.Player.Position
	best := math.Inf(1)
	var pos physics.Vector2D
	found := false
	for _, group := range [][]engine.EnemyState{state.Swarmers, state.Fighters} {
		for _, e := range group {
			if e.Destroyed {
				continue
			}
			if d := self.Distance(e.Position); d < best {
				best, pos, found = d, e.Position, true
			}
		}
	}
	return pos, found
}
