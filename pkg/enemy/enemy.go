// Package enemy implements the autonomous hostile craft: seek/flee fighters
// that strafe the player in bursts and flocking swarmers armed with short
// range lasers.
package enemy

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// Kind names used in snapshots and events
const (
	KindFighter = "fighter"
	KindSwarmer = "swarmer"
)

// separationEpsilon is the squared distance below which two bodies are
// treated as coincident and exert no push on each other
const separationEpsilon = 1e-9

// Target is the agents' view of the player craft.
// ApplyDamage is used by lasers and by shield contact, which flashes the shield.
type Target interface {
	GetPosition() physics.Vector2D
	GetHeading() float64
	ShieldActive() bool
	GetShieldRadius() float64
	HitTest(p physics.Vector2D) bool
	ApplyDamage(amount int)
}

// Validate checks fighter stats for values the steering and burst logic cannot use
func (s FighterStats) Validate() error {
	switch {
	case s.Armor <= 0:
		return fmt.Errorf("fighter armor must be positive, got %d", s.Armor)
	case s.MaxVelocity <= 0:
		return fmt.Errorf("fighter max velocity must be positive, got %v", s.MaxVelocity)
	case s.RetreatDistance >= s.AttackDistance:
		return fmt.Errorf("fighter retreat distance %v must be below attack distance %v", s.RetreatDistance, s.AttackDistance)
	case s.BurstShots < 0 || s.ShotCooldown < 0 || s.Reload < 0:
		return errors.New("fighter burst timings must not be negative")
	case s.ShotDecay <= 0 || s.ShotDecay > 1:
		return fmt.Errorf("fighter shot decay %v outside (0, 1]", s.ShotDecay)
	}
	return nil
}

// Validate checks swarmer stats for values the flocking rules cannot use
func (s SwarmerStats) Validate() error {
	switch {
	case s.Armor <= 0:
		return fmt.Errorf("swarmer armor must be positive, got %d", s.Armor)
	case s.MaxVelocity <= 0:
		return fmt.Errorf("swarmer max velocity must be positive, got %v", s.MaxVelocity)
	case s.Area <= 0 || s.Orbit <= 0:
		return errors.New("swarmer area and orbit must be positive")
	case s.LaserDuration < 0 || s.Reload < s.LaserDuration:
		return fmt.Errorf("swarmer reload %d must cover laser duration %d", s.Reload, s.LaserDuration)
	}
	return nil
}
