// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. GSF_WORLD_HALFHEIGHT
const EnvPrefix = "GSF"

// ErrUnknownWeapon is returned when a mount names a weapon that is not configured
var ErrUnknownWeapon = errors.New("unknown weapon")

// GameConfig contains everything needed to build a game session
type GameConfig struct {
	Seed    uint64                 `json:"seed" mapstructure:"seed"`
	World   physics.World          `json:"world" mapstructure:"world"`
	Player  entity.CraftStats      `json:"player" mapstructure:"player"`
	Weapons []entity.WeaponProfile `json:"weapons" mapstructure:"weapons"`
	Fighter enemy.FighterStats     `json:"fighter" mapstructure:"fighter"`
	Swarmer enemy.SwarmerStats     `json:"swarmer" mapstructure:"swarmer"`
	Waves   WaveConfig             `json:"waves" mapstructure:"waves"`
}

// WaveConfig places spawned waves. RespawnLine is the distance from the top
// edge used by both wave kinds, SwarmArea the space each swarmer claims in a
// fresh group and FighterLine the width fighters are spread over.
type WaveConfig struct {
	RespawnLine  float64 `json:"respawnLine" mapstructure:"respawnLine"`
	SwarmArea    float64 `json:"swarmArea" mapstructure:"swarmArea"`
	FighterLine  float64 `json:"fighterLine" mapstructure:"fighterLine"`
	SwarmSize    int     `json:"swarmSize" mapstructure:"swarmSize"`
	FighterCount int     `json:"fighterCount" mapstructure:"fighterCount"`
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World:   physics.DefaultWorld(),
		Player:  entity.DefaultCraftStats(),
		Weapons: []entity.WeaponProfile{entity.DefaultWeaponProfile()},
		Fighter: enemy.DefaultFighterStats(),
		Swarmer: enemy.DefaultSwarmerStats(),
		Waves: WaveConfig{
			RespawnLine:  100,
			SwarmArea:    300,
			FighterLine:  1000,
			SwarmSize:    40,
			FighterCount: 5,
		},
	}
}

// Load builds a configuration from the defaults, an optional JSON file and
// GSF_ environment overrides, in that order of precedence. An empty path
// skips the file.
func Load(path string) (*GameConfig, error) {
	v := viper.New()

	defaults, err := toMap(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg GameConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes a configuration to a file as indented JSON
func Save(cfg *GameConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every section and that each player mount names a configured weapon
func (c *GameConfig) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	if c.Player.Armor <= 0 || c.Player.MaxVelocity <= 0 || c.Player.Mass <= 0 {
		return errors.New("player: armor, mass and max velocity must be positive")
	}
	if c.Player.Drag <= 0 || c.Player.Drag > 1 {
		return fmt.Errorf("player: drag %v outside (0, 1]", c.Player.Drag)
	}
	for _, w := range c.Weapons {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for i, m := range c.Player.Mounts {
		if _, err := c.Weapon(m.Weapon); err != nil {
			return fmt.Errorf("player mount %d: %w", i, err)
		}
	}
	if err := c.Fighter.Validate(); err != nil {
		return err
	}
	if err := c.Swarmer.Validate(); err != nil {
		return err
	}
	if c.Waves.SwarmArea <= 0 || c.Waves.FighterLine < 0 {
		return errors.New("waves: swarm area must be positive and fighter line non-negative")
	}
	if c.Waves.SwarmSize < 0 || c.Waves.FighterCount < 0 {
		return errors.New("waves: wave sizes must not be negative")
	}
	return nil
}

// Weapon looks up a weapon profile by name
func (c *GameConfig) Weapon(name string) (entity.WeaponProfile, error) {
	for _, w := range c.Weapons {
		if w.Name == name {
			return w, nil
		}
	}
	return entity.WeaponProfile{}, fmt.Errorf("%w %q", ErrUnknownWeapon, name)
}

// toMap round-trips cfg through JSON so viper sees the same keys a config file would use
func toMap(cfg *GameConfig) (map[string]interface{}, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
