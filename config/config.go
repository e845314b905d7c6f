// Package config holds the single set of policy knobs the engine,
// generator, solver, and parity harness must all agree on — spec.md
// §4.9 requires these to live in one struct shared by both the engine
// and the solver so they can never silently drift apart.
package config

import (
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// VisionOrder fixes the order vision checks run in during an enemy's
// per-turn update (spec.md §4.4).
type VisionOrder string

const (
	VisionThenMove VisionOrder = "vision_then_move"
	MoveThenVision VisionOrder = "move_then_vision"
)

// EnemyOrder fixes how enemies are iterated during the AI phase.
// stable_by_index is the only legal value; it is still a field (not a
// constant) so a future variant can be parity-tested against this one.
type EnemyOrder string

const StableByIndex EnemyOrder = "stable_by_index"

// Config is the shared policy struct read by the engine, solver, and
// generator. RotationCostsTurn, EnemyOrder, and MaxStamina are carried
// but not read by any code: rotation always costs a turn, enemies
// always update in index order, and stamina limits come from each
// stage's player entry.
type Config struct {
	RotationCostsTurn       bool        `yaml:"rotation_costs_turn"`
	PatrolAdvanceOnArrival  bool        `yaml:"patrol_advance_on_arrival"`
	VisionCheckOrder        VisionOrder `yaml:"vision_check_order"`
	EnemyOrder              EnemyOrder  `yaml:"enemy_order"`
	StaminaEnabled          bool        `yaml:"stamina_enabled"`
	MaxStamina              int         `yaml:"max_stamina"`
	CollectAllItemsRequired bool        `yaml:"collect_all_items_required"`
	HorizontalFirstTieBreak bool        `yaml:"horizontal_first_tie_break"`
	RageTransitionTurns     int         `yaml:"rage_transition_turns"`
	MaxGenerationRetries    int         `yaml:"max_generation_retries"`
}

// Default returns the policy spec.md's Open Questions resolve to.
func Default() *Config {
	return &Config{
		RotationCostsTurn:       true,
		PatrolAdvanceOnArrival:  true,
		VisionCheckOrder:        VisionThenMove,
		EnemyOrder:              StableByIndex,
		StaminaEnabled:          true,
		MaxStamina:              10,
		CollectAllItemsRequired: true,
		HorizontalFirstTieBreak: true,
		RageTransitionTurns:     1,
		MaxGenerationRetries:    32,
	}
}

// Load returns Default(), overridden by an optional
// "roguecore/config.yaml" file under the XDG config home if present.
// A missing override file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := xdg.ConfigFile("roguecore/config.yaml")
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
