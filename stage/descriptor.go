// Package stage implements the YAML stage descriptor schema, its
// loader (C6), and its validator (C11) from SPEC_FULL.md.
package stage

// PositionDesc is the on-disk form of a board.Position.
type PositionDesc struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// PlayerDesc describes the player's starting configuration.
type PlayerDesc struct {
	Start       PositionDesc `yaml:"start"`
	Facing      string       `yaml:"facing"`
	MaxHP       int          `yaml:"max_hp"`
	AttackPower int          `yaml:"attack_power"`
	MaxStamina  int          `yaml:"max_stamina"`
}

// VisionDesc describes an enemy's optional vision capability.
type VisionDesc struct {
	Range  int    `yaml:"range"`
	Facing string `yaml:"facing"`
}

// RageDesc describes an enemy's optional rage capability.
type RageDesc struct {
	Threshold   int `yaml:"threshold"`
	BonusAttack int `yaml:"bonus_attack"`
}

// ConditionalKillDesc describes an enemy's optional kill-order
// capability: the required_sequence names the enemy kinds that must be
// eliminated, in that exact order, for this enemy to be auto-removed.
type ConditionalKillDesc struct {
	RequiredSequence []string `yaml:"required_sequence"`
}

// EnemyDesc describes one enemy entry. ID may be left blank; the loader
// assigns a nanoid in that case.
type EnemyDesc struct {
	ID              string               `yaml:"id,omitempty"`
	Kind            string               `yaml:"kind"`
	Anchor          PositionDesc         `yaml:"anchor"`
	Facing          string               `yaml:"facing"`
	MaxHP           int                  `yaml:"max_hp"`
	AttackPower     int                  `yaml:"attack_power"`
	Vision          *VisionDesc          `yaml:"vision,omitempty"`
	Patrol          []PositionDesc       `yaml:"patrol,omitempty"`
	Rage            *RageDesc            `yaml:"rage,omitempty"`
	ConditionalKill *ConditionalKillDesc `yaml:"conditional_kill,omitempty"`
}

// ItemDesc describes one item entry. ID may be left blank; the loader
// assigns a nanoid in that case.
type ItemDesc struct {
	ID         string       `yaml:"id,omitempty"`
	Pos        PositionDesc `yaml:"pos"`
	Effect     string       `yaml:"effect,omitempty"`
	Magnitude  int          `yaml:"magnitude,omitempty"`
	Disposable bool         `yaml:"disposable,omitempty"`
}

// ConstraintsDesc declares a stage's turn budget and the subset of
// actions an external driver (or the solver) may use.
type ConstraintsDesc struct {
	MaxTurns    int      `yaml:"max_turns"`
	AllowedAPIs []string `yaml:"allowed_apis,omitempty"`
}

// Descriptor is the complete YAML stage document, per SPEC_FULL.md §6.6.
type Descriptor struct {
	Name        string          `yaml:"name"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	Walls       []PositionDesc  `yaml:"walls,omitempty"`
	Forbidden   []PositionDesc  `yaml:"forbidden,omitempty"`
	Goal        PositionDesc    `yaml:"goal"`
	Player      PlayerDesc      `yaml:"player"`
	Enemies     []EnemyDesc     `yaml:"enemies,omitempty"`
	Items       []ItemDesc      `yaml:"items,omitempty"`
	Constraints ConstraintsDesc `yaml:"constraints"`
}
