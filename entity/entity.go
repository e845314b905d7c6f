// Package entity models the player, enemies, and items that occupy a
// stage. Enemy behavior variance is expressed as small embeddable
// capability structs — Vision, Patrol, Rage, ConditionalKill — composed
// onto a single Enemy, each nil when that enemy's kind doesn't carry it.
package entity

import "github.com/naltoma/roguecore/board"

// Kind identifies an enemy's footprint and base stats template.
type Kind string

const (
	KindNormal     Kind = "normal"
	KindLarge2x2   Kind = "large_2x2"
	KindLarge3x3   Kind = "large_3x3"
	KindSpecial2x3 Kind = "special_2x3"
)

// Footprint returns the (width, height) a kind occupies on the board.
func (k Kind) Footprint() (int, int) {
	switch k {
	case KindLarge2x2:
		return 2, 2
	case KindLarge3x3:
		return 3, 3
	case KindSpecial2x3:
		return 2, 3
	default:
		return 1, 1
	}
}

// Player is the single controllable actor.
type Player struct {
	ID           string
	Pos          board.Position
	Facing       board.Direction
	HP, MaxHP    int
	AttackPower  int
	Stamina      int
	MaxStamina   int
	Collected    map[string]bool // item IDs picked up
	Disposed     map[string]bool // item IDs disarmed/disposed
}

// NewPlayer builds a Player at full health and stamina.
func NewPlayer(id string, pos board.Position, facing board.Direction, maxHP, attack, maxStamina int) *Player {
	return &Player{
		ID:          id,
		Pos:         pos,
		Facing:      facing,
		HP:          maxHP,
		MaxHP:       maxHP,
		AttackPower: attack,
		Stamina:     maxStamina,
		MaxStamina:  maxStamina,
		Collected:   make(map[string]bool),
		Disposed:    make(map[string]bool),
	}
}

// Alive reports whether the player still has positive HP.
func (p *Player) Alive() bool { return p.HP > 0 }

// Vision is the optional sight capability: an enemy with Vision spots
// the player along a straight line within Range, blocked by walls.
type Vision struct {
	Range  int
	Facing board.Direction // direction the vision cone currently faces
}

// Patrol is the optional scripted-route capability.
type Patrol struct {
	Route []board.Position
	Index int // index of the waypoint currently being approached
}

// RageState is the lifecycle of an enemy's Rage capability. The cycle
// runs calm -> triggering -> area_attacking -> cooldown -> triggering,
// repeating indefinitely once the threshold is first crossed.
type RageState int

const (
	RageCalm RageState = iota
	RageTriggering
	RageAreaAttacking
	RageCooldown
)

func (s RageState) String() string {
	switch s {
	case RageCalm:
		return "calm"
	case RageTriggering:
		return "triggering"
	case RageAreaAttacking:
		return "area_attacking"
	case RageCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Rage is the optional enrage capability: once HP drops to or below
// Threshold, the enemy spends config.RageTransitionTurns ticks in
// RageTriggering before
// unleashing one area attack, then settles in RageCooldown — primed to
// re-trigger the moment it takes further damage. LastHP tracks the HP
// seen on the previous tick so the cooldown state can detect that.
type Rage struct {
	Threshold    int
	BonusAttack  int
	State        RageState
	TurnsInState int
	LastHP       int
}

// ConditionalKill is the optional kill-order capability: the enemy is
// removed automatically once every kind in RequiredSequence has been
// eliminated in that exact order. Eliminating a required kind out of
// order sets Hunting, which makes this enemy pursue the player
// regardless of vision.
type ConditionalKill struct {
	RequiredSequence []Kind
	MatchedPrefix    int
	Hunting          bool
	Satisfied        bool
}

// Enemy is one hostile actor. Capability fields are nil when the
// enemy's kind/stage declaration doesn't grant that behavior.
type Enemy struct {
	ID            string
	Kind          Kind
	Anchor        board.Position // top-left cell of the footprint
	Facing        board.Direction
	HP, MaxHP     int
	AttackPower   int
	Alerted       bool
	AlertCooldown int // turns remaining before Alerted clears once sight is lost
	Cooldown      int // turns remaining before this enemy may attack again

	Vision          *Vision
	Patrol          *Patrol
	Rage            *Rage
	ConditionalKill *ConditionalKill
}

// Faces reports whether target sits in the cell directly ahead of one
// of this enemy's footprint cells, in its current Facing direction.
func (e *Enemy) Faces(target board.Position) bool {
	for _, c := range e.Footprint() {
		if c.Step(e.Facing) == target {
			return true
		}
	}
	return false
}

// Footprint returns every cell this enemy currently occupies.
func (e *Enemy) Footprint() []board.Position {
	w, h := e.Kind.Footprint()
	cells := make([]board.Position, 0, w*h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			cells = append(cells, e.Anchor.Add(dx, dy))
		}
	}
	return cells
}

// Occupies reports whether p is one of this enemy's footprint cells.
func (e *Enemy) Occupies(p board.Position) bool {
	for _, c := range e.Footprint() {
		if c == p {
			return true
		}
	}
	return false
}

// Alive reports whether the enemy still has positive HP and has not
// been eliminated by a conditional kill.
func (e *Enemy) Alive() bool {
	if e.ConditionalKill != nil && e.ConditionalKill.Satisfied {
		return false
	}
	return e.HP > 0
}

// ItemEffect names the one-shot effect an item applies on pickup.
type ItemEffect string

const (
	EffectNone        ItemEffect = ""
	EffectHeal        ItemEffect = "heal"
	EffectDamage      ItemEffect = "damage"
	EffectAttackBonus ItemEffect = "attack_bonus"
	EffectMaxHPBonus  ItemEffect = "max_hp_bonus"
)

// Item is a collectible or disposable object on the board.
type Item struct {
	ID         string
	Pos        board.Position
	Effect     ItemEffect
	Magnitude  int
	Disposable bool // true for hazards that must be disposed rather than picked up
}
