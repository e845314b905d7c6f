// Package engine implements the deterministic turn engine: the action
// kernel (C3), enemy AI (C4), and turn scheduler (C5) from SPEC_FULL.md.
package engine

import (
	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/entity"
)

// GameState is the complete mutable world at one point in time. Both
// the turn scheduler and the solver operate on this same type — the
// solver never maintains a parallel representation, so the two can
// never diverge on what a "state" is, only on which action they pick.
type GameState struct {
	Board          *board.Board
	Player         *entity.Player
	Enemies        []*entity.Enemy
	Items          []*entity.Item
	TurnCount      int
	MaxTurns       int          // 0 means no stage-configured budget
	AllowedActions []ActionKind // nil/empty means every action is permitted
}

// Clone returns a deep copy suitable for independent mutation — the
// solver clones a state per expanded node, and the parity harness and
// cmd/roguelike clone the initial state for each run they drive.
func (s *GameState) Clone() *GameState {
	playerCopy := *s.Player
	playerCopy.Collected = cloneBoolSet(s.Player.Collected)
	playerCopy.Disposed = cloneBoolSet(s.Player.Disposed)

	enemies := make([]*entity.Enemy, len(s.Enemies))
	for i, e := range s.Enemies {
		ec := *e
		if e.Vision != nil {
			v := *e.Vision
			ec.Vision = &v
		}
		if e.Patrol != nil {
			p := *e.Patrol
			p.Route = append([]board.Position(nil), e.Patrol.Route...)
			ec.Patrol = &p
		}
		if e.Rage != nil {
			r := *e.Rage
			ec.Rage = &r
		}
		if e.ConditionalKill != nil {
			c := *e.ConditionalKill
			ec.ConditionalKill = &c
		}
		enemies[i] = &ec
	}

	items := make([]*entity.Item, len(s.Items))
	for i, it := range s.Items {
		ic := *it
		items[i] = &ic
	}

	return &GameState{
		Board:          s.Board, // terrain is immutable once loaded
		Player:         &playerCopy,
		Enemies:        enemies,
		Items:          items,
		TurnCount:      s.TurnCount,
		MaxTurns:       s.MaxTurns,
		AllowedActions: s.AllowedActions, // never mutated after construction
	}
}

func cloneBoolSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// EnemyByID returns the enemy with the given ID, or nil.
func (s *GameState) EnemyByID(id string) *entity.Enemy {
	for _, e := range s.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ItemByID returns the item with the given ID, or nil.
func (s *GameState) ItemByID(id string) *entity.Item {
	for _, it := range s.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// ItemAt returns the (not yet collected or disposed) item occupying p,
// or nil.
func (s *GameState) ItemAt(p board.Position) *entity.Item {
	for _, it := range s.Items {
		if it.Pos == p && !s.Player.Collected[it.ID] && !s.Player.Disposed[it.ID] {
			return it
		}
	}
	return nil
}

// EnemyAt returns the (living) enemy whose footprint contains p, or nil.
func (s *GameState) EnemyAt(p board.Position) *entity.Enemy {
	for _, e := range s.Enemies {
		if e.Alive() && e.Occupies(p) {
			return e
		}
	}
	return nil
}

// Won reports whether the player currently satisfies the stage's win
// condition: standing on the goal, and — if the config requires it —
// every collectible item gathered.
func (s *GameState) Won(cfg *config.Config) bool {
	goal, ok := s.Board.Goal()
	if !ok || s.Player.Pos != goal {
		return false
	}
	if !cfg.CollectAllItemsRequired {
		return true
	}
	for _, it := range s.Items {
		if it.Disposable {
			continue
		}
		if !s.Player.Collected[it.ID] {
			return false
		}
	}
	return true
}

// Lost reports whether the player has been defeated.
func (s *GameState) Lost() bool {
	return !s.Player.Alive()
}

// TurnsExceeded reports whether completing the current turn would push
// turn_count past the stage's configured budget. MaxTurns == 0 means
// no budget was configured.
func (s *GameState) TurnsExceeded() bool {
	return s.MaxTurns > 0 && s.TurnCount+1 > s.MaxTurns
}

// ActionAllowed reports whether kind is permitted by the stage's
// allowed_apis constraint. No AllowedActions means no restriction.
func (s *GameState) ActionAllowed(kind ActionKind) bool {
	if len(s.AllowedActions) == 0 {
		return true
	}
	for _, a := range s.AllowedActions {
		if a == kind {
			return true
		}
	}
	return false
}

// Terminal reports whether the game has ended, one way or another.
func (s *GameState) Terminal(cfg *config.Config) bool {
	return s.Won(cfg) || s.Lost() || s.TurnsExceeded()
}
