package engine

import (
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/entity"
)

// Kernel executes player actions against a GameState. It holds nothing
// but the config it was built with — every other input is the state
// passed to each method — so the exact same Kernel value can drive both
// the turn scheduler and the solver's successor expansion.
type Kernel struct {
	Config *config.Config
}

// NewKernel builds a Kernel bound to cfg.
func NewKernel(cfg *config.Config) *Kernel {
	return &Kernel{Config: cfg}
}

// Execute dispatches a to the matching kernel method, first checking
// that the stage's allowed_apis constraint permits it.
func (k *Kernel) Execute(s *GameState, a Action) ExecutionResult {
	if !s.ActionAllowed(a.Kind) {
		return fail("action %q is not permitted by this stage's allowed_apis", a.Kind)
	}
	switch a.Kind {
	case ActionMoveForward:
		return k.MoveForward(s)
	case ActionTurnLeft:
		return k.TurnLeft(s)
	case ActionTurnRight:
		return k.TurnRight(s)
	case ActionAttack:
		return k.Attack(s)
	case ActionPickUp:
		return k.PickUp(s)
	case ActionDispose:
		return k.Dispose(s)
	case ActionWait:
		return k.Wait(s)
	default:
		return fail("unknown action kind %q", a.Kind)
	}
}

// MoveForward steps the player one cell in their current facing
// direction, if that cell is passable and unoccupied.
func (k *Kernel) MoveForward(s *GameState) ExecutionResult {
	target := s.Player.Pos.Step(s.Player.Facing)
	if !s.Board.IsPassable(target) {
		return fail("cannot move: %v is not passable", target)
	}
	if e := s.EnemyAt(target); e != nil {
		return fail("cannot move: enemy %s blocks %v", e.ID, target)
	}
	from := s.Player.Pos
	s.Player.Pos = target
	return ok("moved", StateChange{Field: "player.pos", From: from, To: target})
}

// TurnLeft rotates the player 90 degrees counter-clockwise. Per
// spec.md §4.3 and config.RotationCostsTurn, this still consumes a
// full turn.
func (k *Kernel) TurnLeft(s *GameState) ExecutionResult {
	from := s.Player.Facing
	s.Player.Facing = s.Player.Facing.TurnLeft()
	return ok("turned left", StateChange{Field: "player.facing", From: from, To: s.Player.Facing})
}

// TurnRight rotates the player 90 degrees clockwise.
func (k *Kernel) TurnRight(s *GameState) ExecutionResult {
	from := s.Player.Facing
	s.Player.Facing = s.Player.Facing.TurnRight()
	return ok("turned right", StateChange{Field: "player.facing", From: from, To: s.Player.Facing})
}

// Attack strikes whatever enemy occupies the cell directly ahead of
// the player, if any, applying the player's attack power to it. An
// elimination updates every other kill-order enemy's progress.
func (k *Kernel) Attack(s *GameState) ExecutionResult {
	target := s.Player.Pos.Step(s.Player.Facing)
	e := s.EnemyAt(target)
	if e == nil {
		return fail("no enemy ahead at %v", target)
	}
	from := e.HP
	wasAlive := e.Alive()
	e.HP -= s.Player.AttackPower
	if e.HP < 0 {
		e.HP = 0
	}
	changes := []StateChange{{Field: "enemy." + e.ID + ".hp", From: from, To: e.HP}}
	if wasAlive && !e.Alive() {
		changes = append(changes, k.recordElimination(s, e)...)
	}
	return ExecutionResult{Success: true, Message: "attacked " + e.ID, StateChanges: changes}
}

// recordElimination updates every other kill-order enemy's matched
// prefix or hunting state in response to dead's elimination, per
// spec.md §4.4 step 6.
func (k *Kernel) recordElimination(s *GameState, dead *entity.Enemy) []StateChange {
	var changes []StateChange
	for _, other := range s.Enemies {
		if other.ID == dead.ID || other.ConditionalKill == nil {
			continue
		}
		ck := other.ConditionalKill
		if ck.Satisfied || ck.Hunting {
			continue
		}
		required := false
		for _, req := range ck.RequiredSequence {
			if req == dead.Kind {
				required = true
				break
			}
		}
		if !required {
			continue
		}
		if ck.MatchedPrefix < len(ck.RequiredSequence) && ck.RequiredSequence[ck.MatchedPrefix] == dead.Kind {
			ck.MatchedPrefix++
			changes = append(changes, StateChange{Field: "enemy." + other.ID + ".conditional_kill_prefix", From: ck.MatchedPrefix - 1, To: ck.MatchedPrefix})
		} else {
			ck.Hunting = true
			changes = append(changes, StateChange{Field: "enemy." + other.ID + ".hunting", From: false, To: true})
		}
	}
	return changes
}

// PickUp collects the item occupying the player's current cell.
// Beneficial items apply their on-pickup effect; detrimental
// (disposable) items instead subtract their damage from player hp.
// Either way the item leaves play once collected.
func (k *Kernel) PickUp(s *GameState) ExecutionResult {
	it := s.ItemAt(s.Player.Pos)
	if it == nil {
		return fail("no item to pick up at %v", s.Player.Pos)
	}
	s.Player.Collected[it.ID] = true
	if it.Disposable {
		from := s.Player.HP
		s.Player.HP -= it.Magnitude
		if s.Player.HP < 0 {
			s.Player.HP = 0
		}
		return ok("picked up "+it.ID, StateChange{Field: "player.hp", From: from, To: s.Player.HP})
	}
	applyItemEffect(s.Player, it)
	return ok("picked up "+it.ID, StateChange{Field: "player.collected." + it.ID, From: false, To: true})
}

// Dispose disarms the disposable hazard item occupying the player's
// current cell (e.g. a bomb). Disposed items are removed from play
// without affecting the player.
func (k *Kernel) Dispose(s *GameState) ExecutionResult {
	it := s.ItemAt(s.Player.Pos)
	if it == nil {
		return fail("no item to dispose at %v", s.Player.Pos)
	}
	if !it.Disposable {
		return fail("item %s is not disposable", it.ID)
	}
	s.Player.Disposed[it.ID] = true
	return ok("disposed "+it.ID, StateChange{Field: "player.disposed." + it.ID, From: false, To: true})
}

// Wait passes the turn without acting. Per spec.md §9 Open Question 2,
// stamina recovery is skipped if the player was attacked this turn, but
// the turn is still consumed either way; the scheduler (not Wait
// itself) knows whether an attack landed this turn, so it applies the
// recovery suppression after calling Wait.
func (k *Kernel) Wait(s *GameState) ExecutionResult {
	return ok("waited")
}

func applyItemEffect(p *entity.Player, it *entity.Item) {
	switch it.Effect {
	case entity.EffectHeal:
		p.HP += it.Magnitude
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
	case entity.EffectDamage:
		p.HP -= it.Magnitude
		if p.HP < 0 {
			p.HP = 0
		}
	case entity.EffectAttackBonus:
		p.AttackPower += it.Magnitude
	case entity.EffectMaxHPBonus:
		p.MaxHP += it.Magnitude
		p.HP += it.Magnitude
	}
}
