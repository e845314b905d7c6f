package engine

import (
	"sort"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/entity"
)

// UpdateEnemies runs one AI tick over every living enemy, in stable
// initial-index order (config.StableByIndex is the only supported
// order), per spec.md §4.4's six-step per-enemy update:
//  1. advance rage state
//  2. evaluate conditional-kill condition
//  3. vision check and act, in the order config.VisionCheckOrder picks:
//     vision_then_move spots the player before deciding this tick's
//     action; move_then_vision acts on last tick's alert state first,
//     so a newly-spotted player isn't reacted to until next tick
//  4. tick cooldowns
func (k *Kernel) UpdateEnemies(s *GameState) []StateChange {
	var changes []StateChange
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		changes = append(changes, k.advanceRage(s, e)...)
		changes = append(changes, k.evaluateConditionalKill(s, e)...)

		if k.Config.VisionCheckOrder == config.MoveThenVision {
			changes = append(changes, k.act(s, e)...)
			changes = append(changes, k.updateVision(s, e)...)
		} else {
			changes = append(changes, k.updateVision(s, e)...)
			changes = append(changes, k.act(s, e)...)
		}

		if e.Cooldown > 0 {
			e.Cooldown--
		}
	}
	return changes
}

// alertCooldownTurns is how long an enemy keeps chasing a player it has
// lost sight of before its alert clears, per spec.md §4.4 step 2.
const alertCooldownTurns = 10

// advanceRage runs the rage cycle one tick: calm -> triggering ->
// area_attacking -> cooldown -> triggering, repeating for as long as
// the enemy keeps taking damage once it reaches cooldown. The area
// attack itself fires from act(), once the state reaches
// area_attacking; advanceRage only tracks the transition timing.
func (k *Kernel) advanceRage(s *GameState, e *entity.Enemy) []StateChange {
	if e.Rage == nil {
		return nil
	}
	r := e.Rage
	from := r.State

	switch r.State {
	case entity.RageCalm:
		if e.HP <= r.Threshold {
			r.State = entity.RageTriggering
			r.TurnsInState = 0
		}
	case entity.RageTriggering:
		r.TurnsInState++
		if r.TurnsInState >= k.Config.RageTransitionTurns {
			r.State = entity.RageAreaAttacking
		}
	case entity.RageAreaAttacking:
		// act() fires the area attack and advances to RageCooldown.
	case entity.RageCooldown:
		if e.HP < r.LastHP {
			r.State = entity.RageTriggering
			r.TurnsInState = 0
		}
	}
	r.LastHP = e.HP

	if from == r.State {
		return nil
	}
	return []StateChange{{Field: "enemy." + e.ID + ".rage_state", From: from.String(), To: r.State.String()}}
}

// evaluateConditionalKill removes a kill-order enemy once its required
// elimination sequence has been completed (advanced by recordElimination
// at the moment each enemy dies).
func (k *Kernel) evaluateConditionalKill(s *GameState, e *entity.Enemy) []StateChange {
	ck := e.ConditionalKill
	if ck == nil || ck.Satisfied {
		return nil
	}
	if ck.MatchedPrefix >= len(ck.RequiredSequence) {
		ck.Satisfied = true
		return []StateChange{{Field: "enemy." + e.ID + ".conditional_kill", From: false, To: true}}
	}
	return nil
}

func (k *Kernel) updateVision(s *GameState, e *entity.Enemy) []StateChange {
	if e.Vision == nil {
		return nil
	}
	from := e.Alerted
	if k.canSee(s, e) {
		e.Alerted = true
		e.AlertCooldown = alertCooldownTurns
	} else if e.Alerted {
		e.AlertCooldown--
		if e.AlertCooldown <= 0 {
			e.Alerted = false
			e.AlertCooldown = 0
		}
	}
	if from == e.Alerted {
		return nil
	}
	return []StateChange{{Field: "enemy." + e.ID + ".alerted", From: from, To: e.Alerted}}
}

// canSee walks the straight line from the enemy's vision-facing cell
// outward, stopping at the first wall, up to Vision.Range cells.
func (k *Kernel) canSee(s *GameState, e *entity.Enemy) bool {
	origin := e.Anchor
	dir := e.Vision.Facing
	cur := origin
	for i := 0; i < e.Vision.Range; i++ {
		cur = cur.Step(dir)
		if !s.Board.InBounds(cur) || s.Board.IsWall(cur) {
			return false
		}
		if cur == s.Player.Pos {
			return true
		}
	}
	return false
}

func (k *Kernel) act(s *GameState, e *entity.Enemy) []StateChange {
	if e.Rage != nil {
		switch e.Rage.State {
		case entity.RageTriggering:
			return nil
		case entity.RageAreaAttacking:
			changes := k.areaAttack(s, e)
			e.Rage.State = entity.RageCooldown
			return changes
		}
	}

	if e.Cooldown > 0 {
		return nil
	}

	hunting := e.ConditionalKill != nil && e.ConditionalKill.Hunting
	if e.Alerted || hunting {
		adjacent := false
		for _, cell := range e.Footprint() {
			if s.Player.Pos.IsAdjacent(cell) {
				adjacent = true
				break
			}
		}
		if adjacent {
			if e.Faces(s.Player.Pos) {
				return k.enemyAttack(s, e)
			}
			return k.rotateToFace(s, e, s.Player.Pos)
		}
		return k.stepToward(s, e, s.Player.Pos)
	}

	if e.Patrol != nil && len(e.Patrol.Route) > 0 {
		return k.followPatrol(s, e)
	}

	return nil
}

// enemyAttack resolves one melee strike against the player, once e is
// adjacent to and facing the player's cell.
func (k *Kernel) enemyAttack(s *GameState, e *entity.Enemy) []StateChange {
	from := s.Player.HP
	s.Player.HP -= e.AttackPower
	if s.Player.HP < 0 {
		s.Player.HP = 0
	}
	e.Cooldown = 1
	return []StateChange{{Field: "player.hp", From: from, To: s.Player.HP}}
}

// rotateToFace spends this tick turning e to face target instead of
// striking, per spec.md §4.4 step 4's two-turn attack cadence.
func (k *Kernel) rotateToFace(s *GameState, e *entity.Enemy, target board.Position) []StateChange {
	for _, cell := range e.Footprint() {
		if dir, ok := board.DirectionBetween(cell, target); ok {
			from := e.Facing
			e.Facing = dir
			return []StateChange{{Field: "enemy." + e.ID + ".facing", From: from, To: dir}}
		}
	}
	return nil
}

// areaAttack hits every cell within Chebyshev distance 1 of e's
// footprint, dealing AttackPower+BonusAttack damage to the player if
// they're caught in it.
func (k *Kernel) areaAttack(s *GameState, e *entity.Enemy) []StateChange {
	cells := e.Footprint()
	if len(cells) == 0 {
		panic(&AreaAttackCalculationError{EnemyID: e.ID, Reason: "empty footprint"})
	}
	hit := false
	for _, c := range cells {
		if chebyshevWithin(c, s.Player.Pos, 1) {
			hit = true
			break
		}
	}
	if !hit {
		return nil
	}
	dmg := e.AttackPower + e.Rage.BonusAttack
	from := s.Player.HP
	s.Player.HP -= dmg
	if s.Player.HP < 0 {
		s.Player.HP = 0
	}
	return []StateChange{{Field: "player.hp", From: from, To: s.Player.HP}}
}

// chebyshevWithin reports whether a and b are within r cells of each
// other under Chebyshev (diagonal-counts-as-one) distance.
func chebyshevWithin(a, b board.Position, r int) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= r && dy <= r
}

func (k *Kernel) followPatrol(s *GameState, e *entity.Enemy) []StateChange {
	p := e.Patrol
	target := p.Route[p.Index]
	if e.Anchor == target {
		if k.Config.PatrolAdvanceOnArrival {
			p.Index = (p.Index + 1) % len(p.Route)
			target = p.Route[p.Index]
		} else {
			return nil
		}
	}
	return k.stepToward(s, e, target)
}

// stepToward moves e one cell closer to target using a greedy
// Manhattan-distance descent, tied broken per
// config.HorizontalFirstTieBreak (spec.md §9 Open Question 3).
func (k *Kernel) stepToward(s *GameState, e *entity.Enemy, target board.Position) []StateChange {
	candidates := k.orderedSteps(e.Anchor, target)
	for _, next := range candidates {
		if !s.Board.IsPassable(next) {
			continue
		}
		if next == s.Player.Pos {
			continue // occupying the player's cell isn't a move, it's combat
		}
		if other := s.EnemyAt(next); other != nil && other.ID != e.ID {
			continue
		}
		from := e.Anchor
		e.Anchor = next
		return []StateChange{{Field: "enemy." + e.ID + ".pos", From: from, To: next}}
	}
	return nil
}

// orderedSteps returns the candidate next cells from origin toward
// target, best-first, with horizontal moves preferred over vertical
// ones when config.HorizontalFirstTieBreak is set.
func (k *Kernel) orderedSteps(origin, target board.Position) []board.Position {
	type cand struct {
		pos   board.Position
		dist  int
		horiz bool
	}
	var cands []cand
	for _, d := range []board.Direction{board.North, board.East, board.South, board.West} {
		next := origin.Step(d)
		cands = append(cands, cand{
			pos:   next,
			dist:  next.ManhattanDistance(target),
			horiz: d == board.East || d == board.West,
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		if k.Config.HorizontalFirstTieBreak {
			return cands[i].horiz && !cands[j].horiz
		}
		return !cands[i].horiz && cands[j].horiz
	})
	out := make([]board.Position, len(cands))
	for i, c := range cands {
		out[i] = c.pos
	}
	return out
}
