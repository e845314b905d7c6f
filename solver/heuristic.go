package solver

import (
	"github.com/naltoma/roguecore/engine"
)

// heuristic estimates remaining turns to a win: Manhattan distance to
// the goal, plus a clearance penalty (ceil(hp/attack_power), using the
// player's attack power) for every living enemy, plus a detour penalty
// (1 + Manhattan distance) for every item not yet collected or, for a
// disposable item, not yet disposed. Items already held give no
// discount, and the terms carry no weights. Admissibility is not
// claimed, only that the estimate correlates with progress.
func heuristic(s *engine.GameState) int {
	goal, ok := s.Board.Goal()
	h := 0
	if ok {
		h += s.Player.Pos.ManhattanDistance(goal)
	}

	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if s.Player.AttackPower <= 0 {
			h += e.HP
			continue
		}
		turnsToKill := (e.HP + s.Player.AttackPower - 1) / s.Player.AttackPower
		h += turnsToKill
	}

	for _, it := range s.Items {
		if it.Disposable {
			if !s.Player.Disposed[it.ID] {
				h += 1 + s.Player.Pos.ManhattanDistance(it.Pos)
			}
			continue
		}
		if !s.Player.Collected[it.ID] {
			h += 1 + s.Player.Pos.ManhattanDistance(it.Pos)
		}
	}

	return h
}
