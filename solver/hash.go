// Package solver implements the A* search (C8) over the exact
// engine.GameState the turn engine uses, so that solver and engine can
// never silently diverge in what counts as "a state" — only in which
// successor each explores.
package solver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/naltoma/roguecore/engine"
)

// encodeState builds a canonical, deterministic string encoding of the
// fields spec.md §4.8 names as the solver's state: player
// position/facing/hp/collected/disposed, per-enemy position/facing/hp/
// alerted/cooldown/patrol-index/rage-state, remaining item ids, and
// turn_count. Map-valued fields (Collected, Disposed) are sorted before
// encoding — the same "sort keys, then hash" discipline
// pflow-xyz-go-pflow's state cache uses for its memoization key.
func encodeState(s *engine.GameState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "p:%d,%d,%d,%d|", s.Player.Pos.X, s.Player.Pos.Y, s.Player.Facing, s.Player.HP)
	fmt.Fprintf(&b, "stamina:%d|", s.Player.Stamina)

	writeSortedSet(&b, "collected", s.Player.Collected)
	writeSortedSet(&b, "disposed", s.Player.Disposed)

	enemyKeys := make([]string, len(s.Enemies))
	for i, e := range s.Enemies {
		enemyKeys[i] = e.ID
	}
	sort.Strings(enemyKeys)
	for _, id := range enemyKeys {
		e := s.EnemyByID(id)
		rage := "-"
		if e.Rage != nil {
			rage = e.Rage.State.String()
		}
		patrolIdx := -1
		if e.Patrol != nil {
			patrolIdx = e.Patrol.Index
		}
		fmt.Fprintf(&b, "e:%s:%d,%d,%d,%d,%v,%d,%d,%s|",
			e.ID, e.Anchor.X, e.Anchor.Y, e.Facing, e.HP, e.Alerted, e.Cooldown, patrolIdx, rage)
	}

	itemKeys := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		if !s.Player.Collected[it.ID] && !s.Player.Disposed[it.ID] {
			itemKeys = append(itemKeys, it.ID)
		}
	}
	sort.Strings(itemKeys)
	fmt.Fprintf(&b, "items:%s|", strings.Join(itemKeys, ","))

	fmt.Fprintf(&b, "turn:%d", s.TurnCount)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeSortedSet(b *strings.Builder, label string, set map[string]bool) {
	keys := make([]string, 0, len(set))
	for k, v := range set {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "%s:%s|", label, strings.Join(keys, ","))
}
