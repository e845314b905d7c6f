package stage

import (
	"fmt"

	"github.com/pflow-xyz/go-pflow/petri"
	"github.com/pflow-xyz/go-pflow/reachability"

	"github.com/naltoma/roguecore/board"
)

// placeName keys a board cell as a Petri net place for the
// connectivity check below.
func placeName(p board.Position) string {
	return fmt.Sprintf("cell_%d_%d", p.X, p.Y)
}

// connectivityNet builds a Petri net whose places are every passable
// cell of b and whose transitions move a single token between
// orthogonally adjacent passable cells — a token's reachable markings
// are exactly the cells reachable from wherever it starts. This is the
// cheap necessary-condition filter DESIGN.md §5 describes: it
// proves nothing about combat or items, only that the goal cell is not
// walled off from the start cell, so an unreachable goal can be
// rejected before the expensive A* solver is ever invoked.
func connectivityNet(b *board.Board) *petri.PetriNet {
	net := petri.NewPetriNet()

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := board.Position{X: x, Y: y}
			if b.IsPassable(p) {
				net.AddPlace(placeName(p), 0.0, nil, float64(x*40), float64(y*40), nil)
			}
		}
	}

	transCount := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := board.Position{X: x, Y: y}
			if !b.IsPassable(p) {
				continue
			}
			for _, n := range b.Neighbors(p) {
				if !b.IsPassable(n) {
					continue
				}
				transCount++
				tName := fmt.Sprintf("move_%d", transCount)
				net.AddTransition(tName, "default", 0, 0, nil)
				net.AddArc(placeName(p), tName, 1.0, false)
				net.AddArc(tName, placeName(n), 1.0, false)
			}
		}
	}

	return net
}

// IsGoalReachable reports whether goal is reachable from start on b,
// ignoring entities entirely (pure terrain connectivity).
func IsGoalReachable(b *board.Board, start, goal board.Position) bool {
	if !b.IsPassable(start) || !b.IsPassable(goal) {
		return false
	}
	if start == goal {
		return true
	}

	net := connectivityNet(b)
	initial := make(reachability.Marking)
	for name := range net.Places {
		initial[name] = 0
	}
	initial[placeName(start)] = 1

	target := make(reachability.Marking)
	for name := range net.Places {
		target[name] = 0
	}
	target[placeName(goal)] = 1

	analyzer := reachability.NewAnalyzer(net).WithInitialMarking(initial)
	return analyzer.IsReachable(target)
}
