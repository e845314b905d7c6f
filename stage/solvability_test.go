package stage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/board"
)

func TestIsGoalReachableOpenCorridor(t *testing.T) {
	b := board.NewBoard(4, 1)
	require.True(t, IsGoalReachable(b, board.Position{X: 0, Y: 0}, board.Position{X: 3, Y: 0}))
}

func TestIsGoalReachableBlockedByWall(t *testing.T) {
	b := board.NewBoard(4, 1)
	b.SetWall(board.Position{X: 2, Y: 0})
	require.False(t, IsGoalReachable(b, board.Position{X: 0, Y: 0}, board.Position{X: 3, Y: 0}))
}

func TestIsGoalReachableViaDetour(t *testing.T) {
	b := board.NewBoard(3, 3)
	b.SetWall(board.Position{X: 1, Y: 0})
	b.SetWall(board.Position{X: 1, Y: 1})
	// (1,2) stays open, so the goal is reachable via a detour south.
	require.True(t, IsGoalReachable(b, board.Position{X: 0, Y: 0}, board.Position{X: 2, Y: 0}))
}
