package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/engine"
	"github.com/naltoma/roguecore/entity"
)

func TestSolveFindsShortPathOnOpenCorridor(t *testing.T) {
	b := board.NewBoard(4, 1)
	b.SetGoal(board.Position{X: 3, Y: 0})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	start := &engine.GameState{Board: b, Player: p}

	cfg := config.Default()
	cfg.CollectAllItemsRequired = false

	res, err := Solve(context.Background(), start, Options{Config: cfg, NodeBudget: 1000})
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.NotEmpty(t, res.Actions)
}

func TestSolveReportsExhaustedOnUnreachableGoal(t *testing.T) {
	b := board.NewBoard(3, 1)
	b.SetWall(board.Position{X: 1, Y: 0})
	b.SetGoal(board.Position{X: 2, Y: 0})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	start := &engine.GameState{Board: b, Player: p}

	cfg := config.Default()
	cfg.CollectAllItemsRequired = false

	res, err := Solve(context.Background(), start, Options{Config: cfg, NodeBudget: 500})
	require.Error(t, err)
	require.False(t, res.Solved)
}

func TestSolveRespectsTimeout(t *testing.T) {
	b := board.NewBoard(20, 20)
	b.SetGoal(board.Position{X: 19, Y: 19})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	start := &engine.GameState{Board: b, Player: p}

	cfg := config.Default()
	cfg.CollectAllItemsRequired = false

	_, err := Solve(context.Background(), start, Options{Config: cfg, Timeout: time.Nanosecond})
	require.Error(t, err)
}

func TestReplayBundleRoundTrip(t *testing.T) {
	result := Result{Solved: true, Actions: []engine.Action{{Kind: engine.ActionMoveForward}}, NodesExplored: 3}
	bundle := NewReplayBundle(result)

	data, err := bundle.Encode()
	require.NoError(t, err)

	decoded, err := DecodeReplayBundle(data)
	require.NoError(t, err)
	require.Equal(t, bundle.RunID, decoded.RunID)
	require.Equal(t, []engine.Action{{Kind: engine.ActionMoveForward}}, decoded.ToActions())
}
