package parity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/engine"
	"github.com/naltoma/roguecore/entity"
)

func TestCheckAgreesOnSimpleMove(t *testing.T) {
	b := board.NewBoard(3, 1)
	b.SetGoal(board.Position{X: 2, Y: 0})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	initial := &engine.GameState{Board: b, Player: p}

	cfg := config.Default()
	cfg.CollectAllItemsRequired = false

	report, err := Check(initial, cfg, []engine.Action{
		{Kind: engine.ActionMoveForward},
		{Kind: engine.ActionMoveForward},
	})
	require.NoError(t, err)
	require.Nil(t, report.Divergence)
	require.Len(t, report.Steps, 2)
}
