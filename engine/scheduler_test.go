package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/entity"
)

func TestStepAdvancesTurnCount(t *testing.T) {
	s := smallState()
	g := NewGame(s, config.Default(), nil)

	_, err := g.Step(Action{Kind: ActionWait})
	require.NoError(t, err)
	require.Equal(t, 1, s.TurnCount)
}

func TestStepDetectsWin(t *testing.T) {
	b := board.NewBoard(2, 1)
	b.SetGoal(board.Position{X: 1, Y: 0})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	s := &GameState{Board: b, Player: p}

	cfg := config.Default()
	cfg.CollectAllItemsRequired = false
	g := NewGame(s, cfg, nil)

	_, err := g.Step(Action{Kind: ActionMoveForward})
	require.NoError(t, err)
	require.True(t, g.Over())
	require.True(t, g.Won())
}

func TestStepRejectsActionAfterGameOver(t *testing.T) {
	b := board.NewBoard(2, 1)
	b.SetGoal(board.Position{X: 1, Y: 0})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	s := &GameState{Board: b, Player: p}

	cfg := config.Default()
	cfg.CollectAllItemsRequired = false
	g := NewGame(s, cfg, nil)

	_, err := g.Step(Action{Kind: ActionMoveForward})
	require.NoError(t, err)

	_, err = g.Step(Action{Kind: ActionWait})
	require.Error(t, err)
}

func TestStepEndsInFailureOncePastMaxTurns(t *testing.T) {
	s := smallState()
	s.MaxTurns = 2
	g := NewGame(s, config.Default(), nil)

	for i := 0; i < 2; i++ {
		_, err := g.Step(Action{Kind: ActionWait})
		require.NoError(t, err)
		require.False(t, g.Over())
	}

	_, err := g.Step(Action{Kind: ActionWait})
	require.NoError(t, err)
	require.True(t, g.Over())
	require.False(t, g.Won())
}

func TestExecuteRejectsDisallowedAction(t *testing.T) {
	s := smallState()
	s.AllowedActions = []ActionKind{ActionMoveForward}
	k := NewKernel(config.Default())

	res := k.Execute(s, Action{Kind: ActionWait})
	require.False(t, res.Success)

	res = k.Execute(s, Action{Kind: ActionMoveForward})
	require.True(t, res.Success)
}

func TestWaitSkipsStaminaRecoveryWhenAttacked(t *testing.T) {
	b := board.NewBoard(3, 1)
	p := entity.NewPlayer("player", board.Position{X: 1, Y: 0}, board.East, 10, 3, 5)
	p.Stamina = 3
	s := &GameState{Board: b, Player: p}
	s.Enemies = []*entity.Enemy{{
		ID: "e1", Kind: entity.KindNormal, Anchor: board.Position{X: 2, Y: 0}, Facing: board.West,
		HP: 5, MaxHP: 5, AttackPower: 1, Alerted: true,
	}}

	g := NewGame(s, config.Default(), nil)
	_, err := g.Step(Action{Kind: ActionWait})
	require.NoError(t, err)
	require.Equal(t, 3, s.Player.Stamina, "stamina should not recover on a turn the player was attacked")
}
