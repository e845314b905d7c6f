package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/entity"
)

func smallState() *GameState {
	b := board.NewBoard(5, 5)
	b.SetGoal(board.Position{X: 4, Y: 4})
	p := entity.NewPlayer("player", board.Position{X: 0, Y: 0}, board.East, 10, 3, 10)
	return &GameState{Board: b, Player: p}
}

func TestMoveForward(t *testing.T) {
	t.Run("succeeds onto passable tile", func(t *testing.T) {
		s := smallState()
		k := NewKernel(config.Default())
		res := k.MoveForward(s)
		require.True(t, res.Success)
		require.Equal(t, board.Position{X: 1, Y: 0}, s.Player.Pos)
	})

	t.Run("fails into a wall", func(t *testing.T) {
		s := smallState()
		s.Board.SetWall(board.Position{X: 1, Y: 0})
		k := NewKernel(config.Default())
		res := k.MoveForward(s)
		require.False(t, res.Success)
		require.Equal(t, board.Position{X: 0, Y: 0}, s.Player.Pos)
	})

	t.Run("fails into an enemy", func(t *testing.T) {
		s := smallState()
		s.Enemies = []*entity.Enemy{{ID: "e1", Kind: entity.KindNormal, Anchor: board.Position{X: 1, Y: 0}, HP: 5, MaxHP: 5}}
		k := NewKernel(config.Default())
		res := k.MoveForward(s)
		require.False(t, res.Success)
	})
}

func TestAttack(t *testing.T) {
	s := smallState()
	s.Enemies = []*entity.Enemy{{ID: "e1", Kind: entity.KindNormal, Anchor: board.Position{X: 1, Y: 0}, HP: 5, MaxHP: 5}}
	k := NewKernel(config.Default())

	res := k.Attack(s)
	require.True(t, res.Success)
	require.Equal(t, 2, s.Enemies[0].HP)
}

func TestPickUpAppliesEffectOnce(t *testing.T) {
	s := smallState()
	s.Items = []*entity.Item{{ID: "potion", Pos: board.Position{X: 0, Y: 0}, Effect: entity.EffectAttackBonus, Magnitude: 2}}
	k := NewKernel(config.Default())

	res := k.PickUp(s)
	require.True(t, res.Success)
	require.Equal(t, 5, s.Player.AttackPower)

	res2 := k.PickUp(s)
	require.False(t, res2.Success, "item already collected, no duplicate pickup")
}

func TestPickUpDisposableAppliesDamage(t *testing.T) {
	s := smallState()
	s.Player.HP = 60
	s.Player.MaxHP = 60
	s.Items = []*entity.Item{{ID: "bomb", Pos: board.Position{X: 0, Y: 0}, Disposable: true, Magnitude: 50}}
	k := NewKernel(config.Default())

	res := k.PickUp(s)
	require.True(t, res.Success)
	require.Equal(t, 10, s.Player.HP)
	require.True(t, s.Player.Collected["bomb"])
}

func TestDisposeRemovesDisposableItem(t *testing.T) {
	s := smallState()
	s.Items = []*entity.Item{{ID: "bomb", Pos: board.Position{X: 0, Y: 0}, Disposable: true}}
	k := NewKernel(config.Default())

	res := k.Dispose(s)
	require.True(t, res.Success)
	require.True(t, s.Player.Disposed["bomb"])
}
