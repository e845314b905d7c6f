package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/entity"
)

func TestRageCycleFiresAreaAttackThenReTriggers(t *testing.T) {
	b := board.NewBoard(7, 7)
	p := entity.NewPlayer("player", board.Position{X: 5, Y: 5}, board.North, 100, 10, 10)
	e := &entity.Enemy{
		ID: "boss", Kind: entity.KindLarge2x2, Anchor: board.Position{X: 3, Y: 3},
		HP: 49, MaxHP: 100, AttackPower: 20,
		Rage: &entity.Rage{Threshold: 50, BonusAttack: 5, LastHP: 49},
	}
	state := &GameState{Board: b, Player: p, Enemies: []*entity.Enemy{e}}
	k := NewKernel(config.Default())

	k.UpdateEnemies(state)
	require.Equal(t, entity.RageTriggering, e.Rage.State)
	require.Equal(t, 100, p.HP, "the transition turn is a no-op")

	k.UpdateEnemies(state)
	require.Equal(t, entity.RageCooldown, e.Rage.State)
	require.Less(t, p.HP, 100, "the area attack turn should have hit the player")

	hpAfterAreaAttack := p.HP
	k.UpdateEnemies(state)
	require.Equal(t, entity.RageCooldown, e.Rage.State, "no further damage means no re-trigger")
	require.Equal(t, hpAfterAreaAttack, p.HP)

	e.HP -= 1
	k.UpdateEnemies(state)
	require.Equal(t, entity.RageTriggering, e.Rage.State, "taking damage during cooldown re-enters the cycle")
}

func TestConditionalKillCompletesInOrder(t *testing.T) {
	s := smallState()
	normal := &entity.Enemy{ID: "n1", Kind: entity.KindNormal, Anchor: board.Position{X: 1, Y: 0}, HP: 1, MaxHP: 1}
	special := &entity.Enemy{
		ID: "special", Kind: entity.KindSpecial2x3, Anchor: board.Position{X: 3, Y: 3},
		HP: 10000, MaxHP: 10000,
		ConditionalKill: &entity.ConditionalKill{RequiredSequence: []entity.Kind{entity.KindNormal}},
	}
	s.Enemies = []*entity.Enemy{normal, special}
	k := NewKernel(config.Default())

	res := k.Attack(s)
	require.True(t, res.Success)
	require.False(t, normal.Alive())
	require.Equal(t, 1, special.ConditionalKill.MatchedPrefix)

	k.UpdateEnemies(s)
	require.True(t, special.ConditionalKill.Satisfied)
	require.False(t, special.Alive())
}

func TestConditionalKillOutOfOrderStartsHunting(t *testing.T) {
	s := smallState()
	decoy := &entity.Enemy{ID: "decoy", Kind: entity.KindLarge2x2, Anchor: board.Position{X: 1, Y: 0}, HP: 1, MaxHP: 1}
	special := &entity.Enemy{
		ID: "special", Kind: entity.KindSpecial2x3, Anchor: board.Position{X: 3, Y: 3},
		HP: 10000, MaxHP: 10000,
		ConditionalKill: &entity.ConditionalKill{RequiredSequence: []entity.Kind{entity.KindNormal, entity.KindLarge2x2}},
	}
	s.Enemies = []*entity.Enemy{decoy, special}
	k := NewKernel(config.Default())

	res := k.Attack(s)
	require.True(t, res.Success)
	require.True(t, special.ConditionalKill.Hunting)
	require.False(t, special.ConditionalKill.Satisfied)
}

func TestEnemyMustRotateBeforeStriking(t *testing.T) {
	b := board.NewBoard(3, 1)
	p := entity.NewPlayer("player", board.Position{X: 1, Y: 0}, board.East, 10, 3, 5)
	e := &entity.Enemy{
		ID: "e1", Kind: entity.KindNormal, Anchor: board.Position{X: 2, Y: 0}, Facing: board.North,
		HP: 5, MaxHP: 5, AttackPower: 3, Alerted: true,
	}
	s := &GameState{Board: b, Player: p, Enemies: []*entity.Enemy{e}}
	k := NewKernel(config.Default())

	k.UpdateEnemies(s)
	require.Equal(t, 10, p.HP, "enemy spends this turn rotating, not striking")
	require.Equal(t, board.West, e.Facing)

	k.UpdateEnemies(s)
	require.Less(t, p.HP, 10, "now facing the player, the enemy strikes")
}
