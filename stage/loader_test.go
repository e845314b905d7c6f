package stage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validDescriptor() *Descriptor {
	return &Descriptor{
		Name:   "test",
		Width:  3,
		Height: 1,
		Goal:   PositionDesc{X: 2, Y: 0},
		Player: PlayerDesc{
			Start:       PositionDesc{X: 0, Y: 0},
			Facing:      "E",
			MaxHP:       10,
			AttackPower: 3,
			MaxStamina:  5,
		},
	}
}

func TestValidateAcceptsWellFormedDescriptor(t *testing.T) {
	d := validDescriptor()
	require.NoError(t, Validate(d))
}

func TestValidateReportsAllOffendingFields(t *testing.T) {
	d := validDescriptor()
	d.Width = 0
	d.Player.MaxHP = 0

	err := Validate(d)
	require.Error(t, err)
	require.Contains(t, err.Error(), "width")
	require.Contains(t, err.Error(), "player.max_hp")
}

func TestValidateCatchesWallOnGoal(t *testing.T) {
	d := validDescriptor()
	d.Walls = []PositionDesc{{X: 2, Y: 0}}

	err := Validate(d)
	require.Error(t, err)
	require.Contains(t, err.Error(), "goal")
}

func TestAssignMissingIDsFillsBlankEnemyID(t *testing.T) {
	d := validDescriptor()
	d.Enemies = []EnemyDesc{{
		Kind:   "normal",
		Anchor: PositionDesc{X: 1, Y: 0},
		Facing: "W",
		MaxHP:  5,
	}}

	AssignMissingIDs(d)
	require.NotEmpty(t, d.Enemies[0].ID)
}

func TestLoadRoundTrip(t *testing.T) {
	d := validDescriptor()
	data, err := yaml.Marshal(d)
	require.NoError(t, err)

	gs, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, 3, gs.Board.Width)
	require.Equal(t, 0, gs.Player.Pos.X)
}
