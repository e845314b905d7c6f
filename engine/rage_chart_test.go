package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naltoma/roguecore/statemachine"
)

// rageChart declares the four-state rage cycle as a statemachine.Chart,
// independent of the kernel's switch-based implementation in ai.go.
// This is a documentation fixture, not production code: the chart
// restates advanceRage's transitions declaratively. The test below steps
// the chart only; it does not drive the kernel, whose own transitions
// are checked by TestRageCycleFiresAreaAttackThenReTriggers.
func rageChart() *statemachine.Chart {
	return statemachine.NewChart("rage").
		Region("rage").
		State("calm").Initial().
		State("triggering").
		State("area_attacking").
		State("cooldown").
		EndRegion().
		When("hp_below_threshold").In("rage:calm").GoTo("rage:triggering").
		When("transition_elapsed").In("rage:triggering").GoTo("rage:area_attacking").
		When("attack_resolved").In("rage:area_attacking").GoTo("rage:cooldown").
		When("damage_taken").In("rage:cooldown").GoTo("rage:triggering").
		Build()
}

func TestRageChartStepsThroughCycle(t *testing.T) {
	chart := rageChart()
	m := statemachine.NewMachine(chart)

	require.Equal(t, "calm", m.State("rage"))

	require.True(t, m.SendEvent("hp_below_threshold"))
	require.Equal(t, "triggering", m.State("rage"))

	require.True(t, m.SendEvent("transition_elapsed"))
	require.Equal(t, "area_attacking", m.State("rage"))

	require.True(t, m.SendEvent("attack_resolved"))
	require.Equal(t, "cooldown", m.State("rage"))

	// The sticky re-trigger (SPEC_FULL.md §12.1): any further damage
	// taken during cooldown re-enters the cycle immediately, matching
	// advanceRage's RageCooldown case.
	require.True(t, m.SendEvent("damage_taken"))
	require.Equal(t, "triggering", m.State("rage"))
}
