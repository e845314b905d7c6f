// Package parity implements the engine/solver equivalence harness (C9):
// it replays a solver-produced action sequence through a fresh
// engine.Game and, step by step, compares the result against an
// independently driven clone of the same state, so a future edit that
// makes the turn scheduler and the solver's successor expansion
// disagree is caught immediately rather than surfacing as a silently
// wrong solve.
package parity

import (
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/engine"
)

// Severity classifies how serious a single-step divergence is.
type Severity string

const (
	Critical Severity = "critical" // status, HP, remaining items, or enemy roster disagree
	Major    Severity = "major"    // position, alert, patrol index, or rage state disagrees
	Minor    Severity = "minor"    // facing, stamina, cooldown, or turn count disagrees
)

// FieldDiff is one disagreeing field between the engine's and the
// reference trajectory's state after a given step.
type FieldDiff struct {
	Field    string
	Expected any
	Actual   any
	Severity Severity
}

// StepReport captures one replayed step's outcome.
type StepReport struct {
	Index  int
	Action engine.Action
	Diffs  []FieldDiff
}

// ParityDivergence is returned when the first divergence is found. It
// carries a report id (uuid) so CI divergence reports can be told
// apart, and the report of the diverging step; the full per-step trail
// is kept in Report.Steps.
type ParityDivergence struct {
	ReportID string
	Step     StepReport
	Severity Severity
}

func (e *ParityDivergence) Error() string {
	return fmt.Sprintf("parity divergence [%s] at step %d (%s): %d field(s) disagree",
		e.ReportID, e.Step.Index, e.Severity, len(e.Step.Diffs))
}

// Report is the full result of a Check run.
type Report struct {
	ID         string
	Steps      []StepReport
	Divergence *ParityDivergence // nil if every step matched
}

// Check replays actions against a fresh engine.Game built from a clone
// of initial, and independently re-derives each step's expected state
// on a second clone of initial, stepped in place by calling the same
// kernel/AI functions directly, as solver.Solve's successor expansion
// does (enemies update only after a successful action). Any field-level
// disagreement is recorded; the first one is also returned as a typed
// error so callers can fail fast.
func Check(initial *engine.GameState, cfg *config.Config, actions []engine.Action) (*Report, error) {
	report := &Report{ID: uuid.NewString()}

	engineState := initial.Clone()
	game := engine.NewGame(engineState, cfg, nil)
	kernel := engine.NewKernel(cfg)

	referenceState := initial.Clone()

	for i, a := range actions {
		if game.Over() {
			break
		}

		if _, err := game.Step(a); err != nil {
			return report, err
		}

		res := kernel.Execute(referenceState, a)
		if res.Success {
			kernel.UpdateEnemies(referenceState)
		}
		referenceState.TurnCount++

		diffs := diffStates(referenceState, engineState, cfg)
		step := StepReport{Index: i, Action: a, Diffs: diffs}
		report.Steps = append(report.Steps, step)

		if len(diffs) > 0 && report.Divergence == nil {
			report.Divergence = &ParityDivergence{
				ReportID: report.ID,
				Step:     step,
				Severity: worstSeverity(diffs),
			}
		}
	}

	if report.Divergence != nil {
		return report, report.Divergence
	}
	return report, nil
}

func worstSeverity(diffs []FieldDiff) Severity {
	worst := Minor
	for _, d := range diffs {
		switch d.Severity {
		case Critical:
			return Critical
		case Major:
			worst = Major
		}
	}
	return worst
}

func diffStates(expected, actual *engine.GameState, cfg *config.Config) []FieldDiff {
	var diffs []FieldDiff

	if expected.Player.HP != actual.Player.HP {
		diffs = append(diffs, FieldDiff{"player.hp", expected.Player.HP, actual.Player.HP, Critical})
	}
	if expected.Player.Pos != actual.Player.Pos {
		diffs = append(diffs, FieldDiff{"player.pos", expected.Player.Pos, actual.Player.Pos, Major})
	}
	if expected.Player.Facing != actual.Player.Facing {
		diffs = append(diffs, FieldDiff{"player.facing", expected.Player.Facing, actual.Player.Facing, Minor})
	}
	if expected.Player.Stamina != actual.Player.Stamina {
		diffs = append(diffs, FieldDiff{"player.stamina", expected.Player.Stamina, actual.Player.Stamina, Minor})
	}

	for _, e := range expected.Enemies {
		a := actual.EnemyByID(e.ID)
		if a == nil {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID, "present", "missing", Critical})
			continue
		}
		if e.HP != a.HP {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".hp", e.HP, a.HP, Critical})
		}
		if e.Anchor != a.Anchor {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".pos", e.Anchor, a.Anchor, Major})
		}
		if e.Facing != a.Facing {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".facing", e.Facing, a.Facing, Minor})
		}
		if e.Alerted != a.Alerted {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".alerted", e.Alerted, a.Alerted, Major})
		}
		if e.Cooldown != a.Cooldown {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".cooldown", e.Cooldown, a.Cooldown, Minor})
		}

		ePatrol, aPatrol := -1, -1
		if e.Patrol != nil {
			ePatrol = e.Patrol.Index
		}
		if a.Patrol != nil {
			aPatrol = a.Patrol.Index
		}
		if ePatrol != aPatrol {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".patrol_index", ePatrol, aPatrol, Major})
		}

		eRage, aRage := "", ""
		if e.Rage != nil {
			eRage = e.Rage.State.String()
		}
		if a.Rage != nil {
			aRage = a.Rage.State.String()
		}
		if eRage != aRage {
			diffs = append(diffs, FieldDiff{"enemy." + e.ID + ".rage_state", eRage, aRage, Major})
		}
	}

	expectedItems := remainingItemIDs(expected)
	actualItems := remainingItemIDs(actual)
	if !slices.Equal(expectedItems, actualItems) {
		diffs = append(diffs, FieldDiff{"items.remaining", expectedItems, actualItems, Critical})
	}

	if expected.TurnCount != actual.TurnCount {
		diffs = append(diffs, FieldDiff{"turn_count", expected.TurnCount, actual.TurnCount, Minor})
	}

	eStatus, aStatus := statusOf(expected, cfg), statusOf(actual, cfg)
	if eStatus != aStatus {
		diffs = append(diffs, FieldDiff{"status", eStatus, aStatus, Critical})
	}

	return diffs
}

// remainingItemIDs returns the sorted ids of items neither collected
// nor disposed, for set-equality comparison between trajectories.
func remainingItemIDs(s *engine.GameState) []string {
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		if !s.Player.Collected[it.ID] && !s.Player.Disposed[it.ID] {
			ids = append(ids, it.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func statusOf(s *engine.GameState, cfg *config.Config) string {
	switch {
	case s.Won(cfg):
		return "won"
	case s.Lost(), s.TurnsExceeded():
		return "failed"
	default:
		return "playing"
	}
}
