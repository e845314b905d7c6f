package engine

import (
	"fmt"
	"log/slog"

	"github.com/naltoma/roguecore/config"
)

// Game drives a GameState through turns. It is the one type both
// cmd/roguelike and the parity harness construct directly; the solver
// instead calls Kernel/UpdateEnemies straight on cloned states, since
// it needs to explore many branches Game's single mutable state can't
// represent at once.
type Game struct {
	State  *GameState
	Config *config.Config
	kernel *Kernel
	log    *slog.Logger
	over   bool
	won    bool
}

// NewGame builds a Game ready to play from an initial state.
func NewGame(state *GameState, cfg *config.Config, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	return &Game{
		State:  state,
		Config: cfg,
		kernel: NewKernel(cfg),
		log:    log,
	}
}

// Step executes the five-step turn order from spec.md §4.5:
//  1. reject the action if the game has already ended
//  2. execute the player's action via the kernel
//  3. run the enemy AI update
//  4. check win/lose/turn-budget-exceeded
//  5. advance turn_count
func (g *Game) Step(a Action) (ExecutionResult, error) {
	if g.over {
		return ExecutionResult{}, fmt.Errorf("game has already ended (won=%v)", g.won)
	}

	result := g.kernel.Execute(g.State, a)
	g.log.Debug("player action", "kind", a.Kind, "success", result.Success, "turn", g.State.TurnCount)

	attackedThisTurn := playerWasAttacked(result)
	aiChanges := g.kernel.UpdateEnemies(g.State)
	if hitAgain := playerHitIn(aiChanges); hitAgain {
		attackedThisTurn = true
	}
	result.StateChanges = append(result.StateChanges, aiChanges...)

	if a.Kind == ActionWait && g.Config.StaminaEnabled && !attackedThisTurn {
		if g.State.Player.Stamina < g.State.Player.MaxStamina {
			g.State.Player.Stamina++
		}
	}

	if g.State.Won(g.Config) {
		g.over, g.won = true, true
	} else if g.State.Lost() || g.State.TurnsExceeded() {
		g.over, g.won = true, false
	}

	g.State.TurnCount++
	return result, nil
}

func playerWasAttacked(r ExecutionResult) bool {
	for _, c := range r.StateChanges {
		if c.Field == "player.hp" {
			return true
		}
	}
	return false
}

func playerHitIn(changes []StateChange) bool {
	for _, c := range changes {
		if c.Field == "player.hp" {
			return true
		}
	}
	return false
}

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Won reports whether the game ended in a win. Only meaningful once
// Over() is true.
func (g *Game) Won() bool { return g.won }
