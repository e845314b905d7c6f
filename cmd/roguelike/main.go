// Command roguelike is a non-interactive sample driver over the engine
// and solver's public surface: load a stage, optionally solve it,
// optionally replay the solution, and print a final board summary. It
// never prompts, steps, or pauses — interactive control is out of
// scope (SPEC_FULL.md §1).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/engine"
	"github.com/naltoma/roguecore/solver"
	"github.com/naltoma/roguecore/stage"
)

func main() {
	stagePath := flag.String("stage", "", "path to a stage YAML descriptor")
	solve := flag.Bool("solve", false, "run the A* solver and replay its solution")
	nodeBudget := flag.Int("node-budget", 50000, "solver node budget (0 = unbounded)")
	flag.Parse()

	if err := run(*stagePath, *solve, *nodeBudget); err != nil {
		slog.Error("roguelike failed", "error", err)
		os.Exit(1)
	}
}

func run(stagePath string, doSolve bool, nodeBudget int) error {
	if stagePath == "" {
		return fmt.Errorf("-stage is required")
	}

	data, err := os.ReadFile(stagePath)
	if err != nil {
		return fmt.Errorf("reading stage file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	initial, err := stage.Load(data)
	if err != nil {
		return fmt.Errorf("loading stage: %w", err)
	}

	game := engine.NewGame(initial.Clone(), cfg, slog.Default())

	if doSolve {
		opts := solver.Options{Config: cfg, NodeBudget: nodeBudget}
		result, err := solver.Solve(context.Background(), initial.Clone(), opts)
		if err != nil {
			return fmt.Errorf("solve: %w", err)
		}
		fmt.Printf("solved in %d node(s), %d action(s)\n", result.NodesExplored, len(result.Actions))
		for _, a := range result.Actions {
			if _, err := game.Step(a); err != nil {
				return fmt.Errorf("replay: %w", err)
			}
		}
	}

	printBoard(game)
	info := game.GetStageInfo()
	fmt.Printf("turn=%d enemies_alive=%d items_remaining=%d over=%v won=%v\n",
		info.TurnCount, info.EnemiesAlive, info.ItemsRemaining, game.Over(), game.Won())
	return nil
}

func printBoard(g *engine.Game) {
	s := g.State
	var b strings.Builder
	for y := 0; y < s.Board.Height; y++ {
		for x := 0; x < s.Board.Width; x++ {
			p := board.Position{X: x, Y: y}
			glyph := "."
			switch {
			case s.Board.IsWall(p):
				glyph = "#"
			case s.Player.Pos == p:
				glyph = "@"
			case s.EnemyAt(p) != nil:
				glyph = "E"
			case s.ItemAt(p) != nil:
				glyph = "i"
			}
			if goal, ok := s.Board.Goal(); ok && goal == p && glyph == "." {
				glyph = "G"
			}
			b.WriteString(runewidth.FillLeft(glyph, 2))
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
