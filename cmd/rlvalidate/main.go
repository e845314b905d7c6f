// Command rlvalidate loads or generates a stage and validates it,
// exiting with the code partition SPEC_FULL.md §7 specifies.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/generator"
	"github.com/naltoma/roguecore/solver"
	"github.com/naltoma/roguecore/stage"
)

const (
	exitOK              = 0
	exitGenerationError = 1
	exitValidationError = 2
	exitIOError         = 3
	exitTimeout         = 4
)

func main() {
	stagePath := flag.String("stage", "", "validate an existing stage file instead of generating one")
	family := flag.String("family", "move", "generation family when -stage is omitted")
	seed := flag.Int64("seed", 1, "generation seed when -stage is omitted")
	timeout := flag.Duration("timeout", 10*time.Second, "overall time budget")
	flag.Parse()

	os.Exit(validate(*stagePath, *family, *seed, *timeout))
}

func validate(stagePath, family string, seed int64, timeout time.Duration) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		return exitIOError
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var d *stage.Descriptor
	if stagePath != "" {
		data, err := os.ReadFile(stagePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "reading stage file:", err)
			return exitIOError
		}
		d, err = stage.Parse(data)
		if err != nil {
			fmt.Fprintln(os.Stderr, "parsing stage file:", err)
			return exitValidationError
		}
	} else {
		generated, err := generator.Generate(ctx, generator.Family(family), seed, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "generating stage:", err)
			if errors.Is(err, context.DeadlineExceeded) {
				return exitTimeout
			}
			return exitGenerationError
		}
		d = generated
	}

	stage.AssignMissingIDs(d)

	if err := stage.Validate(d); err != nil {
		fmt.Fprintln(os.Stderr, "stage is invalid:", err)
		return exitValidationError
	}

	gs, err := stage.Build(d)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building stage:", err)
		return exitValidationError
	}

	start := board.Position{X: d.Player.Start.X, Y: d.Player.Start.Y}
	goal, ok := gs.Board.Goal()
	if !ok {
		fmt.Fprintln(os.Stderr, "stage has no goal position")
		return exitValidationError
	}
	if !stage.IsGoalReachable(gs.Board, start, goal) {
		fmt.Fprintln(os.Stderr, "stage is not solvable: goal is unreachable")
		return exitValidationError
	}

	result, err := solver.Solve(ctx, gs, solver.Options{Config: cfg, NodeBudget: 200000})
	if err != nil {
		var timeoutErr solver.SearchTimeout
		if errors.As(err, &timeoutErr) {
			fmt.Fprintln(os.Stderr, "solve timed out")
			return exitTimeout
		}
		fmt.Fprintln(os.Stderr, "stage is not solvable:", err)
		return exitValidationError
	}

	fmt.Printf("stage valid and solvable in %d action(s) (%d nodes explored)\n", len(result.Actions), result.NodesExplored)
	slog.Info("validation succeeded", "actions", len(result.Actions), "nodes_explored", result.NodesExplored)
	return exitOK
}

