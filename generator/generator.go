// Package generator produces deterministic, seeded stage descriptors in
// the five families from SPEC_FULL.md §6.7: move, attack, pickup,
// patrol, special. Each (family, seed) pair always yields the same
// descriptor — the Generator reproducibility property spec.md §8
// requires.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/stage"
)

// Family names a generation template.
type Family string

const (
	FamilyMove    Family = "move"
	FamilyAttack  Family = "attack"
	FamilyPickup  Family = "pickup"
	FamilyPatrol  Family = "patrol"
	FamilySpecial Family = "special"
)

// ErrExhausted reports that no candidate produced by the retry budget
// validated successfully.
type ErrExhausted struct {
	Family  Family
	Seed    int64
	Retries int
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("generator: family %s seed %d exhausted %d retries without a solvable candidate", e.Family, e.Seed, e.Retries)
}

// Generate builds one validated stage Descriptor for the given family
// and seed whose goal is reachable from the start over terrain. It
// tries up to cfg.MaxGenerationRetries candidate layouts derived from
// the same seed's PRNG stream, checking a batch of them concurrently
// (each candidate on its own board, per spec.md §5) and keeping the
// first passing candidate in draw order — not goroutine-completion
// order — so the function remains a pure function of (family, seed)
// alone. The check is schema validation plus terrain connectivity
// only: enemies, items and the turn budget are not considered, and the
// A* solver is not run.
func Generate(ctx context.Context, family Family, seed int64, cfg *config.Config) (*stage.Descriptor, error) {
	rng := rand.New(rand.NewSource(seed))

	const batchSize = 8
	retries := cfg.MaxGenerationRetries
	if retries <= 0 {
		retries = 1
	}

	for attempted := 0; attempted < retries; attempted += batchSize {
		n := batchSize
		if attempted+n > retries {
			n = retries - attempted
		}

		candidates := make([]*stage.Descriptor, n)
		for i := 0; i < n; i++ {
			candidates[i] = buildCandidate(family, rng)
		}

		results := make([]bool, n)
		g, gctx := errgroup.WithContext(ctx)
		for i := range candidates {
			i := i
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = candidateIsSolvable(candidates[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i, ok := range results {
			if ok {
				return candidates[i], nil
			}
		}
	}

	return nil, &ErrExhausted{Family: family, Seed: seed, Retries: retries}
}

func candidateIsSolvable(d *stage.Descriptor) bool {
	if stage.Validate(d) != nil {
		return false
	}
	b := board.NewBoard(d.Width, d.Height)
	for _, w := range d.Walls {
		b.SetWall(board.Position{X: w.X, Y: w.Y})
	}
	for _, f := range d.Forbidden {
		b.SetForbidden(board.Position{X: f.X, Y: f.Y})
	}
	start := board.Position{X: d.Player.Start.X, Y: d.Player.Start.Y}
	goal := board.Position{X: d.Goal.X, Y: d.Goal.Y}
	return stage.IsGoalReachable(b, start, goal)
}
