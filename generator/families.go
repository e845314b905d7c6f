package generator

import (
	"fmt"
	"math/rand"

	"github.com/naltoma/roguecore/stage"
)

const (
	minDim = 4
	maxDim = 8
)

// buildCandidate constructs one candidate descriptor for family, drawn
// from rng. The draw order is fixed per family so that replaying the
// same seed's PRNG stream always produces the same sequence of
// candidates.
func buildCandidate(family Family, rng *rand.Rand) *stage.Descriptor {
	w := minDim + rng.Intn(maxDim-minDim+1)
	h := minDim + rng.Intn(maxDim-minDim+1)

	d := &stage.Descriptor{
		Name:   string(family),
		Width:  w,
		Height: h,
		Player: stage.PlayerDesc{
			Start:       stage.PositionDesc{X: 0, Y: 0},
			Facing:      "E",
			MaxHP:       10,
			AttackPower: 3,
			MaxStamina:  10,
		},
		Goal: stage.PositionDesc{X: w - 1, Y: h - 1},
		Constraints: stage.ConstraintsDesc{
			MaxTurns: (w + h) * 6,
			AllowedAPIs: []string{
				"turn_left", "turn_right", "move", "attack", "pickup",
				"dispose", "wait", "see", "get_stage_info", "is_available",
				"get_stamina",
			},
		},
	}

	scatterWalls(d, rng)

	switch family {
	case FamilyMove:
		// Pure traversal: no enemies, no items.
	case FamilyAttack:
		addEnemies(d, rng, 1+rng.Intn(2), false)
	case FamilyPickup:
		addItems(d, rng, 1+rng.Intn(3))
	case FamilyPatrol:
		addEnemies(d, rng, 1+rng.Intn(2), true)
	case FamilySpecial:
		addEnemies(d, rng, 1, false)
		addItems(d, rng, 1+rng.Intn(2))
		addDisposableHazard(d, rng)
	}

	return d
}

func scatterWalls(d *stage.Descriptor, rng *rand.Rand) {
	count := (d.Width * d.Height) / 6
	seen := map[stage.PositionDesc]bool{
		d.Player.Start: true,
		d.Goal:         true,
	}
	for i := 0; i < count; i++ {
		p := stage.PositionDesc{X: rng.Intn(d.Width), Y: rng.Intn(d.Height)}
		if seen[p] {
			continue
		}
		seen[p] = true
		d.Walls = append(d.Walls, p)
	}
}

func freeCell(d *stage.Descriptor, rng *rand.Rand, occupied map[stage.PositionDesc]bool) stage.PositionDesc {
	wallSet := make(map[stage.PositionDesc]bool, len(d.Walls))
	for _, w := range d.Walls {
		wallSet[w] = true
	}
	for i := 0; i < 64; i++ {
		p := stage.PositionDesc{X: rng.Intn(d.Width), Y: rng.Intn(d.Height)}
		if wallSet[p] || occupied[p] || p == d.Player.Start || p == d.Goal {
			continue
		}
		return p
	}
	return stage.PositionDesc{X: d.Player.Start.X, Y: d.Player.Start.Y}
}

func addEnemies(d *stage.Descriptor, rng *rand.Rand, n int, patrol bool) {
	occupied := map[stage.PositionDesc]bool{}
	for i := 0; i < n; i++ {
		anchor := freeCell(d, rng, occupied)
		occupied[anchor] = true
		e := stage.EnemyDesc{
			ID:          fmt.Sprintf("%s-enemy-%d", d.Name, len(d.Enemies)),
			Kind:        "normal",
			Anchor:      anchor,
			Facing:      "S",
			MaxHP:       4 + rng.Intn(4),
			AttackPower: 1 + rng.Intn(3),
			Vision:      &stage.VisionDesc{Range: 3, Facing: "S"},
		}
		if patrol {
			a := freeCell(d, rng, occupied)
			b := freeCell(d, rng, occupied)
			e.Patrol = []stage.PositionDesc{anchor, a, b}
		}
		d.Enemies = append(d.Enemies, e)
	}
}

func addItems(d *stage.Descriptor, rng *rand.Rand, n int) {
	occupied := map[stage.PositionDesc]bool{}
	effects := []string{"heal", "attack_bonus", "max_hp_bonus"}
	for i := 0; i < n; i++ {
		pos := freeCell(d, rng, occupied)
		occupied[pos] = true
		d.Items = append(d.Items, stage.ItemDesc{
			ID:        fmt.Sprintf("%s-item-%d", d.Name, len(d.Items)),
			Pos:       pos,
			Effect:    effects[rng.Intn(len(effects))],
			Magnitude: 1 + rng.Intn(3),
		})
	}
}

func addDisposableHazard(d *stage.Descriptor, rng *rand.Rand) {
	occupied := map[stage.PositionDesc]bool{}
	for _, it := range d.Items {
		occupied[it.Pos] = true
	}
	pos := freeCell(d, rng, occupied)
	d.Items = append(d.Items, stage.ItemDesc{
		ID:         fmt.Sprintf("%s-item-%d", d.Name, len(d.Items)),
		Pos:        pos,
		Disposable: true,
	})
}
