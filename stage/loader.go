package stage

import (
	"fmt"
	"hash/fnv"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"

	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/engine"
	"github.com/naltoma/roguecore/entity"
)

// Parse unmarshals raw YAML bytes into a Descriptor without validating
// or assigning ids.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing stage descriptor: %w", err)
	}
	return &d, nil
}

// Checksum returns a deterministic digest of the descriptor's canonical
// YAML encoding, so a generated-then-saved stage can be byte-verified
// unchanged by a later loader run (SPEC_FULL.md §10).
func (d *Descriptor) Checksum() (uint32, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return 0, err
	}
	h := fnv.New32a()
	h.Write(data)
	return h.Sum32(), nil
}

// Load parses, assigns missing ids, validates, and builds the initial
// GameState for a stage descriptor. It does not run the solvability
// pre-check — callers that need it should call IsGoalReachable
// explicitly (the generator always does; a hand-authored stage loaded
// by cmd/roguelike is allowed to describe an intentionally unsolvable
// puzzle).
func Load(data []byte) (*engine.GameState, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	AssignMissingIDs(d)
	if err := Validate(d); err != nil {
		return nil, err
	}
	return Build(d)
}

// AssignMissingIDs fills in nanoid-generated ids for any enemy or item
// whose id was left blank (hand-authored stages rarely bother; the
// generator never does). Safe to call more than once since existing
// ids are left untouched.
func AssignMissingIDs(d *Descriptor) {
	for i := range d.Enemies {
		if d.Enemies[i].ID == "" {
			d.Enemies[i].ID, _ = gonanoid.New()
		}
	}
	for i := range d.Items {
		if d.Items[i].ID == "" {
			d.Items[i].ID, _ = gonanoid.New()
		}
	}
}

// Build constructs an engine.GameState from an already-validated,
// id-assigned Descriptor.
func Build(d *Descriptor) (*engine.GameState, error) {
	b := board.NewBoard(d.Width, d.Height)
	for _, w := range d.Walls {
		b.SetWall(board.Position{X: w.X, Y: w.Y})
	}
	for _, f := range d.Forbidden {
		b.SetForbidden(board.Position{X: f.X, Y: f.Y})
	}
	b.SetGoal(board.Position{X: d.Goal.X, Y: d.Goal.Y})

	facing, err := board.ParseDirection(d.Player.Facing)
	if err != nil {
		return nil, err
	}
	p := entity.NewPlayer(
		"player",
		board.Position{X: d.Player.Start.X, Y: d.Player.Start.Y},
		facing,
		d.Player.MaxHP,
		d.Player.AttackPower,
		d.Player.MaxStamina,
	)

	enemies := make([]*entity.Enemy, 0, len(d.Enemies))
	for _, ed := range d.Enemies {
		e, err := buildEnemy(ed)
		if err != nil {
			return nil, err
		}
		enemies = append(enemies, e)
	}

	items := make([]*entity.Item, 0, len(d.Items))
	for _, id := range d.Items {
		items = append(items, &entity.Item{
			ID:         id.ID,
			Pos:        board.Position{X: id.Pos.X, Y: id.Pos.Y},
			Effect:     entity.ItemEffect(id.Effect),
			Magnitude:  id.Magnitude,
			Disposable: id.Disposable,
		})
	}

	var allowed []engine.ActionKind
	for _, name := range d.Constraints.AllowedAPIs {
		if kind, ok := engine.ActionKindFromAPIName(name); ok {
			allowed = append(allowed, kind)
		}
	}

	return &engine.GameState{
		Board:          b,
		Player:         p,
		Enemies:        enemies,
		Items:          items,
		MaxTurns:       d.Constraints.MaxTurns,
		AllowedActions: allowed,
	}, nil
}

func buildEnemy(ed EnemyDesc) (*entity.Enemy, error) {
	facing, err := board.ParseDirection(ed.Facing)
	if err != nil {
		return nil, err
	}
	e := &entity.Enemy{
		ID:          ed.ID,
		Kind:        entity.Kind(ed.Kind),
		Anchor:      board.Position{X: ed.Anchor.X, Y: ed.Anchor.Y},
		Facing:      facing,
		HP:          ed.MaxHP,
		MaxHP:       ed.MaxHP,
		AttackPower: ed.AttackPower,
	}

	if ed.Vision != nil {
		visionFacing, err := board.ParseDirection(ed.Vision.Facing)
		if err != nil {
			return nil, err
		}
		e.Vision = &entity.Vision{Range: ed.Vision.Range, Facing: visionFacing}
	}
	if len(ed.Patrol) > 0 {
		route := make([]board.Position, len(ed.Patrol))
		for i, p := range ed.Patrol {
			route[i] = board.Position{X: p.X, Y: p.Y}
		}
		e.Patrol = &entity.Patrol{Route: route}
	}
	if ed.Rage != nil {
		e.Rage = &entity.Rage{Threshold: ed.Rage.Threshold, BonusAttack: ed.Rage.BonusAttack}
	}
	if ed.ConditionalKill != nil {
		seq := make([]entity.Kind, len(ed.ConditionalKill.RequiredSequence))
		for i, kind := range ed.ConditionalKill.RequiredSequence {
			seq[i] = entity.Kind(kind)
		}
		e.ConditionalKill = &entity.ConditionalKill{RequiredSequence: seq}
	}

	return e, nil
}
