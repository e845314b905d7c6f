package stage

import (
	"go.uber.org/multierr"

	"github.com/naltoma/roguecore/board"
)

// Validate checks a Descriptor's schema-level invariants, collecting
// every violation rather than stopping at the first (SPEC_FULL.md
// §4.0.c). When width or height is not positive, the position-dependent
// checks (goal, start, walls, enemies, items) and the constraint checks
// are skipped. It does not check solvability — see IsGoalReachable.
func Validate(d *Descriptor) error {
	var errs error

	if d.Width <= 0 {
		errs = multierr.Append(errs, fieldErr("width", "must be positive, got %d", d.Width))
	}
	if d.Height <= 0 {
		errs = multierr.Append(errs, fieldErr("height", "must be positive, got %d", d.Height))
	}
	if d.Player.MaxHP <= 0 {
		errs = multierr.Append(errs, fieldErr("player.max_hp", "must be positive"))
	}
	if _, err := board.ParseDirection(d.Player.Facing); err != nil {
		errs = multierr.Append(errs, fieldErr("player.facing", "%s", err))
	}
	if d.Width <= 0 || d.Height <= 0 {
		// Can't meaningfully bounds-check anything else against a
		// malformed board size.
		return errs
	}

	inBounds := func(p PositionDesc) bool {
		return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
	}

	if !inBounds(d.Goal) {
		errs = multierr.Append(errs, fieldErr("goal", "%v is out of bounds", d.Goal))
	}
	if !inBounds(d.Player.Start) {
		errs = multierr.Append(errs, fieldErr("player.start", "%v is out of bounds", d.Player.Start))
	}

	walls := make(map[PositionDesc]bool, len(d.Walls))
	for i, w := range d.Walls {
		if !inBounds(w) {
			errs = multierr.Append(errs, fieldErr("walls", "entry %d %v is out of bounds", i, w))
			continue
		}
		walls[w] = true
	}
	if walls[d.Goal] {
		errs = multierr.Append(errs, fieldErr("goal", "%v coincides with a wall", d.Goal))
	}
	if walls[d.Player.Start] {
		errs = multierr.Append(errs, fieldErr("player.start", "%v coincides with a wall", d.Player.Start))
	}

	for i, e := range d.Enemies {
		errs = multierr.Append(errs, validateEnemy(d, i, e, walls))
	}
	for i, it := range d.Items {
		if !inBounds(it.Pos) {
			errs = multierr.Append(errs, fieldErr("items", "entry %d %v is out of bounds", i, it.Pos))
			continue
		}
		if walls[it.Pos] {
			errs = multierr.Append(errs, fieldErr("items", "entry %d %v coincides with a wall", i, it.Pos))
		}
	}

	if d.Constraints.MaxTurns < 0 {
		errs = multierr.Append(errs, fieldErr("constraints.max_turns", "must be non-negative, got %d", d.Constraints.MaxTurns))
	}
	for i, name := range d.Constraints.AllowedAPIs {
		if !validAPIName[name] {
			errs = multierr.Append(errs, fieldErr("constraints.allowed_apis", "entry %d is unknown: %q", i, name))
		}
	}

	return errs
}

var validAPIName = map[string]bool{
	"turn_left": true, "turn_right": true, "move": true, "attack": true,
	"pickup": true, "dispose": true, "wait": true, "see": true,
	"get_stage_info": true, "is_available": true, "get_stamina": true,
}

func validateEnemy(d *Descriptor, idx int, e EnemyDesc, walls map[PositionDesc]bool) error {
	var errs error

	w, h := footprintFor(e.Kind)
	if w == 0 {
		errs = multierr.Append(errs, fieldErr("enemies", "entry %d has unknown kind %q", idx, e.Kind))
		return errs
	}

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			cell := PositionDesc{X: e.Anchor.X + dx, Y: e.Anchor.Y + dy}
			if cell.X < 0 || cell.X >= d.Width || cell.Y < 0 || cell.Y >= d.Height {
				errs = multierr.Append(errs, fieldErr("enemies", "entry %d footprint cell %v is out of bounds", idx, cell))
				continue
			}
			if walls[cell] {
				errs = multierr.Append(errs, fieldErr("enemies", "entry %d footprint cell %v coincides with a wall", idx, cell))
			}
		}
	}

	if e.MaxHP <= 0 {
		errs = multierr.Append(errs, fieldErr("enemies", "entry %d max_hp must be positive", idx))
	}
	if _, err := board.ParseDirection(e.Facing); err != nil {
		errs = multierr.Append(errs, fieldErr("enemies", "entry %d facing: %s", idx, err))
	}
	if e.Vision != nil {
		if _, err := board.ParseDirection(e.Vision.Facing); err != nil {
			errs = multierr.Append(errs, fieldErr("enemies", "entry %d vision.facing: %s", idx, err))
		}
		if e.Vision.Range <= 0 {
			errs = multierr.Append(errs, fieldErr("enemies", "entry %d vision.range must be positive", idx))
		}
	}
	if e.Rage != nil && e.Rage.Threshold < 0 {
		errs = multierr.Append(errs, fieldErr("enemies", "entry %d rage.threshold must be non-negative", idx))
	}
	if e.ConditionalKill != nil {
		if len(e.ConditionalKill.RequiredSequence) == 0 {
			errs = multierr.Append(errs, fieldErr("enemies", "entry %d conditional_kill.required_sequence must not be empty", idx))
		}
		for i, kind := range e.ConditionalKill.RequiredSequence {
			if w, _ := footprintFor(kind); w == 0 {
				errs = multierr.Append(errs, fieldErr("enemies", "entry %d conditional_kill.required_sequence entry %d is unknown kind %q", idx, i, kind))
			}
		}
	}

	return errs
}

func footprintFor(kind string) (int, int) {
	switch kind {
	case "normal":
		return 1, 1
	case "large_2x2":
		return 2, 2
	case "large_3x3":
		return 3, 3
	case "special_2x3":
		return 2, 3
	default:
		return 0, 0
	}
}
