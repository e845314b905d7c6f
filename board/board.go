package board

// CellContent classifies what occupies a cell for rendering and for
// action preconditions. Priority when several things overlap a cell is
// fixed: Wall > EnemyRef > ItemRef > Goal > Empty.
type CellContent int

const (
	Empty CellContent = iota
	Wall
	Boundary
	Forbidden
	Goal
	EnemyRef
	ItemRef
)

// Board is the static layout of a stage: its dimensions, impassable
// cells, and the single goal cell. Entities are tracked separately by
// the caller (engine.GameState) — Board only knows terrain.
type Board struct {
	Width, Height int
	walls         map[Position]bool
	forbidden     map[Position]bool
	goal          Position
	hasGoal       bool
}

// NewBoard builds an empty board of the given dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:     width,
		Height:    height,
		walls:     make(map[Position]bool),
		forbidden: make(map[Position]bool),
	}
}

// SetWall marks p impassable terrain.
func (b *Board) SetWall(p Position) { b.walls[p] = true }

// SetForbidden marks p as a tile an action may never target (distinct
// from a wall: forbidden tiles can still be seen through).
func (b *Board) SetForbidden(p Position) { b.forbidden[p] = true }

// SetGoal designates p as the stage's goal cell.
func (b *Board) SetGoal(p Position) {
	b.goal = p
	b.hasGoal = true
}

// Goal returns the stage's goal position and whether one was set.
func (b *Board) Goal() (Position, bool) { return b.goal, b.hasGoal }

// InBounds reports whether p lies within the board's dimensions.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// IsWall reports whether p is a wall tile.
func (b *Board) IsWall(p Position) bool { return b.walls[p] }

// IsForbidden reports whether p is a forbidden tile.
func (b *Board) IsForbidden(p Position) bool { return b.forbidden[p] }

// IsPassable reports whether an entity could stand on p: in bounds,
// not a wall, not forbidden.
func (b *Board) IsPassable(p Position) bool {
	return b.InBounds(p) && !b.IsWall(p) && !b.IsForbidden(p)
}

// Neighbors returns the up-to-four orthogonally adjacent in-bounds
// positions of p, in fixed N,E,S,W order (the same order the enemy AI's
// horizontal-first tie-break relies on — see config.Config).
func (b *Board) Neighbors(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range []Direction{North, East, South, West} {
		n := p.Step(d)
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}
