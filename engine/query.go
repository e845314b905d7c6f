package engine

import (
	"github.com/naltoma/roguecore/board"
	"github.com/naltoma/roguecore/entity"
)

// PlayerSnapshot is the read-only player view See returns.
type PlayerSnapshot struct {
	Pos     board.Position
	Facing  board.Direction
	HP      int
	MaxHP   int
	Stamina int
}

// NeighborInfo describes one of the player's four orthogonal neighbor
// cells.
type NeighborInfo struct {
	Direction board.Direction
	Pos       board.Position
	Passable  bool
	HasWall   bool
	HasEnemy  bool
	HasItem   bool
}

// VisionEnemy is the public, read-only view of one enemy exposed by
// See and GetEnemyIntel — never the live *entity.Enemy, so a caller
// can't mutate engine state through a query. Enemy HP is exposed only
// as HPRatio, never as raw HP.
type VisionEnemy struct {
	ID      string
	HPRatio float64
	Alerted bool
}

// VisionCell is one cell of See's vision map.
type VisionCell struct {
	Pos    board.Position
	Wall   bool
	Goal   bool
	Enemy  *VisionEnemy
	ItemID string
}

// SeeResult is the complete, non-turn-consuming snapshot See returns.
type SeeResult struct {
	Player    PlayerSnapshot
	Neighbors [4]NeighborInfo
	Vision    map[board.Position]VisionCell
	Status    string
}

// See returns the player snapshot, the four orthogonal neighbor cells,
// a vision map of every cell within visionRange (Manhattan distance)
// of the player, and the current game status. See never consumes a
// turn.
func (g *Game) See(visionRange int) SeeResult {
	p := g.State.Player
	result := SeeResult{
		Player: PlayerSnapshot{Pos: p.Pos, Facing: p.Facing, HP: p.HP, MaxHP: p.MaxHP, Stamina: p.Stamina},
		Vision: make(map[board.Position]VisionCell),
		Status: g.status(),
	}

	for i, d := range []board.Direction{board.North, board.East, board.South, board.West} {
		n := p.Pos.Step(d)
		result.Neighbors[i] = NeighborInfo{
			Direction: d,
			Pos:       n,
			Passable:  g.State.Board.IsPassable(n),
			HasWall:   g.State.Board.IsWall(n),
			HasEnemy:  g.State.EnemyAt(n) != nil,
			HasItem:   g.State.ItemAt(n) != nil,
		}
	}

	goal, hasGoal := g.State.Board.Goal()
	for dy := -visionRange; dy <= visionRange; dy++ {
		for dx := -visionRange; dx <= visionRange; dx++ {
			if abs(dx)+abs(dy) > visionRange {
				continue
			}
			cell := p.Pos.Add(dx, dy)
			if !g.State.Board.InBounds(cell) {
				continue
			}
			vc := VisionCell{Pos: cell, Wall: g.State.Board.IsWall(cell), Goal: hasGoal && cell == goal}
			if e := g.State.EnemyAt(cell); e != nil {
				vc.Enemy = enemyIntel(e)
			}
			if it := g.State.ItemAt(cell); it != nil {
				vc.ItemID = it.ID
			}
			result.Vision[cell] = vc
		}
	}

	return result
}

// status reports the game's current lifecycle phase. Game.Step checks
// Won/Lost/TurnsExceeded directly instead of calling this, since it
// also needs to latch g.over/g.won once the game ends.
func (g *Game) status() string {
	switch {
	case g.State.Won(g.Config):
		return "won"
	case g.State.Lost(), g.State.TurnsExceeded():
		return "failed"
	default:
		return "playing"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func enemyIntel(e *entity.Enemy) *VisionEnemy {
	ratio := 0.0
	if e.MaxHP > 0 {
		ratio = float64(e.HP) / float64(e.MaxHP)
	}
	return &VisionEnemy{ID: e.ID, HPRatio: ratio, Alerted: e.Alerted}
}

// GetEnemyIntel returns the snapshot of one enemy by id, the second
// return value false if no such living enemy exists. A supplemental,
// non-turn-consuming convenience query layered on top of the same
// data See already exposes.
func (g *Game) GetEnemyIntel(id string) (VisionEnemy, bool) {
	e := g.State.EnemyByID(id)
	if e == nil || !e.Alive() {
		return VisionEnemy{}, false
	}
	return *enemyIntel(e), true
}

// StageInfo is the read-only stage summary GetStageInfo returns.
type StageInfo struct {
	Width, Height  int
	TurnCount      int
	EnemiesAlive   int
	ItemsRemaining int
}

// GetStageInfo summarizes the current board without consuming a turn.
func (g *Game) GetStageInfo() StageInfo {
	alive := 0
	for _, e := range g.State.Enemies {
		if e.Alive() {
			alive++
		}
	}
	remaining := 0
	for _, it := range g.State.Items {
		if !g.State.Player.Collected[it.ID] && !g.State.Player.Disposed[it.ID] {
			remaining++
		}
	}
	return StageInfo{
		Width:          g.State.Board.Width,
		Height:         g.State.Board.Height,
		TurnCount:      g.State.TurnCount,
		EnemiesAlive:   alive,
		ItemsRemaining: remaining,
	}
}

// IsAvailable reports whether the item at the player's current
// position, if any, is beneficial — i.e. safe to pick up rather than
// requiring dispose. Never consumes a turn.
func (g *Game) IsAvailable() bool {
	it := g.State.ItemAt(g.State.Player.Pos)
	return it != nil && !it.Disposable
}

// GetStamina returns the player's current stamina level.
func (g *Game) GetStamina() int {
	return g.State.Player.Stamina
}
