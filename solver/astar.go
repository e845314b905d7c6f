package solver

import (
	"container/heap"
	"context"
	"log/slog"
	"time"

	"github.com/naltoma/roguecore/config"
	"github.com/naltoma/roguecore/engine"
)

// node is one expanded search state, grounded on the
// node{state,action,parent,cost,heuristic} shape of the standalone
// GOAP planner example, upgraded from that example's linear-scan open
// list to a container/heap priority queue.
type node struct {
	state  *engine.GameState
	action engine.Action // the action that produced this node from parent
	parent *node
	g      int // turns taken so far
	h      int // heuristic estimate of remaining turns
	index  int // heap bookkeeping
}

func (n *node) f() int { return n.g + n.h }

type openQueue []*node

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].f() != q[j].f() {
		return q[i].f() < q[j].f()
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].g < q[j].g
}
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *openQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *openQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// Progress is emitted periodically during a search so a caller can
// report liveness on a long solve, per spec.md §4.8's "progress
// emitted every N nodes" requirement.
type Progress struct {
	NodesExplored int
	FrontierSize  int
	BestH         int
}

// Options configures one Solve call.
type Options struct {
	Config        *config.Config
	NodeBudget    int           // 0 = unbounded
	Timeout       time.Duration // 0 = unbounded
	ProgressEvery int           // report progress every N pops; 0 disables
	OnProgress    func(Progress)
	Log           *slog.Logger
}

// Result is a completed or aborted search outcome.
type Result struct {
	Solved        bool
	Actions       []engine.Action
	NodesExplored int
	Reason        string // set when Solved is false: why the search stopped
}

// SearchExhausted reports the search stopped without reaching a win:
// either the open set emptied (Result.Reason "open_set_exhausted"),
// which means no solution exists under this encoding, or the node
// budget ran out first (Result.Reason "node_budget_exceeded").
type SearchExhausted struct{}

func (SearchExhausted) Error() string { return "search exhausted: no solution exists" }

// SearchCancelled reports the caller's context was cancelled mid-search.
type SearchCancelled struct{}

func (SearchCancelled) Error() string { return "search cancelled" }

// SearchTimeout reports the configured wall-clock budget elapsed.
type SearchTimeout struct{}

func (SearchTimeout) Error() string { return "search timed out" }

// Solve runs A* from start until it finds a winning action sequence,
// exhausts the open set, hits the node budget, times out, or the
// context is cancelled. Successor expansion calls the same
// engine.Kernel.Execute and UpdateEnemies functions the turn scheduler
// uses — never a reimplementation — so a solved path is guaranteed to
// replay identically through engine.Game (the parity property
// spec.md §4.9 requires).
func Solve(ctx context.Context, start *engine.GameState, opts Options) (Result, error) {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	cfg := opts.Config
	kernel := engine.NewKernel(cfg)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	open := &openQueue{}
	heap.Init(open)
	heap.Push(open, &node{state: start, g: 0, h: heuristic(start)})

	closed := make(map[string]bool)
	explored := 0

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return Result{NodesExplored: explored, Reason: "timeout"}, SearchTimeout{}
			}
			return Result{NodesExplored: explored, Reason: "cancelled"}, SearchCancelled{}
		default:
		}

		if opts.NodeBudget > 0 && explored >= opts.NodeBudget {
			return Result{NodesExplored: explored, Reason: "node_budget_exceeded"}, SearchExhausted{}
		}

		current := heap.Pop(open).(*node)
		key := encodeState(current.state)
		if closed[key] {
			continue
		}
		closed[key] = true
		explored++

		if opts.ProgressEvery > 0 && explored%opts.ProgressEvery == 0 && opts.OnProgress != nil {
			opts.OnProgress(Progress{NodesExplored: explored, FrontierSize: open.Len(), BestH: current.h})
		}

		if current.state.Won(cfg) {
			return Result{Solved: true, Actions: reconstructPath(current), NodesExplored: explored}, nil
		}
		if current.state.Lost() || current.state.TurnsExceeded() {
			continue // dead branch, not a solution
		}

		for _, a := range engine.AllActions() {
			next := current.state.Clone()
			res := kernel.Execute(next, a)
			if !res.Success {
				continue
			}
			kernel.UpdateEnemies(next)
			next.TurnCount++

			nextKey := encodeState(next)
			if closed[nextKey] {
				continue
			}

			heap.Push(open, &node{
				state:  next,
				action: a,
				parent: current,
				g:      current.g + 1,
				h:      heuristic(next),
			})
		}
	}

	return Result{NodesExplored: explored, Reason: "open_set_exhausted"}, SearchExhausted{}
}

func reconstructPath(n *node) []engine.Action {
	var path []engine.Action
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append([]engine.Action{cur.action}, path...)
	}
	return path
}
