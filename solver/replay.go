package solver

import (
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/naltoma/roguecore/engine"
)

// ReplayBundle is the solver's output in a form that can be handed
// across a process boundary: the action sequence plus enough metadata
// to identify and re-check the run. Binary-encoded
// with msgpack, the same role msgpack plays for the teacher repo's
// entity state snapshots.
type ReplayBundle struct {
	RunID         string   `msgpack:"run_id"`
	Actions       []string `msgpack:"actions"`
	NodesExplored int      `msgpack:"nodes_explored"`
}

// NewReplayBundle tags a solved Result with a fresh run identifier.
func NewReplayBundle(result Result) ReplayBundle {
	actions := make([]string, len(result.Actions))
	for i, a := range result.Actions {
		actions[i] = string(a.Kind)
	}
	return ReplayBundle{
		RunID:         uuid.NewString(),
		Actions:       actions,
		NodesExplored: result.NodesExplored,
	}
}

// Encode serializes the bundle to msgpack bytes.
func (b ReplayBundle) Encode() ([]byte, error) {
	return msgpack.Marshal(b)
}

// DecodeReplayBundle deserializes msgpack bytes into a ReplayBundle.
func DecodeReplayBundle(data []byte) (ReplayBundle, error) {
	var b ReplayBundle
	err := msgpack.Unmarshal(data, &b)
	return b, err
}

// ToActions converts the bundle's string-encoded kinds back into
// engine.Action values.
func (b ReplayBundle) ToActions() []engine.Action {
	out := make([]engine.Action, len(b.Actions))
	for i, k := range b.Actions {
		out[i] = engine.Action{Kind: engine.ActionKind(k)}
	}
	return out
}
