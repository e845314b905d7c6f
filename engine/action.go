package engine

// ActionKind enumerates the player actions the kernel can execute, per
// SPEC_FULL.md §6.3.
type ActionKind string

const (
	ActionMoveForward ActionKind = "move_forward"
	ActionTurnLeft    ActionKind = "turn_left"
	ActionTurnRight   ActionKind = "turn_right"
	ActionAttack      ActionKind = "attack"
	ActionPickUp      ActionKind = "pick_up"
	ActionDispose     ActionKind = "dispose"
	ActionWait        ActionKind = "wait"
)

// Action is one turn's worth of player input. It carries no payload
// beyond its kind: every action acts on "whatever is directly ahead of
// the player", matching spec.md §4.3's action surface.
type Action struct {
	Kind ActionKind
}

// AllActions lists every action kind, in a fixed order the solver uses
// when it needs to enumerate successors deterministically.
func AllActions() []Action {
	return []Action{
		{ActionMoveForward},
		{ActionTurnLeft},
		{ActionTurnRight},
		{ActionAttack},
		{ActionPickUp},
		{ActionDispose},
		{ActionWait},
	}
}

// ActionKindFromAPIName maps a stage's allowed_apis entry (SPEC_FULL.md
// §6.3's external name) to this engine's ActionKind. Query-only names
// (see, get_stage_info, is_available, get_stamina) and anything
// unrecognized return false, since they never belong to a turn-
// consuming successor set.
func ActionKindFromAPIName(name string) (ActionKind, bool) {
	switch name {
	case "turn_left":
		return ActionTurnLeft, true
	case "turn_right":
		return ActionTurnRight, true
	case "move":
		return ActionMoveForward, true
	case "attack":
		return ActionAttack, true
	case "pickup":
		return ActionPickUp, true
	case "dispose":
		return ActionDispose, true
	case "wait":
		return ActionWait, true
	default:
		return "", false
	}
}
