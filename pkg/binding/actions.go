package binding

import (
	"strconv"
	"strings"
)

// ActionKind identifies an array affordance posted by a front-end.
type ActionKind string

const (
	ActionSubmit ActionKind = "submit"
	ActionAdd    ActionKind = "add"
	ActionRemove ActionKind = "remove"
)

// Action is a decoded affordance. Index is only meaningful for ActionRemove.
type Action struct {
	Kind   ActionKind
	Target string
	Index  int
}

// AddAction encodes the add affordance for the list at name.
func AddAction(name string) string {
	return string(ActionAdd) + ":" + name
}

// RemoveAction encodes the remove affordance for entry idx of the list at
// name.
func RemoveAction(name string, idx int) string {
	return string(ActionRemove) + ":" + name + ":" + strconv.Itoa(idx)
}

// ParseAction decodes "submit", "add:<name>" and "remove:<name>:<idx>". An
// empty value is a submit.
func ParseAction(raw string) (Action, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == string(ActionSubmit) {
		return Action{Kind: ActionSubmit}, true
	}

	kind, rest, _ := strings.Cut(raw, ":")
	switch ActionKind(kind) {
	case ActionAdd:
		if rest == "" {
			return Action{}, false
		}
		return Action{Kind: ActionAdd, Target: rest}, true
	case ActionRemove:
		idx := strings.LastIndexByte(rest, ':')
		if idx <= 0 {
			return Action{}, false
		}
		n, err := strconv.Atoi(rest[idx+1:])
		if err != nil || n < 0 {
			return Action{}, false
		}
		return Action{Kind: ActionRemove, Target: rest[:idx], Index: n}, true
	default:
		return Action{}, false
	}
}
