package nav

import "sort"

// Expanded is the set of rail item ids whose children are shown. Values are
// never mutated after construction; Reduce returns a fresh set.
type Expanded struct {
	ids map[string]struct{}
}

// DefaultExpanded has only the notes section open.
func DefaultExpanded() Expanded {
	return NewExpanded("notes")
}

// NewExpanded builds a set from ids.
func NewExpanded(ids ...string) Expanded {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Expanded{ids: m}
}

// Has reports whether id is expanded.
func (e Expanded) Has(id string) bool {
	_, ok := e.ids[id]
	return ok
}

// IDs returns the expanded ids in sorted order.
func (e Expanded) IDs() []string {
	out := make([]string, 0, len(e.ids))
	for id := range e.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ActionKind enumerates the state transitions.
type ActionKind int

const (
	ActionToggle ActionKind = iota
	ActionExpand
	ActionCollapse
)

// Action is a transition applied to an Expanded set.
type Action struct {
	Kind ActionKind
	ID   string
}

// Toggle is shorthand for the toggle action.
func Toggle(id string) Action { return Action{Kind: ActionToggle, ID: id} }

// Reduce applies a to e and returns the resulting set; e is unchanged.
func Reduce(e Expanded, a Action) Expanded {
	next := make(map[string]struct{}, len(e.ids)+1)
	for id := range e.ids {
		next[id] = struct{}{}
	}
	switch a.Kind {
	case ActionToggle:
		if _, ok := next[a.ID]; ok {
			delete(next, a.ID)
		} else {
			next[a.ID] = struct{}{}
		}
	case ActionExpand:
		next[a.ID] = struct{}{}
	case ActionCollapse:
		delete(next, a.ID)
	}
	return Expanded{ids: next}
}
