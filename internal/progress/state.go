package progress

import (
	"time"
)

// Problem addresses one checklist entry by week and problem index.
type Problem struct {
	Week    int `json:"week"`
	Problem int `json:"problem"`
}

// State is the checklist state of one session. It is treated as immutable:
// Reduce never modifies its input.
type State struct {
	checked    map[Problem]string // day (YYYY-MM-DD) the tick was made, "" if unknown
	reflection string
}

// NewState returns an empty state.
func NewState() State {
	return State{checked: map[Problem]string{}}
}

// Checked reports whether p is ticked.
func (s State) Checked(p Problem) bool {
	_, ok := s.checked[p]
	return ok
}

// Reflection returns the weekly reflection text.
func (s State) Reflection() string { return s.reflection }

// ActionKind enumerates state transitions.
type ActionKind int

const (
	ActionToggleProblem ActionKind = iota
	ActionSetReflection
)

// Action is one transition. At stamps a toggle for streak counting.
type Action struct {
	Kind    ActionKind
	Problem Problem
	Text    string
	At      time.Time
}

// ToggleProblem ticks or unticks p.
func ToggleProblem(p Problem, at time.Time) Action {
	return Action{Kind: ActionToggleProblem, Problem: p, At: at}
}

// SetReflection replaces the reflection text.
func SetReflection(text string) Action {
	return Action{Kind: ActionSetReflection, Text: text}
}

// Reduce applies a to s and returns the new state.
func Reduce(s State, a Action) State {
	next := State{
		checked:    make(map[Problem]string, len(s.checked)+1),
		reflection: s.reflection,
	}
	for k, d := range s.checked {
		next.checked[k] = d
	}

	switch a.Kind {
	case ActionToggleProblem:
		if _, ok := next.checked[a.Problem]; ok {
			delete(next.checked, a.Problem)
		} else {
			var d string
			if !a.At.IsZero() {
				d = day(a.At)
			}
			next.checked[a.Problem] = d
		}
	case ActionSetReflection:
		next.reflection = a.Text
	}
	return next
}

func day(t time.Time) string { return t.Format(time.DateOnly) }

// Streak counts consecutive days ending today (or yesterday, if nothing was
// solved yet today) on which at least one problem still ticked was ticked.
// Unticking a problem takes its day back out.
func (s State) Streak(now time.Time) int {
	days := make(map[string]struct{}, len(s.checked))
	for _, d := range s.checked {
		if d != "" {
			days[d] = struct{}{}
		}
	}
	d := now
	if _, ok := days[day(d)]; !ok {
		d = d.AddDate(0, 0, -1)
	}
	n := 0
	for {
		if _, ok := days[day(d)]; !ok {
			return n
		}
		n++
		d = d.AddDate(0, 0, -1)
	}
}

// Summary is the header of the progress page.
type Summary struct {
	Solved      int `json:"solved"`
	Total       int `json:"total"`
	Streak      int `json:"streak"`
	CurrentWeek int `json:"current_week"`
}

// Summarize projects plan and state into a Summary. Ticks that no longer
// address a problem in plan are ignored.
func Summarize(plan Plan, s State, now time.Time) Summary {
	solved := 0
	for p := range s.checked {
		if plan.Has(p.Week, p.Problem) {
			solved++
		}
	}
	return Summary{
		Solved:      solved,
		Total:       plan.Total(),
		Streak:      s.Streak(now),
		CurrentWeek: plan.CurrentWeek(),
	}
}

// ProblemView is one checklist row.
type ProblemView struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// WeekView is one week card.
type WeekView struct {
	Index    int           `json:"index"`
	Week     Week          `json:"week"`
	Icon     string        `json:"icon"`
	Problems []ProblemView `json:"problems"`
}

// View is the full progress page projection.
type View struct {
	Summary    Summary    `json:"summary"`
	Weeks      []WeekView `json:"weeks"`
	Reflection string     `json:"reflection"`
}

// Project builds the page view.
func Project(plan Plan, s State, now time.Time) View {
	weeks := make([]WeekView, len(plan.Weeks))
	for wi, w := range plan.Weeks {
		probs := make([]ProblemView, len(w.Problems))
		for pi, name := range w.Problems {
			probs[pi] = ProblemView{Index: pi, Name: name, Checked: s.Checked(Problem{Week: wi, Problem: pi})}
		}
		weeks[wi] = WeekView{Index: wi, Week: w, Icon: w.Status.Icon(), Problems: probs}
	}
	return View{
		Summary:    Summarize(plan, s, now),
		Weeks:      weeks,
		Reflection: s.reflection,
	}
}
