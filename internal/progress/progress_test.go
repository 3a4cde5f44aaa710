package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var day0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()
	if err := p.Validate(); err != nil {
		t.Fatalf("default plan invalid: %v", err)
	}
	if p.Total() != 5 {
		t.Errorf("Total = %d, want 5", p.Total())
	}
	if p.CurrentWeek() != 1 {
		t.Errorf("CurrentWeek = %d, want 1", p.CurrentWeek())
	}
}

func TestReduce_TogglePure(t *testing.T) {
	s0 := NewState()
	p := Problem{Week: 0, Problem: 2}
	s1 := Reduce(s0, ToggleProblem(p, day0))

	if s0.Checked(p) {
		t.Fatal("input state was mutated")
	}
	if !s1.Checked(p) {
		t.Fatal("problem should be checked")
	}
	s2 := Reduce(s1, ToggleProblem(p, day0))
	if s2.Checked(p) {
		t.Error("second toggle should uncheck")
	}
	if !s1.Checked(p) {
		t.Error("s1 was mutated by later reduce")
	}
}

func TestReduce_Reflection(t *testing.T) {
	s := Reduce(NewState(), SetReflection("sliding window clicked"))
	if s.Reflection() != "sliding window clicked" {
		t.Errorf("reflection = %q", s.Reflection())
	}
	s2 := Reduce(s, ToggleProblem(Problem{}, day0))
	if s2.Reflection() != s.Reflection() {
		t.Error("toggle must keep reflection")
	}
}

func TestSummarize(t *testing.T) {
	plan := DefaultPlan()
	s := NewState()
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 0}, day0))
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 4}, day0))
	s = Reduce(s, ToggleProblem(Problem{Week: 1, Problem: 0}, day0)) // not in plan

	sum := Summarize(plan, s, day0)
	if sum.Solved != 2 || sum.Total != 5 {
		t.Errorf("solved/total = %d/%d, want 2/5", sum.Solved, sum.Total)
	}
	if sum.CurrentWeek != 1 {
		t.Errorf("current week = %d", sum.CurrentWeek)
	}
}

func TestStreak(t *testing.T) {
	s := NewState()
	if got := s.Streak(day0); got != 0 {
		t.Errorf("empty streak = %d", got)
	}
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 0}, day0.AddDate(0, 0, -2)))
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 1}, day0.AddDate(0, 0, -1)))
	if got := s.Streak(day0); got != 2 {
		t.Errorf("streak before solving today = %d, want 2", got)
	}
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 2}, day0))
	if got := s.Streak(day0); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
	if got := s.Streak(day0.AddDate(0, 0, 3)); got != 0 {
		t.Errorf("broken streak = %d, want 0", got)
	}
}

func TestStreak_UntickRemovesDay(t *testing.T) {
	p := Problem{Week: 0, Problem: 3}
	s := Reduce(NewState(), ToggleProblem(p, day0))
	if got := s.Streak(day0); got != 1 {
		t.Fatalf("streak after tick = %d, want 1", got)
	}
	s = Reduce(s, ToggleProblem(p, day0))
	if got := s.Streak(day0); got != 0 {
		t.Errorf("streak after untick = %d, want 0", got)
	}

	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 0}, day0))
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 1}, day0))
	s = Reduce(s, ToggleProblem(Problem{Week: 0, Problem: 0}, day0))
	if got := s.Streak(day0); got != 1 {
		t.Errorf("one tick left today, streak = %d, want 1", got)
	}
}

func TestProject(t *testing.T) {
	plan := DefaultPlan()
	s := Reduce(NewState(), ToggleProblem(Problem{Week: 0, Problem: 1}, day0))
	v := Project(plan, s, day0)
	if len(v.Weeks) != 2 {
		t.Fatalf("weeks = %d", len(v.Weeks))
	}
	if v.Weeks[0].Icon != "●" || v.Weeks[1].Icon != "○" {
		t.Errorf("icons = %q %q", v.Weeks[0].Icon, v.Weeks[1].Icon)
	}
	if !v.Weeks[0].Problems[1].Checked || v.Weeks[0].Problems[0].Checked {
		t.Errorf("problems = %+v", v.Weeks[0].Problems)
	}
	if len(v.Weeks[1].Problems) != 0 {
		t.Error("week 2 has no problems")
	}
}

func TestStatusIcon(t *testing.T) {
	tests := map[Status]string{
		StatusCompleted:  "✓",
		StatusInProgress: "●",
		StatusNotStarted: "○",
		"unknown":        "○",
	}
	for s, want := range tests {
		if got := s.Icon(); got != want {
			t.Errorf("%q.Icon() = %q, want %q", s, got, want)
		}
	}
}

func TestLoadPlan(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.yaml")
	body := `weeks:
  - week: 3
    title: Linked Lists
    topics: Fast and slow pointers
    status: in-progress
    problems:
      - Reverse Linked List
      - Linked List Cycle
  - week: 4
    title: Stacks
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	plan, err := LoadPlan(p)
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if plan.Total() != 2 || plan.CurrentWeek() != 3 {
		t.Errorf("plan = %+v", plan)
	}
	if plan.Weeks[1].Status != StatusNotStarted {
		t.Errorf("missing status should default, got %q", plan.Weeks[1].Status)
	}
	if !plan.Has(0, 1) || plan.Has(1, 0) || plan.Has(2, 0) {
		t.Error("Has reports wrong bounds")
	}
}

func TestLoadPlan_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plan.yaml")
	_ = os.WriteFile(p, []byte("weeks:\n  - week: 1\n    title: A\n    status: someday\n"), 0o644)
	if _, err := LoadPlan(p); err == nil {
		t.Error("expected invalid status error")
	}
	_ = os.WriteFile(p, []byte("weeks: []\n"), 0o644)
	if _, err := LoadPlan(p); err == nil {
		t.Error("expected empty plan error")
	}
}
