// Package progress models the weekly study plan and the per-session checklist
// state kept against it.
package progress

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Status of a week in the plan.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusNotStarted Status = "not-started"
)

// Icon returns the glyph shown next to a week title.
func (s Status) Icon() string {
	switch s {
	case StatusCompleted:
		return "✓"
	case StatusInProgress:
		return "●"
	default:
		return "○"
	}
}

// Week is one block of the study plan.
type Week struct {
	Number   int      `yaml:"week" json:"week"`
	Title    string   `yaml:"title" json:"title"`
	Topics   string   `yaml:"topics" json:"topics"`
	Status   Status   `yaml:"status" json:"status"`
	Problems []string `yaml:"problems" json:"problems"`
}

// Validate checks a single week.
func (w Week) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Number, validation.Required, validation.Min(1)),
		validation.Field(&w.Title, validation.Required),
		validation.Field(&w.Status, validation.In(StatusCompleted, StatusInProgress, StatusNotStarted)),
	)
}

// Plan is the ordered list of weeks.
type Plan struct {
	Weeks []Week `yaml:"weeks" json:"weeks"`
}

// Validate requires at least one valid week.
func (p Plan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Weeks, validation.Required),
	)
}

// DefaultPlan is the built-in two-week starter plan.
func DefaultPlan() Plan {
	return Plan{Weeks: []Week{
		{
			Number: 1,
			Title:  "Foundation",
			Topics: "Python Basics + Complexity + Arrays Intro",
			Status: StatusInProgress,
			Problems: []string{
				"Two Sum",
				"Best Time to Buy and Sell Stock",
				"Contains Duplicate",
				"Maximum Subarray",
				"Valid Palindrome",
			},
		},
		{
			Number: 2,
			Title:  "Arrays & Strings",
			Topics: "Two Pointers + Sliding Window",
			Status: StatusNotStarted,
		},
	}}
}

// LoadPlan reads a YAML plan from path; an empty path yields DefaultPlan.
// Weeks without a status are treated as not started.
func LoadPlan(path string) (Plan, error) {
	if path == "" {
		return DefaultPlan(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("progress: read plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("progress: parse plan: %w", err)
	}
	for i := range p.Weeks {
		if p.Weeks[i].Status == "" {
			p.Weeks[i].Status = StatusNotStarted
		}
	}
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("progress: invalid plan: %w", err)
	}
	return p, nil
}

// Has reports whether (week, problem) indexes an existing problem.
func (p Plan) Has(week, problem int) bool {
	if week < 0 || week >= len(p.Weeks) {
		return false
	}
	return problem >= 0 && problem < len(p.Weeks[week].Problems)
}

// Total is the number of problems across all weeks.
func (p Plan) Total() int {
	n := 0
	for _, w := range p.Weeks {
		n += len(w.Problems)
	}
	return n
}

// CurrentWeek is the first in-progress week, or the first week when none is.
// It returns 0 for an empty plan.
func (p Plan) CurrentWeek() int {
	for _, w := range p.Weeks {
		if w.Status == StatusInProgress {
			return w.Number
		}
	}
	if len(p.Weeks) == 0 {
		return 0
	}
	return p.Weeks[0].Number
}
