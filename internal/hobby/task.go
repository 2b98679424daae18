package hobby

import (
	"strings"
	"time"
)

// Task is a repeatable unit of work toward a goal.
type Task struct {
	ID          string    `json:"id,omitempty"`
	TaskName    string    `json:"taskName"`
	Description string    `json:"description"`
	Duration    Period    `json:"duration"`
	Repetition  int       `json:"repetition"`
	GoalID      string    `json:"goalId"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Validate checks the required task fields.
func (t Task) Validate() error {
	if strings.TrimSpace(t.TaskName) == "" {
		return ErrBlankTaskName
	}
	if !t.Duration.IsValid() {
		return ErrInvalidPeriod
	}
	if t.Repetition < 1 {
		return ErrInvalidRepeat
	}
	if strings.TrimSpace(t.GoalID) == "" {
		return ErrMissingGoal
	}
	return nil
}
