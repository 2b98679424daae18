package components

import (
	"fmt"
	"strings"
)

const (
	doneStep    = "■"
	pendingStep = "□"
)

// StepIndicator renders wizard progress like: ■□ Step 1 of 2 · Your goal
type StepIndicator struct {
	Current int
	Total   int
	Label   string
}

// NewStepIndicator creates a StepIndicator. Current is 1-based.
func NewStepIndicator(current, total int, label string) StepIndicator {
	return StepIndicator{Current: current, Total: total, Label: label}
}

// View returns the rendered indicator.
func (s StepIndicator) View() string {
	if s.Total <= 0 {
		return s.Label
	}

	current := min(max(s.Current, 0), s.Total)
	marks := strings.Repeat(doneStep, current) + strings.Repeat(pendingStep, s.Total-current)

	out := fmt.Sprintf("%s Step %d of %d", marks, current, s.Total)
	if s.Label != "" {
		out += " · " + s.Label
	}
	return out
}
