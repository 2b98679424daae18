// Package hobby defines the records the tracker creates: hobbies, the goals
// attached to them and the tasks that break a goal down.
package hobby

import (
	"strings"
	"time"
)

// Hobby is a tracked activity. IDs are assigned when the hobby is created,
// either by the client or by the backend.
type Hobby struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Draft is a goal that has not been attached to a hobby yet.
type Draft struct {
	Objective string `json:"objective"`
	Unit      Period `json:"unit"`
	Steps     int    `json:"steps"`
}

// Goal is a finalized draft that references the hobby it belongs to.
type Goal struct {
	ID        string    `json:"id,omitempty"`
	Objective string    `json:"objective"`
	Unit      Period    `json:"unit"`
	Steps     int       `json:"steps"`
	HobbyID   string    `json:"hobbyId"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// DefaultSteps is used when a draft is submitted without a step count.
const DefaultSteps = 1

// NewDraft validates the goal fields and returns a draft.
// A steps value of zero means "not given" and becomes DefaultSteps.
func NewDraft(objective string, unit Period, steps int) (Draft, error) {
	if strings.TrimSpace(objective) == "" {
		return Draft{}, ErrBlankObjective
	}
	if !unit.IsGoalUnit() {
		return Draft{}, ErrInvalidPeriod
	}
	if steps < 0 {
		return Draft{}, ErrInvalidSteps
	}
	if steps == 0 {
		steps = DefaultSteps
	}
	return Draft{Objective: objective, Unit: unit, Steps: steps}, nil
}

// Finalize attaches the draft to a hobby.
func (d Draft) Finalize(id, hobbyID string) Goal {
	return Goal{
		ID:        id,
		Objective: d.Objective,
		Unit:      d.Unit,
		Steps:     d.Steps,
		HobbyID:   hobbyID,
	}
}

// NewHobby validates the hobby fields and returns a hobby with the given ID.
func NewHobby(id, title, category, description string) (Hobby, error) {
	if strings.TrimSpace(title) == "" {
		return Hobby{}, ErrBlankTitle
	}
	return Hobby{
		ID:          id,
		Title:       title,
		Category:    category,
		Description: description,
	}, nil
}

// Validate checks the required fields of a goal received from elsewhere.
func (g Goal) Validate() error {
	if _, err := NewDraft(g.Objective, g.Unit, g.Steps); err != nil {
		return err
	}
	if g.Steps == 0 {
		return ErrInvalidSteps
	}
	if strings.TrimSpace(g.HobbyID) == "" {
		return ErrMissingHobby
	}
	return nil
}

// Validate checks the required fields of a hobby received from elsewhere.
func (h Hobby) Validate() error {
	_, err := NewHobby(h.ID, h.Title, h.Category, h.Description)
	return err
}
