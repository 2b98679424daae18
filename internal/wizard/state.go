package wizard

import "github.com/pablasso/hobbytrack/internal/hobby"

// Step is the stage that decides which form the user sees next.
type Step string

const (
	StepGoalCreation    Step = "goal-creation"
	StepHobbySuggestion Step = "hobby-suggestion"
	StepHobbyCreation   Step = "hobby-creation"
)

// StatusKind tells a success banner from an error banner.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// Status is the transient banner shown after a commit.
type Status struct {
	Kind    StatusKind
	Message string
}

// Active reports whether a banner should be shown.
func (s Status) Active() bool {
	return s.Kind != StatusNone
}

// Snapshot is an immutable view of the wizard. Every transition builds a new
// snapshot; callers receive deep copies and may keep them.
type Snapshot struct {
	Step Step

	// Draft is nil outside the suggestion and creation steps.
	Draft *hobby.Draft

	// Suggestions stays empty while Loading and when the fetch failed.
	Suggestions []hobby.Hobby
	Loading     bool

	// CreatingNew is set while the new-hobby form is open.
	CreatingNew bool

	Hobbies  []hobby.Hobby
	Goals    []hobby.Goal
	Selected *hobby.Hobby

	Status Status
}

// GoalsFor returns the finalized goals that reference hobbyID.
func (s Snapshot) GoalsFor(hobbyID string) []hobby.Goal {
	var out []hobby.Goal
	for _, g := range s.Goals {
		if g.HobbyID == hobbyID {
			out = append(out, g)
		}
	}
	return out
}

// Hobby looks up a hobby in the session collection.
func (s Snapshot) Hobby(id string) (hobby.Hobby, bool) {
	for _, h := range s.Hobbies {
		if h.ID == id {
			return h, true
		}
	}
	return hobby.Hobby{}, false
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Draft != nil {
		d := *s.Draft
		out.Draft = &d
	}
	if s.Selected != nil {
		h := *s.Selected
		out.Selected = &h
	}
	out.Suggestions = cloneSlice(s.Suggestions)
	out.Hobbies = cloneSlice(s.Hobbies)
	out.Goals = cloneSlice(s.Goals)
	return out
}

// resetFlow returns to goal creation, dropping the draft and suggestions.
// Collections, selection and status survive.
func (s Snapshot) resetFlow() Snapshot {
	s.Step = StepGoalCreation
	s.Draft = nil
	s.Suggestions = nil
	s.Loading = false
	s.CreatingNew = false
	return s
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
