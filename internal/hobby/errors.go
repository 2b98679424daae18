package hobby

import "errors"

// Validation errors. They never carry user-facing text beyond the field name.
var (
	ErrBlankObjective = errors.New("objective is required")
	ErrBlankTitle     = errors.New("title is required")
	ErrBlankTaskName  = errors.New("task name is required")
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrInvalidSteps   = errors.New("steps must be a positive number")
	ErrInvalidRepeat  = errors.New("repetition must be a positive number")
	ErrMissingHobby   = errors.New("hobby id is required")
	ErrMissingGoal    = errors.New("goal id is required")
)
