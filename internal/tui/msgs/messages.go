// Package msgs defines shared message types for TUI view transitions.
package msgs

// View transition messages

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// GoToWizardMsg signals transition to the goal-first wizard.
type GoToWizardMsg struct{}

// GoToSummaryMsg signals transition to the session summary.
type GoToSummaryMsg struct{}

// Wizard messages

// WizardUpdatedMsg is sent whenever the wizard controller changes state.
// Views re-read the controller snapshot when they receive it.
type WizardUpdatedMsg struct{}

// CommitDoneMsg is sent when a commit to the backend returns.
type CommitDoneMsg struct {
	HobbyID string
	Err     error
}
