package tui

import (
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/wizard"
)

// Options configures TUI startup.
type Options struct {
	// Controller drives the wizard. The caller owns it and closes it after Run.
	Controller *wizard.Controller

	// Backend is shown on the home screen.
	Backend string

	Logger *zap.Logger
}
