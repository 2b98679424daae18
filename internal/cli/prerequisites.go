package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pablasso/hobbytrack/internal/backend"
)

// PrerequisiteError represents a failed prerequisite check with helpful remediation info.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

// checkBackend verifies the hobby backend answers its health endpoint.
func checkBackend(ctx context.Context, client *backend.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Health(ctx); err != nil {
		return &PrerequisiteError{
			Check:   "Hobby backend",
			Message: fmt.Sprintf("%s is not reachable (%v)", client.Base, err),
			Help:    "Start a local one with 'hobbytrack serve' or point --backend at a running server.",
		}
	}
	return nil
}
