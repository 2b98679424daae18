package views

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/wizard"
)

type fakeSource struct {
	hobbies []hobby.Hobby
	err     error
}

func (s fakeSource) ListHobbies(ctx context.Context) ([]hobby.Hobby, error) {
	return s.hobbies, s.err
}

type recordingCommitter struct {
	err error

	mu      sync.Mutex
	commits []string
}

func (c *recordingCommitter) Commit(ctx context.Context, h hobby.Hobby, goals []hobby.Goal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits = append(c.commits, h.ID)
	return c.err
}

var testSuggestions = []hobby.Hobby{
	{ID: "h1", Title: "Running", Category: "Fitness"},
	{ID: "h2", Title: "Guitar", Category: "Music"},
}

func newTestController(t *testing.T, committer wizard.Committer) *wizard.Controller {
	t.Helper()
	ctrl := wizard.New(wizard.Options{
		Source:    fakeSource{hobbies: testSuggestions},
		Committer: committer,
	})
	t.Cleanup(ctrl.Close)
	return ctrl
}

// waitForSuggestions blocks until the controller finished its fetch.
func waitForSuggestions(t *testing.T, ctrl *wizard.Controller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for ctrl.Snapshot().Loading {
		if time.Now().After(deadline) {
			t.Fatal("suggestion fetch did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}
