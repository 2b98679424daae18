package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/tui/msgs"
	"github.com/pablasso/hobbytrack/internal/wizard"
)

type staticSource []hobby.Hobby

func (s staticSource) ListHobbies(ctx context.Context) ([]hobby.Hobby, error) {
	return s, nil
}

func newTestModel(t *testing.T) (Model, *wizard.Controller) {
	t.Helper()
	ctrl := wizard.New(wizard.Options{
		Source: staticSource{{ID: "h1", Title: "Running", Category: "Fitness"}},
	})
	t.Cleanup(ctrl.Close)

	m, err := newModel(Options{Controller: ctrl, Backend: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	t.Cleanup(m.cancel)
	return m, ctrl
}

// update feeds msg through the model and returns the concrete Model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return out, cmd
}

func TestNewModel_RequiresController(t *testing.T) {
	if _, err := newModel(Options{}); err == nil {
		t.Fatal("expected error without controller")
	}
}

func TestModel_View_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		expectSmall bool
	}{
		{"exactly minimum size", MinTerminalWidth, MinTerminalHeight, false},
		{"width too small", MinTerminalWidth - 1, MinTerminalHeight, true},
		{"height too small", MinTerminalWidth, MinTerminalHeight - 1, true},
		{"larger than minimum", 100, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = update(t, m, tea.WindowSizeMsg{Width: tt.width, Height: tt.height})

			view := m.View()

			if got := strings.Contains(view, "Terminal too small"); got != tt.expectSmall {
				t.Errorf("expected small=%v, view:\n%s", tt.expectSmall, view)
			}
		})
	}
}

func TestModel_renderTerminalTooSmall_ShowsDimensions(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 50
	m.height = 10

	view := m.renderTerminalTooSmall()

	if !strings.Contains(view, "60x15") {
		t.Error("expected minimum dimensions 60x15 to be shown")
	}
	if !strings.Contains(view, "50x10") {
		t.Error("expected current dimensions 50x10 to be shown")
	}
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})

	m, _ = update(t, m, msgs.GoToWizardMsg{})
	if m.currentView != ViewWizard {
		t.Fatalf("expected wizard view, got %d", m.currentView)
	}
	if !strings.Contains(m.View(), "Your goal") {
		t.Error("expected goal form")
	}

	m, _ = update(t, m, msgs.GoToSummaryMsg{})
	if m.currentView != ViewSummary {
		t.Fatalf("expected summary view, got %d", m.currentView)
	}

	m, _ = update(t, m, msgs.GoToHomeMsg{})
	if m.currentView != ViewHome {
		t.Fatalf("expected home view, got %d", m.currentView)
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("expected pending commits to be cancelled")
	}
}

func TestModel_ListenForUpdates(t *testing.T) {
	updates := make(chan struct{}, 1)
	cmd := listenForUpdates(updates)

	updates <- struct{}{}
	if _, ok := cmd().(msgs.WizardUpdatedMsg); !ok {
		t.Error("expected WizardUpdatedMsg")
	}

	close(updates)
	if msg := cmd(); msg != nil {
		t.Errorf("expected nil after close, got %T", msg)
	}
}

// TestGoalFlow drives the whole app: write a goal, pick the suggested hobby
// and check the session summary.
func TestGoalFlow(t *testing.T) {
	m, ctrl := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	// The home shortcut returns a command; deliver its message.
	m, _ = update(t, m, msgs.GoToWizardMsg{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Run 5km")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if ctrl.Snapshot().Step != wizard.StepHobbySuggestion {
		t.Fatalf("expected suggestion step, got %s", ctrl.Snapshot().Step)
	}

	deadline := time.Now().Add(2 * time.Second)
	for ctrl.Snapshot().Loading {
		if time.Now().After(deadline) {
			t.Fatal("fetch did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
	m, _ = update(t, m, msgs.WizardUpdatedMsg{})
	if !strings.Contains(m.View(), "Running") {
		t.Fatalf("expected suggestion in view:\n%s", m.View())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, msgs.WizardUpdatedMsg{})

	snap := ctrl.Snapshot()
	if len(snap.Goals) != 1 || snap.Goals[0].HobbyID != "h1" {
		t.Fatalf("expected goal for h1, got %+v", snap.Goals)
	}

	m, _ = update(t, m, msgs.GoToHomeMsg{})
	if !strings.Contains(m.View(), "This session: 1 hobbies, 1 goals") {
		t.Errorf("expected home counts to update:\n%s", m.View())
	}

	m, _ = update(t, m, msgs.GoToSummaryMsg{})
	if !strings.Contains(m.View(), "Running  (1 goal)") {
		t.Errorf("expected summary to list the hobby:\n%s", m.View())
	}
}
