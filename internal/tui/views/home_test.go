package views

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/hobbytrack/internal/tui/msgs"
)

func TestNewHomeModel_MenuItems(t *testing.T) {
	m := NewHomeModel("")

	if m.Cursor() != 0 {
		t.Errorf("expected cursor to be 0, got %d", m.Cursor())
	}
	// Goals(2) + Quit(1)
	if total := m.totalMenuItems(); total != 3 {
		t.Errorf("expected 3 menu items, got %d", total)
	}

	first := m.sections[0].Items[0]
	if first.Label != "New Goal" || first.Shortcut != "n" {
		t.Fatalf("expected first item to be New Goal [n], got %s [%s]", first.Label, first.Shortcut)
	}
}

func TestHomeModel_Init(t *testing.T) {
	if cmd := NewHomeModel("").Init(); cmd != nil {
		t.Error("expected Init() to return nil")
	}
}

func TestHomeModel_Update_WindowSizeMsg(t *testing.T) {
	m := NewHomeModel("")

	newM, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if cmd != nil {
		t.Error("expected no command from WindowSizeMsg")
	}
	if newM.width != 80 || newM.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", newM.width, newM.height)
	}
}

func TestHomeModel_Update_Navigate(t *testing.T) {
	m := NewHomeModel("")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("expected cursor to be 2, got %d", m.cursor)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("expected cursor to stay at 2, got %d", m.cursor)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.cursor)
	}
}

func TestHomeModel_Update_Shortcuts(t *testing.T) {
	tests := []struct {
		key  rune
		want tea.Msg
	}{
		{'n', msgs.GoToWizardMsg{}},
		{'s', msgs.GoToSummaryMsg{}},
		{'q', tea.QuitMsg{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			_, cmd := NewHomeModel("").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
			if cmd == nil {
				t.Fatalf("expected command from %q", tt.key)
			}
			if msg := cmd(); msg != tt.want {
				t.Errorf("expected %T, got %T", tt.want, msg)
			}
		})
	}
}

func TestHomeModel_Update_EnterSelectsCursor(t *testing.T) {
	m := NewHomeModel("")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	if _, ok := cmd().(msgs.GoToSummaryMsg); !ok {
		t.Error("expected enter on second item to open the session summary")
	}
}

func TestHomeModel_View_NoSize(t *testing.T) {
	if NewHomeModel("").View() != "" {
		t.Error("expected empty view when width/height are 0")
	}
}

func TestHomeModel_View_RendersMenuAndCounts(t *testing.T) {
	m := NewHomeModel("http://localhost:8080")
	m.SetSize(100, 24)
	m.SetCounts(2, 3)

	view := stripANSI(m.View())
	for _, want := range []string{"New Goal", "Session", "This session: 2 hobbies, 3 goals", "http://localhost:8080"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got: %s", want, view)
		}
	}
}

func TestHomeModel_View_ShowsError(t *testing.T) {
	m := NewHomeModel("")
	m.SetSize(80, 24)
	m.SetError("backend unreachable")

	if !strings.Contains(m.View(), "backend unreachable") {
		t.Error("expected error in view")
	}
}

func stripANSI(s string) string {
	ansi := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansi.ReplaceAllString(s, "")
}
