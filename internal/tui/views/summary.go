package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/tui/components"
	"github.com/pablasso/hobbytrack/internal/tui/msgs"
	"github.com/pablasso/hobbytrack/internal/tui/styles"
	"github.com/pablasso/hobbytrack/internal/wizard"
)

// SummaryModel lists the hobbies and goals created this session and commits
// them to the backend.
type SummaryModel struct {
	ctx  context.Context
	ctrl *wizard.Controller
	snap wizard.Snapshot

	cursor     int
	committing bool
	spinner    spinner.Model
	errorMsg   string

	width  int
	height int
}

// NewSummaryModel creates the summary view. ctx bounds commits started from it.
func NewSummaryModel(ctx context.Context, ctrl *wizard.Controller) SummaryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return SummaryModel{
		ctx:     ctx,
		ctrl:    ctrl,
		snap:    ctrl.Snapshot(),
		spinner: s,
	}
}

// Init implements tea.Model.
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case msgs.WizardUpdatedMsg:
		m.refresh()
		return m, nil

	case msgs.CommitDoneMsg:
		m.committing = false
		if msg.Err != nil {
			m.errorMsg = describeError(msg.Err)
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.committing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "n":
			return m, func() tea.Msg { return msgs.GoToWizardMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.snap.Hobbies)-1 {
				m.cursor++
			}
		case "c", "enter":
			return m.commitSelected()
		}
	}
	return m, nil
}

func (m SummaryModel) commitSelected() (SummaryModel, tea.Cmd) {
	if m.committing || len(m.snap.Hobbies) == 0 {
		return m, nil
	}
	h := m.snap.Hobbies[m.cursor]
	m.committing = true
	m.errorMsg = ""

	ctx, ctrl := m.ctx, m.ctrl
	commit := func() tea.Msg {
		return msgs.CommitDoneMsg{HobbyID: h.ID, Err: ctrl.CommitToBackend(ctx, h)}
	}
	return m, tea.Batch(commit, m.spinner.Tick)
}

func (m *SummaryModel) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.cursor >= len(m.snap.Hobbies) {
		m.cursor = max(0, len(m.snap.Hobbies)-1)
	}
}

// View implements tea.Model.
func (m SummaryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("This session"))
	b.WriteString("\n")

	if len(m.snap.Hobbies) == 0 {
		b.WriteString(styles.SubtleStyle.Render("Nothing yet. Press n to write your first goal."))
	} else {
		for i, h := range m.snap.Hobbies {
			b.WriteString(m.renderHobby(i, h))
			if i < len(m.snap.Hobbies)-1 {
				b.WriteString("\n")
			}
		}
	}

	if banner := m.renderBanner(); banner != "" {
		b.WriteString("\n\n")
		b.WriteString(banner)
	}

	content := b.String()
	padding := max(0, m.height-1-lipgloss.Height(content))
	hints := []string{"↑↓ Navigate", "c Commit", "n New goal", "Esc Home"}
	return content + strings.Repeat("\n", padding) + "\n" + components.NewStatusBar().Render(m.width, hints)
}

func (m SummaryModel) renderHobby(i int, h hobby.Hobby) string {
	goals := m.snap.GoalsFor(h.ID)

	header := fmt.Sprintf("%s  (%d goal", h.Title, len(goals))
	if len(goals) != 1 {
		header += "s"
	}
	header += ")"

	var b strings.Builder
	if i == m.cursor {
		b.WriteString(styles.SelectedStyle.Render("> " + header))
	} else {
		b.WriteString("  " + header)
	}
	if m.snap.Selected != nil && m.snap.Selected.ID == h.ID {
		b.WriteString(styles.SubtleStyle.Render("  latest"))
	}
	for _, g := range goals {
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("    - %s · %d per %s", g.Objective, g.Steps, strings.ToLower(string(g.Unit)))))
	}
	return b.String()
}

func (m SummaryModel) renderBanner() string {
	switch {
	case m.committing:
		return m.spinner.View() + " Saving..."
	case m.errorMsg != "":
		return styles.ErrorStyle.Render(m.errorMsg)
	case m.snap.Status.Kind == wizard.StatusSuccess:
		return styles.SuccessStyle.Render(m.snap.Status.Message)
	case m.snap.Status.Kind == wizard.StatusError:
		return styles.ErrorStyle.Render(m.snap.Status.Message)
	}
	return ""
}

// SetSize updates the model dimensions.
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Refresh re-reads the controller state, for when the view is re-entered.
func (m *SummaryModel) Refresh() {
	m.errorMsg = ""
	m.refresh()
}

// Committing reports whether a commit is in flight.
func (m SummaryModel) Committing() bool {
	return m.committing
}
