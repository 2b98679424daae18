package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/hobbytrack/internal/tui/components"
	"github.com/pablasso/hobbytrack/internal/tui/msgs"
	"github.com/pablasso/hobbytrack/internal/tui/styles"
)

// MenuItem represents a menu option in the home view.
type MenuItem struct {
	Label       string
	Shortcut    string
	Description string
}

// MenuSection represents a group of related menu items.
type MenuSection struct {
	Title string
	Items []MenuItem
}

// HomeModel is the landing screen.
type HomeModel struct {
	sections []MenuSection
	cursor   int
	hobbies  int
	goals    int
	backend  string
	width    int
	height   int
	errorMsg string
}

// NewHomeModel creates the home menu. backend is shown as a hint of where
// suggestions come from.
func NewHomeModel(backend string) HomeModel {
	return HomeModel{
		sections: []MenuSection{
			{
				Title: "Goals",
				Items: []MenuItem{
					{Label: "New Goal", Shortcut: "n", Description: "Write a goal, then pick a hobby for it"},
					{Label: "Session", Shortcut: "s", Description: "Review and save what you created"},
				},
			},
			{
				Title: "",
				Items: []MenuItem{
					{Label: "Quit", Shortcut: "q", Description: ""},
				},
			},
		},
		backend: backend,
	}
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", "s":
			return m, shortcutCmd(msg.String())
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.totalMenuItems()-1 {
				m.cursor++
			}
		case "enter":
			return m, shortcutCmd(m.shortcutAtCursor())
		}
	}
	return m, nil
}

func shortcutCmd(shortcut string) tea.Cmd {
	switch shortcut {
	case "n":
		return func() tea.Msg { return msgs.GoToWizardMsg{} }
	case "s":
		return func() tea.Msg { return msgs.GoToSummaryMsg{} }
	case "q":
		return tea.Quit
	}
	return nil
}

func (m HomeModel) totalMenuItems() int {
	total := 0
	for _, section := range m.sections {
		total += len(section.Items)
	}
	return total
}

func (m HomeModel) shortcutAtCursor() string {
	idx := 0
	for _, section := range m.sections {
		for _, item := range section.Items {
			if idx == m.cursor {
				return item.Shortcut
			}
			idx++
		}
	}
	return ""
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.TitleStyle.Render("H O B B Y T R A C K"))
	tagline := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.SubtleStyle.Render("Start with a goal, find the hobby"))

	var menuLines []string
	cursorIdx := 0
	for sectionIdx, section := range m.sections {
		if section.Title != "" {
			menuLines = append(menuLines, styles.SectionStyle.Render(section.Title))
		}
		for _, item := range section.Items {
			main := "[" + item.Shortcut + "] " + item.Label
			var line string
			if cursorIdx == m.cursor {
				line = styles.SelectedStyle.Render(main)
			} else {
				line = styles.SubtleStyle.Render(main)
			}
			if item.Description != "" {
				line += "  " + styles.SubtleStyle.Render(item.Description)
			}
			menuLines = append(menuLines, line)
			cursorIdx++
		}
		if sectionIdx < len(m.sections)-1 {
			menuLines = append(menuLines, "")
		}
	}

	session := styles.SubtleStyle.Render(fmt.Sprintf("This session: %d hobbies, %d goals", m.hobbies, m.goals))
	if m.backend != "" {
		session += styles.SubtleStyle.Render("  ·  backend " + m.backend)
	}

	statusBarHeight := 1
	contentHeight := 2 + 2 + len(menuLines) + 2
	if m.errorMsg != "" {
		contentHeight += 2
	}
	availableHeight := m.height - statusBarHeight
	topPadding := max(0, (availableHeight-contentHeight)/2)

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(tagline)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(menuLines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, session))

	if m.errorMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.ErrorStyle.Render(m.errorMsg)))
	}

	bottomPadding := max(0, availableHeight-(topPadding+contentHeight))
	b.WriteString(strings.Repeat("\n", bottomPadding))

	b.WriteString(components.NewStatusBar().Render(m.width, []string{"↑↓ Navigate", "Enter Select", "q Quit"}))
	return b.String()
}

// SetSize updates the model dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetCounts updates the session totals shown under the menu.
func (m *HomeModel) SetCounts(hobbies, goals int) {
	m.hobbies = hobbies
	m.goals = goals
}

// Cursor returns the current cursor position.
func (m HomeModel) Cursor() int {
	return m.cursor
}

// SetError sets an error message to display.
func (m *HomeModel) SetError(msg string) {
	m.errorMsg = msg
}

// Error returns the current error message.
func (m HomeModel) Error() string {
	return m.errorMsg
}
