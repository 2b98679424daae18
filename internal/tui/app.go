package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pablasso/hobbytrack/internal/tui/msgs"
	"github.com/pablasso/hobbytrack/internal/tui/styles"
	"github.com/pablasso/hobbytrack/internal/tui/views"
	"github.com/pablasso/hobbytrack/internal/wizard"
)

// Minimum terminal size the views are laid out for.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewWizard
	ViewSummary
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	home    views.HomeModel
	wizard  views.WizardModel
	summary views.SummaryModel

	ctrl   *wizard.Controller
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// Run starts the TUI application and blocks until the user quits.
func Run(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newModel(opts Options) (Model, error) {
	if opts.Controller == nil {
		return Model{}, errors.New("tui: no wizard controller")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		currentView: ViewHome,
		home:        views.NewHomeModel(opts.Backend),
		wizard:      views.NewWizardModel(opts.Controller),
		summary:     views.NewSummaryModel(ctx, opts.Controller),
		ctrl:        opts.Controller,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// listenForUpdates waits for the next controller change.
func listenForUpdates(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return msgs.WizardUpdatedMsg{}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.home.Init(), listenForUpdates(m.ctrl.Updates()))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.wizard.SetSize(msg.Width, msg.Height)
		m.summary.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.GoToHomeMsg:
		m.currentView = ViewHome
		return m, nil

	case msgs.GoToWizardMsg:
		m.currentView = ViewWizard
		return m, m.wizard.Init()

	case msgs.GoToSummaryMsg:
		m.currentView = ViewSummary
		m.summary.Refresh()
		return m, m.summary.Init()

	case msgs.WizardUpdatedMsg:
		var wcmd, scmd tea.Cmd
		m.wizard, wcmd = m.wizard.Update(msg)
		m.summary, scmd = m.summary.Update(msg)
		snap := m.wizard.Snapshot()
		m.home.SetCounts(len(snap.Hobbies), len(snap.Goals))
		return m, tea.Batch(wcmd, scmd, listenForUpdates(m.ctrl.Updates()))

	case msgs.CommitDoneMsg:
		if msg.Err != nil {
			m.logger.Debug("commit rejected", zap.String("hobby_id", msg.HobbyID), zap.Error(msg.Err))
		}
		var cmd tea.Cmd
		m.summary, cmd = m.summary.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewWizard:
		m.wizard, cmd = m.wizard.Update(msg)
	case ViewSummary:
		m.summary, cmd = m.summary.Update(msg)
	default:
		m.home, cmd = m.home.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewWizard:
		return m.wizard.View()
	case ViewSummary:
		return m.summary.View()
	default:
		return m.home.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	lines := []string{
		styles.ErrorStyle.Render("Terminal too small"),
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
