package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/hobbytrack/internal/hobby"
	"github.com/pablasso/hobbytrack/internal/tui/components"
	"github.com/pablasso/hobbytrack/internal/tui/msgs"
	"github.com/pablasso/hobbytrack/internal/tui/styles"
	"github.com/pablasso/hobbytrack/internal/wizard"
)

// Goal form fields, in tab order.
const (
	fieldObjective = iota
	fieldUnit
	fieldSteps
	goalFieldCount
)

// New hobby form fields, in tab order.
const (
	fieldTitle = iota
	fieldCategory
	fieldDescription
	hobbyFieldCount
)

// WizardModel renders the goal-first flow on top of a wizard.Controller.
// The controller owns the state; the model keeps only form inputs and the
// suggestion cursor.
type WizardModel struct {
	ctrl *wizard.Controller
	snap wizard.Snapshot

	objective  textinput.Model
	unit       hobby.Period
	steps      textinput.Model
	goalFocus  int
	hobbyForm  [hobbyFieldCount]textinput.Model
	hobbyFocus int

	cursor  int
	spinner spinner.Model

	errorMsg string
	notice   string

	width  int
	height int
}

// NewWizardModel creates the wizard view for ctrl.
func NewWizardModel(ctrl *wizard.Controller) WizardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	objective := textinput.New()
	objective.Placeholder = "e.g. Run 5km"
	objective.CharLimit = 120
	objective.Width = 40
	objective.Focus()

	steps := textinput.New()
	steps.Placeholder = "1"
	steps.CharLimit = 4
	steps.Width = 6

	var form [hobbyFieldCount]textinput.Model
	for i, placeholder := range []string{"e.g. Running", "e.g. Fitness", "What it involves"} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 120
		ti.Width = 40
		form[i] = ti
	}

	return WizardModel{
		ctrl:      ctrl,
		snap:      ctrl.Snapshot(),
		objective: objective,
		unit:      hobby.PeriodWeek,
		steps:     steps,
		hobbyForm: form,
		spinner:   s,
	}
}

// Init implements tea.Model.
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m WizardModel) Update(msg tea.Msg) (WizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case msgs.WizardUpdatedMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.snap.Step {
		case wizard.StepHobbySuggestion:
			return m.handleSuggestionKeys(msg)
		case wizard.StepHobbyCreation:
			return m.handleHobbyFormKeys(msg)
		default:
			return m.handleGoalFormKeys(msg)
		}
	}
	return m, nil
}

// refresh pulls the latest snapshot and keeps the cursor in range.
func (m *WizardModel) refresh() {
	prev := m.snap
	m.snap = m.ctrl.Snapshot()

	if m.snap.Step != prev.Step {
		m.cursor = 0
	}
	if m.cursor >= len(m.snap.Suggestions) {
		m.cursor = max(0, len(m.snap.Suggestions)-1)
	}
}

func (m WizardModel) handleGoalFormKeys(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.resetGoalForm()
		m.refresh()
		return m, func() tea.Msg { return msgs.GoToHomeMsg{} }

	case "tab", "down":
		m.focusGoalField((m.goalFocus + 1) % goalFieldCount)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focusGoalField((m.goalFocus + goalFieldCount - 1) % goalFieldCount)
		return m, textinput.Blink

	case "enter":
		return m.submitGoal()
	}

	if m.goalFocus == fieldUnit {
		switch msg.String() {
		case "left", "h":
			m.unit = m.unit.Prev()
		case "right", "l", " ":
			m.unit = m.unit.Next()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.goalFocus == fieldSteps {
		m.steps, cmd = m.steps.Update(msg)
	} else {
		m.objective, cmd = m.objective.Update(msg)
	}
	return m, cmd
}

func (m WizardModel) submitGoal() (WizardModel, tea.Cmd) {
	// Enter is disabled until the form is complete.
	if !m.goalReady() {
		return m, nil
	}
	steps, _ := m.parsedSteps()

	if err := m.ctrl.SubmitGoalDraft(m.objective.Value(), m.unit, steps); err != nil {
		m.errorMsg = describeError(err)
		return m, nil
	}

	m.errorMsg = ""
	m.notice = ""
	m.resetGoalForm()
	m.refresh()
	return m, m.spinner.Tick
}

func (m WizardModel) handleSuggestionKeys(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.errorMsg = ""
		m.refresh()
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.snap.Suggestions)-1 {
			m.cursor++
		}

	case "n":
		if err := m.ctrl.RequestNewHobby(); err != nil {
			m.errorMsg = describeError(err)
			return m, nil
		}
		m.errorMsg = ""
		m.focusHobbyField(fieldTitle)
		m.refresh()
		return m, textinput.Blink

	case "r":
		if m.snap.Draft == nil {
			return m, nil
		}
		d := *m.snap.Draft
		if err := m.ctrl.SubmitGoalDraft(d.Objective, d.Unit, d.Steps); err != nil {
			m.errorMsg = describeError(err)
			return m, nil
		}
		m.refresh()
		return m, m.spinner.Tick

	case "enter":
		if m.snap.Loading || len(m.snap.Suggestions) == 0 {
			return m, nil
		}
		picked := m.snap.Suggestions[m.cursor]
		objective := m.snap.Draft.Objective
		if err := m.ctrl.SelectSuggestedHobby(picked); err != nil {
			m.errorMsg = describeError(err)
			return m, nil
		}
		m.errorMsg = ""
		m.notice = fmt.Sprintf("Added %q to %s", objective, picked.Title)
		m.refresh()
		m.focusGoalField(fieldObjective)
		return m, textinput.Blink
	}
	return m, nil
}

func (m WizardModel) handleHobbyFormKeys(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.ctrl.BackToSuggestions(); err != nil {
			m.errorMsg = describeError(err)
			return m, nil
		}
		m.errorMsg = ""
		m.resetHobbyForm()
		m.refresh()
		return m, nil

	case "tab", "down":
		m.focusHobbyField((m.hobbyFocus + 1) % hobbyFieldCount)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focusHobbyField((m.hobbyFocus + hobbyFieldCount - 1) % hobbyFieldCount)
		return m, textinput.Blink

	case "enter":
		if !m.hobbyReady() {
			return m, nil
		}
		title := m.hobbyForm[fieldTitle].Value()
		objective := ""
		if m.snap.Draft != nil {
			objective = m.snap.Draft.Objective
		}
		err := m.ctrl.SubmitNewHobby(title, m.hobbyForm[fieldCategory].Value(), m.hobbyForm[fieldDescription].Value())
		if err != nil {
			m.errorMsg = describeError(err)
			return m, nil
		}
		m.errorMsg = ""
		m.notice = fmt.Sprintf("Created %s with goal %q", strings.TrimSpace(title), objective)
		m.resetHobbyForm()
		m.refresh()
		m.focusGoalField(fieldObjective)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.hobbyForm[m.hobbyFocus], cmd = m.hobbyForm[m.hobbyFocus].Update(msg)
	return m, cmd
}

func (m *WizardModel) focusGoalField(field int) {
	m.goalFocus = field
	m.objective.Blur()
	m.steps.Blur()
	switch field {
	case fieldObjective:
		m.objective.Focus()
	case fieldSteps:
		m.steps.Focus()
	}
}

func (m *WizardModel) focusHobbyField(field int) {
	m.hobbyFocus = field
	for i := range m.hobbyForm {
		if i == field {
			m.hobbyForm[i].Focus()
		} else {
			m.hobbyForm[i].Blur()
		}
	}
}

func (m *WizardModel) resetGoalForm() {
	m.objective.SetValue("")
	m.steps.SetValue("")
	m.unit = hobby.PeriodWeek
	m.focusGoalField(fieldObjective)
}

func (m *WizardModel) resetHobbyForm() {
	for i := range m.hobbyForm {
		m.hobbyForm[i].SetValue("")
	}
	m.focusHobbyField(fieldTitle)
}

// goalReady reports whether the goal form can be submitted: an objective is
// written and steps, when given, is a whole number of zero or more.
func (m WizardModel) goalReady() bool {
	if strings.TrimSpace(m.objective.Value()) == "" {
		return false
	}
	_, ok := m.parsedSteps()
	return ok
}

// parsedSteps reads the steps field. Blank means 0, which the draft turns into 1.
func (m WizardModel) parsedSteps() (int, bool) {
	raw := strings.TrimSpace(m.steps.Value())
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil && n >= 0
}

func (m WizardModel) hobbyReady() bool {
	return strings.TrimSpace(m.hobbyForm[fieldTitle].Value()) != ""
}

// submitHint greys out the enter hint while its action is disabled.
func submitHint(label string, enabled bool) string {
	if enabled {
		return label
	}
	return styles.DisabledStyle.Render(label)
}

// describeError turns controller failures into banner messages. Incomplete
// forms never get here: their submit key is disabled instead.
func describeError(err error) string {
	switch {
	case errors.Is(err, wizard.ErrNoDraft):
		return "Write a goal first"
	case errors.Is(err, wizard.ErrNoGoals):
		return "This hobby has no goals yet"
	case errors.Is(err, wizard.ErrClosed):
		return "The wizard has shut down"
	default:
		return err.Error()
	}
}

// View implements tea.Model.
func (m WizardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	var hints []string
	switch m.snap.Step {
	case wizard.StepHobbySuggestion:
		body = m.renderSuggestions()
		hints = []string{"↑↓ Navigate", "Enter Pick", "n New hobby", "r Refresh", "Esc Start over"}
	case wizard.StepHobbyCreation:
		body = m.renderHobbyForm()
		hints = []string{"Tab Next field", submitHint("Enter Create", m.hobbyReady()), "Esc Back"}
	default:
		body = m.renderGoalForm()
		hints = []string{"Tab Next field", "←→ Unit", submitHint("Enter Continue", m.goalReady()), "Esc Home"}
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(stepTitle(m.snap.Step)))
	b.WriteString("\n")
	b.WriteString(body)

	if m.errorMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
	} else if m.notice != "" && m.snap.Step == wizard.StepGoalCreation {
		b.WriteString("\n\n")
		b.WriteString(styles.SuccessStyle.Render(m.notice))
	}

	content := b.String()
	contentHeight := lipgloss.Height(content)
	padding := max(0, m.height-1-contentHeight)

	return content + strings.Repeat("\n", padding) + "\n" + components.NewStatusBar().Render(m.width, hints)
}

func stepTitle(step wizard.Step) string {
	switch step {
	case wizard.StepHobbySuggestion:
		return components.NewStepIndicator(2, 2, "Pick a hobby").View()
	case wizard.StepHobbyCreation:
		return components.NewStepIndicator(2, 2, "New hobby").View()
	default:
		return components.NewStepIndicator(1, 2, "Your goal").View()
	}
}

func (m WizardModel) renderGoalForm() string {
	var units []string
	for _, u := range hobby.GoalUnits {
		if u == m.unit {
			units = append(units, styles.SelectedStyle.Render("["+string(u)+"]"))
		} else {
			units = append(units, styles.SubtleStyle.Render(" "+string(u)+" "))
		}
	}

	lines := []string{
		m.fieldLine("Objective", m.goalFocus == fieldObjective, m.objective.View()),
		m.fieldLine("Per", m.goalFocus == fieldUnit, strings.Join(units, " ")),
		m.fieldLine("Steps", m.goalFocus == fieldSteps, m.steps.View()),
	}
	return strings.Join(lines, "\n")
}

func (m WizardModel) renderSuggestions() string {
	var b strings.Builder
	b.WriteString(m.renderDraft())
	b.WriteString("\n\n")

	switch {
	case m.snap.Loading:
		b.WriteString(m.spinner.View() + " Looking for hobbies...")
	case len(m.snap.Suggestions) == 0:
		b.WriteString(styles.SubtleStyle.Render("No suggestions. Press n to create a hobby."))
	default:
		for i, h := range m.snap.Suggestions {
			if i == m.cursor {
				b.WriteString(styles.SelectedStyle.Render("> " + h.Title))
			} else {
				b.WriteString("  " + h.Title)
			}
			if h.Category != "" {
				b.WriteString("  " + styles.SubtleStyle.Render(h.Category))
			}
			if i < len(m.snap.Suggestions)-1 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m WizardModel) renderHobbyForm() string {
	lines := []string{
		m.renderDraft(),
		"",
		m.fieldLine("Title", m.hobbyFocus == fieldTitle, m.hobbyForm[fieldTitle].View()),
		m.fieldLine("Category", m.hobbyFocus == fieldCategory, m.hobbyForm[fieldCategory].View()),
		m.fieldLine("Description", m.hobbyFocus == fieldDescription, m.hobbyForm[fieldDescription].View()),
	}
	return strings.Join(lines, "\n")
}

func (m WizardModel) renderDraft() string {
	if m.snap.Draft == nil {
		return ""
	}
	d := m.snap.Draft
	return styles.SubtleStyle.Render("Goal: ") + fmt.Sprintf("%s · %d per %s", d.Objective, d.Steps, strings.ToLower(string(d.Unit)))
}

func (m WizardModel) fieldLine(label string, focused bool, value string) string {
	marker := "  "
	if focused {
		marker = styles.SelectedStyle.Render("> ")
	}
	return marker + styles.LabelStyle.Render(label) + value
}

// SetSize updates the model dimensions.
func (m *WizardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Snapshot returns the controller state the view last rendered.
func (m WizardModel) Snapshot() wizard.Snapshot {
	return m.snap
}

// Error returns the current form error.
func (m WizardModel) Error() string {
	return m.errorMsg
}
