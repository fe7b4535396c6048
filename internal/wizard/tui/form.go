package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/skyreg/internal/registration"
	"github.com/muurk/skyreg/internal/wizard"
)

// settleMsg ends a step transition once the delay has elapsed
type settleMsg struct{}

// submitResultMsg carries the submitter's answer back to the event loop
type submitResultMsg struct {
	conf wizard.Confirmation
	err  error
}

// formKeyMap defines key bindings for the step screens
type formKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	OptionPrev key.Binding
	OptionNext key.Binding
	Toggle     key.Binding
	Next       key.Binding
	Back       key.Binding
	Submit     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.OptionNext, k.Toggle, k.Next, k.Back, k.Submit, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.OptionPrev, k.OptionNext, k.Toggle},
		{k.Next, k.Back, k.Submit},
		{k.Help, k.Quit},
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑/shift+tab", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓/tab", "next field"),
		),
		OptionPrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous option"),
		),
		OptionNext: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "choose"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n", "pgdown"),
			key.WithHelp("ctrl+n", "next step"),
		),
		Back: key.NewBinding(
			key.WithKeys("ctrl+b", "pgup"),
			key.WithHelp("ctrl+b", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// FormModel is the step-by-step registration screen. The controller owns
// all form state; the model only keeps text input buffers and the cursor.
type FormModel struct {
	Controller      *wizard.Controller
	Submitter       wizard.Submitter
	Countries       []string
	TransitionDelay time.Duration

	// UI state
	Width       int
	Height      int
	Cursor      int // Index of the focused field within the current step
	Inputs      map[string]textinput.Model
	Spinner     spinner.Model
	ProgressBar progress.Model
	Status      string // Short message from the last refused action
	ShowingHelp bool

	// Results read by AppModel
	Submitted     bool
	SubmitErr     error
	QuitRequested bool

	Help help.Model
	Keys formKeyMap
}

// NewFormModel creates the step screen for a controller
func NewFormModel(c *wizard.Controller, submitter wizard.Submitter, countries []string, transitionDelay time.Duration) FormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	if len(countries) == 0 {
		countries = registration.DefaultCountries
	}

	m := FormModel{
		Controller:      c,
		Submitter:       submitter,
		Countries:       countries,
		TransitionDelay: transitionDelay,
		Inputs:          make(map[string]textinput.Model),
		Spinner:         s,
		ProgressBar:     progressBar,
		Help:            help.New(),
		Keys:            newFormKeyMap(),
	}

	for _, spec := range c.Store().Schema().Fields() {
		if !isTextInput(spec.Name, spec.Kind.String()) {
			continue
		}
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = spec.SoftLimit
		ti.Width = 40
		m.Inputs[spec.Name] = ti
	}
	m.syncInputs()
	m.focusCurrent()

	return m
}

// isTextInput reports whether a field is edited through a text input.
// Country is free text in the schema but offered as a select list.
func isTextInput(name, kind string) bool {
	return kind == registration.KindText.String() && name != registration.FieldCountry
}

// Init initializes the form
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case settleMsg:
		if m.Controller.Settle() {
			m.onStepChanged()
		}
		return m, nil

	case submitResultMsg:
		return m.finishSubmit(msg)

	case spinner.TickMsg:
		// Keep ticking only while a submission is in flight
		if m.Controller.Phase() != wizard.PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.ShowingHelp {
			// Any key closes the help modal
			m.ShowingHelp = false
			return m, nil
		}
		if m.Controller.Phase() == wizard.PhaseSubmitting {
			// Non-interactive until the submitter answers
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press to navigation or to the focused field
func (m FormModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.Controller.CurrentStep().Fields

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.QuitRequested = true
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.ShowingHelp = true
		return m, nil
	case key.Matches(msg, m.Keys.Next):
		return m.advance()
	case key.Matches(msg, m.Keys.Back):
		return m.retreat()
	case key.Matches(msg, m.Keys.Submit):
		return m.submit()
	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
		return m, nil
	case msg.Type == tea.KeyEnter:
		// Enter walks the fields, then leaves the step
		if m.Cursor < len(fields)-1 {
			m.moveCursor(1)
			return m, nil
		}
		if m.Controller.IsLastStep() {
			return m.submit()
		}
		return m.advance()
	}

	name := m.focusedField()
	if name == "" {
		return m, nil
	}
	spec, _ := m.Controller.Store().Schema().Lookup(name)

	switch {
	case spec.Kind == registration.KindBool:
		if key.Matches(msg, m.Keys.Toggle) {
			v, _ := m.Controller.Store().Get(name)
			m.edit(name, registration.Bool(!v.Bool()))
		}
		return m, nil

	case !isTextInput(name, spec.Kind.String()):
		switch {
		case key.Matches(msg, m.Keys.OptionPrev):
			m.cycle(name, spec, -1)
		case key.Matches(msg, m.Keys.OptionNext):
			m.cycle(name, spec, 1)
		}
		return m, nil
	}

	ti := m.Inputs[name]
	before := ti.Value()
	ti, cmd := ti.Update(msg)
	m.Inputs[name] = ti
	if ti.Value() != before {
		if err := m.Controller.EditText(name, ti.Value()); err != nil {
			m.Status = wizard.GetShortErrorMessage(err)
		}
	}
	return m, cmd
}

// edit applies a value and surfaces refusals in the status line
func (m *FormModel) edit(name string, v registration.Value) {
	if err := m.Controller.Edit(name, v); err != nil {
		m.Status = wizard.GetShortErrorMessage(err)
	}
}

// cycle moves a select field to the previous or next option. An empty
// country selects the first (or last) entry.
func (m *FormModel) cycle(name string, spec registration.FieldSpec, dir int) {
	options := spec.Options
	if name == registration.FieldCountry {
		options = m.Countries
	}
	if len(options) == 0 {
		return
	}

	v, _ := m.Controller.Store().Get(name)
	idx := -1
	for i, o := range options {
		if o == v.Text() {
			idx = i
			break
		}
	}

	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(options) - 1
	default:
		idx = (idx + dir + len(options)) % len(options)
	}

	if spec.Kind == registration.KindEnum {
		m.edit(name, registration.Enum(options[idx]))
	} else {
		m.edit(name, registration.Text(options[idx]))
	}
}

func (m FormModel) advance() (tea.Model, tea.Cmd) {
	res, err := m.Controller.Advance()
	switch res {
	case wizard.NavBlocked:
		m.Status = wizard.GetShortErrorMessage(err)
		m.focusFirstError()
	case wizard.NavMoved:
		m.Status = ""
		if m.Controller.Phase() == wizard.PhaseTransitioning {
			return m, settleAfter(m.TransitionDelay)
		}
		m.onStepChanged()
	case wizard.NavAtBoundary:
		m.Status = "Review your details, then press ctrl+s to submit"
	}
	return m, nil
}

func (m FormModel) retreat() (tea.Model, tea.Cmd) {
	res, _ := m.Controller.Retreat()
	if res == wizard.NavMoved {
		m.Status = ""
		if m.Controller.Phase() == wizard.PhaseTransitioning {
			return m, settleAfter(m.TransitionDelay)
		}
		m.onStepChanged()
	}
	return m, nil
}

// submit starts a submission. The submitter runs as a command so the
// spinner keeps animating; the result arrives as a submitResultMsg.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	payload, err := m.Controller.BeginSubmit()
	if err != nil {
		m.Status = wizard.GetShortErrorMessage(err)
		m.focusFirstError()
		return m, nil
	}

	m.Status = ""
	m.SubmitErr = nil
	return m, tea.Batch(m.Spinner.Tick, submitCmd(m.Submitter, payload))
}

func (m FormModel) finishSubmit(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if err := m.Controller.CompleteSubmit(msg.conf, msg.err); err != nil {
		m.SubmitErr = err
		return m, nil
	}
	m.Submitted = true
	return m, nil
}

// settleAfter schedules the end of a step transition
func settleAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return settleMsg{} })
}

// submitCmd runs the submitter off the event loop
func submitCmd(s wizard.Submitter, payload registration.Registration) tea.Cmd {
	return func() tea.Msg {
		conf, err := s.Submit(context.Background(), payload)
		return submitResultMsg{conf: conf, err: err}
	}
}

// Reset clears UI state after the controller started over
func (m *FormModel) Reset() {
	m.Cursor = 0
	m.Status = ""
	m.Submitted = false
	m.SubmitErr = nil
	m.syncInputs()
	m.focusCurrent()
}

func (m *FormModel) onStepChanged() {
	m.Cursor = 0
	m.focusCurrent()
}

// syncInputs copies store values into the text input buffers
func (m *FormModel) syncInputs() {
	for name, ti := range m.Inputs {
		v, _ := m.Controller.Store().Get(name)
		ti.SetValue(v.Text())
		m.Inputs[name] = ti
	}
}

func (m *FormModel) moveCursor(delta int) {
	n := len(m.Controller.CurrentStep().Fields)
	if n == 0 {
		return
	}
	m.Cursor = (m.Cursor + delta + n) % n
	m.focusCurrent()
}

// focusFirstError moves the cursor to the first failing field of the step
func (m *FormModel) focusFirstError() {
	for i, name := range m.Controller.CurrentStep().Fields {
		if m.Controller.Store().Error(name) != "" {
			m.Cursor = i
			break
		}
	}
	m.focusCurrent()
}

func (m FormModel) focusedField() string {
	fields := m.Controller.CurrentStep().Fields
	if m.Cursor < 0 || m.Cursor >= len(fields) {
		return ""
	}
	return fields[m.Cursor]
}

// focusCurrent focuses the input under the cursor and blurs the rest
func (m *FormModel) focusCurrent() {
	focused := m.focusedField()
	for name, ti := range m.Inputs {
		if name == focused {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.Inputs[name] = ti
	}
}

// View renders the current step
func (m FormModel) View() string {
	if m.ShowingHelp {
		modal := CardStyle.Padding(1, 2).Render(
			RenderTitle("Keyboard Shortcuts") + "\n" + m.Help.FullHelpView(m.Keys.FullHelp()),
		)
		return RenderModal(modal, m.Width, m.Height)
	}

	return RenderApplicationContainer(m.buildContent(), m.Help.View(m.Keys), m.Width, m.Height)
}

func (m FormModel) buildContent() string {
	snap := m.Controller.Snapshot()

	parts := []string{
		"",
		RenderStepIndicator(snap.Steps),
		m.ProgressBar.ViewAs(snap.Progress),
		RenderTitle(fmt.Sprintf("Step %d of %d: %s", snap.Step, snap.TotalSteps, snap.Title)),
		RenderSubtitle(snap.Description),
		"",
	}

	if snap.Phase == wizard.PhaseTransitioning.String() {
		parts = append(parts, RenderSubtitle("…"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if snap.Review != nil {
		parts = append(parts, renderReview(*snap.Review, m.Width))
	}

	for i, fv := range snap.Fields {
		parts = append(parts, m.renderField(i, fv))
	}

	if snap.IsLastStep {
		parts = append(parts, "", m.renderSubmitButton(snap))
	}

	if m.Status != "" {
		parts = append(parts, "", WarningBoxStyle.Render("⚠ "+m.Status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderField renders one field line and, below it, its error
func (m FormModel) renderField(idx int, fv wizard.FieldView) string {
	selected := idx == m.Cursor

	labelStyle := lipgloss.NewStyle().Width(LabelWidth).Foreground(SubtleColor)
	valueStyle := lipgloss.NewStyle()
	if selected {
		labelStyle = labelStyle.Foreground(HighlightColor).Bold(true)
		valueStyle = valueStyle.Foreground(HighlightColor).Bold(true)
	}

	arrow := "  "
	if selected {
		arrow = "→ "
	}

	label := fv.Label
	if fv.Required && fv.Kind != registration.KindBool.String() {
		label += " *"
	}

	var value string
	switch {
	case fv.Kind == registration.KindBool.String():
		box := "[ ]"
		if b, _ := fv.Value.(bool); b {
			box = "[x]"
		}
		value = valueStyle.Render(box)

	case isTextInput(fv.Name, fv.Kind):
		value = m.Inputs[fv.Name].View()
		if fv.SoftLimit > 0 {
			value += SubtitleStyle.Render(fmt.Sprintf("  %d/%d", len([]rune(m.Inputs[fv.Name].Value())), fv.SoftLimit))
		}

	default:
		shown := fv.Display
		if shown == "" {
			shown = SubtitleStyle.Render(fv.Placeholder)
		}
		value = valueStyle.Render("‹ " + shown + " ›")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left, arrow, labelStyle.Render(label), value)
	if fv.Error != "" {
		line += "\n" + strings.Repeat(" ", 2+LabelWidth) + FieldErrorStyle.Render(fv.Error)
	}
	return line
}

func (m FormModel) renderSubmitButton(snap wizard.Snapshot) string {
	if snap.Phase == wizard.PhaseSubmitting.String() {
		return ButtonStyle.Render(m.Spinner.View() + " " + snap.SubmitLabel)
	}
	if !snap.CanSubmit {
		return DisabledButtonStyle.Render(snap.SubmitLabel + " (accept the terms first)")
	}
	return ButtonStyle.Render(snap.SubmitLabel)
}

// renderReview renders the summary cards shown on the final step
func renderReview(r registration.Registration, width int) string {
	personal := RenderCard("Personal Information", [][2]string{
		{"Name", r.FullName()},
		{"Date of Birth", r.DateOfBirth},
		{"Gender", registration.FormatValue(registration.FieldGender, string(r.Gender))},
	}, width)

	contact := RenderCard("Contact Details", [][2]string{
		{"Email", r.Email},
		{"Phone", r.Phone},
		{"Address", r.Address},
		{"Location", r.City + ", " + r.Country},
	}, width)

	travelRows := [][2]string{
		{"Travel Class", registration.FormatValue(registration.FieldTravelClass, string(r.TravelClass))},
		{"Seat", registration.FormatValue(registration.FieldSeatPreference, string(r.SeatPreference))},
		{"Meal", registration.FormatValue(registration.FieldMealPreference, string(r.MealPreference))},
	}
	if r.SpecialRequests != "" {
		travelRows = append(travelRows, [2]string{"Special Requests", r.SpecialRequests})
	}
	travel := RenderCard("Travel Preferences", travelRows, width)

	return lipgloss.JoinVertical(lipgloss.Left, personal, contact, travel)
}
