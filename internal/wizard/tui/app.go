package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/skyreg/internal/registration"
	"github.com/muurk/skyreg/internal/wizard"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenForm    Screen = "form"
	ScreenSuccess Screen = "success"
	ScreenFailure Screen = "failure"
)

// successKeyMap defines key bindings for the success screen
type successKeyMap struct {
	Again key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k successKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Again, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k successKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Again, k.Quit},
	}
}

// failureKeyMap defines key bindings for the failure screen
type failureKeyMap struct {
	Retry key.Binding
	Edit  key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k failureKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Edit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k failureKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Retry, k.Edit, k.Quit},
	}
}

// Options configures the wizard application
type Options struct {
	Submitter       wizard.Submitter
	Countries       []string
	TransitionDelay time.Duration              // 0 switches steps immediately
	Answers         *registration.Registration // Optional values to start from
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen Screen

	// Screen models
	Form FormModel

	// Shared application state
	Controller   *wizard.Controller
	Confirmation *wizard.Confirmation
	LastError    error

	// UI state
	Width  int
	Height int

	// Help
	Help        help.Model
	SuccessKeys successKeyMap
	FailureKeys failureKeyMap
}

// NewAppModel creates the wizard application starting on step 1
func NewAppModel(opts Options) AppModel {
	c := wizard.New(wizard.WithAnimation(opts.TransitionDelay > 0))
	if opts.Answers != nil {
		c.Store().Load(*opts.Answers)
	}

	submitter := opts.Submitter
	if submitter == nil {
		submitter = wizard.NewSimulatedSubmitter()
	}

	return AppModel{
		CurrentScreen: ScreenForm,
		Form:          NewFormModel(c, submitter, opts.Countries, opts.TransitionDelay),
		Controller:    c,
		Help:          help.New(),
		SuccessKeys: successKeyMap{
			Again: key.NewBinding(
				key.WithKeys("enter", "n"),
				key.WithHelp("enter/n", "register another account"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
		FailureKeys: failureKeyMap{
			Retry: key.NewBinding(
				key.WithKeys("r", "enter"),
				key.WithHelp("r", "retry"),
			),
			Edit: key.NewBinding(
				key.WithKeys("e"),
				key.WithHelp("e", "edit details"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.Form.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Form.Width = msg.Width
		m.Form.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.CurrentScreen {
	case ScreenSuccess:
		return m.handleSuccessScreen(msg)
	case ScreenFailure:
		return m.handleFailureScreen(msg)
	}

	return m.updateForm(msg)
}

// updateForm routes to the form and follows its outcome flags
func (m AppModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.Form.Update(msg)
	m.Form = updated.(FormModel)

	switch {
	case m.Form.QuitRequested:
		return m, tea.Quit

	case m.Form.Submitted:
		m.Form.Submitted = false
		if conf, ok := m.Controller.Confirmation(); ok {
			m.Confirmation = &conf
		}
		m.CurrentScreen = ScreenSuccess

	case m.Form.SubmitErr != nil:
		m.LastError = m.Form.SubmitErr
		m.Form.SubmitErr = nil
		m.CurrentScreen = ScreenFailure
	}

	return m, cmd
}

// handleSuccessScreen handles user input on the success screen
func (m AppModel) handleSuccessScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.SuccessKeys.Again):
		if err := m.Controller.StartOver(); err != nil {
			m.LastError = err
			return m, nil
		}
		m.Confirmation = nil
		m.Form.Reset()
		m.CurrentScreen = ScreenForm
		return m, m.Form.Init()

	case key.Matches(keyMsg, m.SuccessKeys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// handleFailureScreen handles user input on the failure screen. The form is
// untouched after a failed submission, so both retry and edit return to it.
func (m AppModel) handleFailureScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.FailureKeys.Retry):
		m.CurrentScreen = ScreenForm
		updated, cmd := m.Form.submit()
		m.Form = updated.(FormModel)
		return m, cmd

	case key.Matches(keyMsg, m.FailureKeys.Edit):
		m.CurrentScreen = ScreenForm
		return m, nil

	case key.Matches(keyMsg, m.FailureKeys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenForm:
		return m.Form.View()
	case ScreenSuccess:
		return RenderApplicationContainer(m.buildSuccessContent(), m.Help.View(m.SuccessKeys), m.Width, m.Height)
	case ScreenFailure:
		return RenderApplicationContainer(m.buildFailureContent(), m.Help.View(m.FailureKeys), m.Width, m.Height)
	default:
		return "Unknown screen"
	}
}

// buildSuccessContent builds the success screen content
func (m AppModel) buildSuccessContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✓ Registration Complete!"))
	b.WriteString("\n")
	b.WriteString("Thank you for registering. We've sent a confirmation email to your registered email address.\n\n")

	if m.Confirmation != nil {
		b.WriteString(SuccessBoxStyle.Render("Confirmation reference: " + m.Confirmation.Reference))
		b.WriteString("\n")
		b.WriteString(RenderSubtitle(m.Confirmation.Registration.Summary()))
		b.WriteString("\n\n")
	}

	b.WriteString("What's Next?\n")
	for _, next := range []string{
		"Check your email for confirmation details",
		"Complete your profile in the member portal",
		"Start browsing available flights",
		"Enjoy exclusive member benefits",
	} {
		b.WriteString(MenuItemStyle.Render("✓ " + next))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(MenuItemStyle.Render("  Enter/n - Register Another Account"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  q       - Exit application"))
	b.WriteString("\n")

	return b.String()
}

// buildFailureContent builds the failure screen content
func (m AppModel) buildFailureContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✗ Registration Not Submitted"))
	b.WriteString("\n\n")

	if m.LastError != nil {
		b.WriteString(ErrorBoxStyle.Render(wizard.GetShortErrorMessage(m.LastError)))
		b.WriteString("\n\n")
		b.WriteString(RenderSubtitle(fmt.Sprintf("Details: %v", m.LastError)))
		b.WriteString("\n\n")
	}

	b.WriteString("Your details are kept. What would you like to do?\n\n")

	b.WriteString(MenuItemStyle.Render("  r - Retry the submission"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  e - Review and edit your details"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  q - Exit application"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the wizard in the alternate screen and blocks until it exits
func Run(opts Options) (AppModel, error) {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return AppModel{}, err
	}
	return final.(AppModel), nil
}
