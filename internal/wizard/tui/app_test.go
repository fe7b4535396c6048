package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/skyreg/internal/registration"
	"github.com/muurk/skyreg/internal/wizard"
)

func completeAnswers() registration.Registration {
	r := registration.Registration{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
		Email:       "ada@example.com",
		Phone:       "+44 20 7946 0000",
		Address:     "12 St James's Square",
		City:        "London",
		Country:     "United Kingdom",
	}
	return r.WithDefaults()
}

func newTestApp(t *testing.T, answers *registration.Registration) AppModel {
	t.Helper()
	return NewAppModel(Options{Answers: answers})
}

// press feeds a key to the app and returns the updated model
func press(t *testing.T, m AppModel, k tea.KeyMsg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(k)
	return updated.(AppModel), cmd
}

var (
	keyNext   = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyBack   = tea.KeyMsg{Type: tea.KeyCtrlB}
	keySubmit = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown   = tea.KeyMsg{Type: tea.KeyDown}
	keyRight  = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft   = tea.KeyMsg{Type: tea.KeyLeft}
	keySpace  = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// toReview walks a fully answered app to the final step
func toReview(t *testing.T, m AppModel) AppModel {
	t.Helper()
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, keyNext)
	}
	if !m.Controller.IsLastStep() {
		t.Fatalf("Current() = %d, want final step; status %q", m.Controller.Current(), m.Form.Status)
	}
	return m
}

func TestApp_BlockedAdvance(t *testing.T) {
	m := newTestApp(t, nil)
	m.Form.Cursor = 2

	m, _ = press(t, m, keyNext)

	if got := m.Controller.Current(); got != 1 {
		t.Errorf("Current() = %d, want 1", got)
	}
	if m.Form.Status == "" {
		t.Error("Status is empty after a blocked advance")
	}
	if m.Form.Cursor != 0 {
		t.Errorf("Cursor = %d, want first failing field", m.Form.Cursor)
	}
	if m.Controller.Store().Error(registration.FieldFirstName) == "" {
		t.Error("first name has no error after a blocked advance")
	}
}

func TestApp_TypingEditsStore(t *testing.T) {
	m := newTestApp(t, nil)

	m, _ = press(t, m, runes("Ada"))

	v, _ := m.Controller.Store().Get(registration.FieldFirstName)
	if v.Text() != "Ada" {
		t.Errorf("firstName = %q, want %q", v.Text(), "Ada")
	}
}

func TestApp_CycleOptions(t *testing.T) {
	m := NewAppModel(Options{Countries: []string{"Canada", "France"}})

	// Gender is the fourth field of step 1 and defaults to the last option
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, keyDown)
	}
	m, _ = press(t, m, keyRight)
	v, _ := m.Controller.Store().Get(registration.FieldGender)
	if v.Text() != string(registration.GenderMale) {
		t.Errorf("gender after right = %q, want %q", v.Text(), registration.GenderMale)
	}

	m.Controller.Store().Load(completeAnswers())
	m, _ = press(t, m, keyNext)
	if m.Controller.Current() != 2 {
		t.Fatalf("Current() = %d, want 2", m.Controller.Current())
	}
	if err := m.Controller.Edit(registration.FieldCountry, registration.Text("")); err != nil {
		t.Fatal(err)
	}

	// Country is the fifth field of step 2
	for i := 0; i < 4; i++ {
		m, _ = press(t, m, keyDown)
	}
	m, _ = press(t, m, keyLeft)
	v, _ = m.Controller.Store().Get(registration.FieldCountry)
	if v.Text() != "France" {
		t.Errorf("country after left = %q, want %q", v.Text(), "France")
	}
	m, _ = press(t, m, keyRight)
	v, _ = m.Controller.Store().Get(registration.FieldCountry)
	if v.Text() != "Canada" {
		t.Errorf("country after right = %q, want %q", v.Text(), "Canada")
	}
}

func TestApp_SpaceTogglesTerms(t *testing.T) {
	answers := completeAnswers()
	m := toReview(t, newTestApp(t, &answers))

	if m.Controller.CanSubmit() {
		t.Fatal("CanSubmit() before accepting terms")
	}
	m, _ = press(t, m, keySpace)
	if !m.Controller.CanSubmit() {
		t.Error("CanSubmit() = false after toggling terms")
	}
	m, _ = press(t, m, keySpace)
	if m.Controller.CanSubmit() {
		t.Error("CanSubmit() = true after toggling terms off")
	}
}

func TestApp_SubmitWithoutTerms(t *testing.T) {
	answers := completeAnswers()
	m := toReview(t, newTestApp(t, &answers))

	m, cmd := press(t, m, keySubmit)
	if cmd != nil {
		t.Error("submit without terms returned a command")
	}
	if m.Controller.Phase() != wizard.PhaseIdle {
		t.Errorf("Phase() = %v, want idle", m.Controller.Phase())
	}
	if m.Form.Status == "" {
		t.Error("Status is empty after refused submit")
	}
}

func TestApp_SubmitSuccessAndStartOver(t *testing.T) {
	answers := completeAnswers()
	answers.TermsAccepted = true
	m := toReview(t, newTestApp(t, &answers))

	m, cmd := press(t, m, keySubmit)
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if m.Controller.Phase() != wizard.PhaseSubmitting {
		t.Fatalf("Phase() = %v, want submitting", m.Controller.Phase())
	}

	// Keys are ignored while the submission is in flight
	m, _ = press(t, m, keyBack)
	if !m.Controller.IsLastStep() {
		t.Error("retreat accepted while submitting")
	}

	updated, _ := m.Update(submitResultMsg{conf: wizard.Confirmation{Reference: "SKY-TEST0001"}})
	m = updated.(AppModel)

	if m.CurrentScreen != ScreenSuccess {
		t.Fatalf("CurrentScreen = %v, want success", m.CurrentScreen)
	}
	if m.Confirmation == nil || m.Confirmation.Reference != "SKY-TEST0001" {
		t.Errorf("Confirmation = %+v", m.Confirmation)
	}

	m, _ = press(t, m, keyEnter)
	if m.CurrentScreen != ScreenForm {
		t.Errorf("CurrentScreen = %v, want form", m.CurrentScreen)
	}
	if m.Controller.Current() != 1 || m.Controller.Phase() != wizard.PhaseIdle {
		t.Errorf("after start over: step %d phase %v", m.Controller.Current(), m.Controller.Phase())
	}
	v, _ := m.Controller.Store().Get(registration.FieldFirstName)
	if v.Text() != "" {
		t.Errorf("firstName after start over = %q", v.Text())
	}
	if m.Form.Inputs[registration.FieldFirstName].Value() != "" {
		t.Error("text input kept its value after start over")
	}
}

func TestApp_SubmitFailureKeepsValues(t *testing.T) {
	answers := completeAnswers()
	answers.TermsAccepted = true
	m := toReview(t, newTestApp(t, &answers))

	m, _ = press(t, m, keySubmit)
	updated, _ := m.Update(submitResultMsg{err: errors.New("gateway timeout")})
	m = updated.(AppModel)

	if m.CurrentScreen != ScreenFailure {
		t.Fatalf("CurrentScreen = %v, want failure", m.CurrentScreen)
	}
	if !wizard.IsSubmissionError(m.LastError) {
		t.Errorf("LastError = %v, want submission error", m.LastError)
	}

	m, _ = press(t, m, runes("e"))
	if m.CurrentScreen != ScreenForm || !m.Controller.IsLastStep() {
		t.Errorf("edit: screen %v step %d", m.CurrentScreen, m.Controller.Current())
	}
	if got := m.Controller.Store().Registration(); got.Email != answers.Email {
		t.Errorf("email after failure = %q, want %q", got.Email, answers.Email)
	}

	// Retry from the failure screen starts a new submission
	m.CurrentScreen = ScreenFailure
	m, cmd := press(t, m, runes("r"))
	if cmd == nil || m.Controller.Phase() != wizard.PhaseSubmitting {
		t.Errorf("retry: cmd %v phase %v", cmd != nil, m.Controller.Phase())
	}
}

func TestApp_TransitionSettles(t *testing.T) {
	answers := completeAnswers()
	m := NewAppModel(Options{TransitionDelay: 10 * time.Millisecond, Answers: &answers})

	m, cmd := press(t, m, keyNext)
	if cmd == nil {
		t.Fatal("animated advance returned no settle command")
	}
	if m.Controller.Phase() != wizard.PhaseTransitioning {
		t.Fatalf("Phase() = %v, want transitioning", m.Controller.Phase())
	}

	// A second advance during the transition is ignored
	m, _ = press(t, m, keyNext)

	updated, _ := m.Update(settleMsg{})
	m = updated.(AppModel)
	if m.Controller.Current() != 2 || m.Controller.Phase() != wizard.PhaseIdle {
		t.Errorf("after settle: step %d phase %v", m.Controller.Current(), m.Controller.Phase())
	}
}

func TestApp_QuitAndHelp(t *testing.T) {
	m := newTestApp(t, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.Form.ShowingHelp {
		t.Fatal("F1 did not open help")
	}
	m, _ = press(t, m, keyDown)
	if m.Form.ShowingHelp {
		t.Error("help still open after a key press")
	}

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
}

func TestApp_View(t *testing.T) {
	answers := completeAnswers()
	m := newTestApp(t, &answers)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(AppModel)

	if v := m.View(); v == "" {
		t.Error("View() is empty")
	}
	m = toReview(t, m)
	if v := m.View(); v == "" {
		t.Error("review View() is empty")
	}
}
