package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/skyreg/internal/registration"
)

func TestNew_InitialState(t *testing.T) {
	c := New(WithSessionID("test-session"))

	if c.Current() != 1 || c.Phase() != PhaseIdle {
		t.Errorf("initial state = step %d, %s; want step 1, idle", c.Current(), c.Phase())
	}
	if !c.IsFirstStep() || c.IsLastStep() {
		t.Error("step 1 should be first and not last")
	}
	if c.SessionID() != "test-session" {
		t.Errorf("SessionID() = %q", c.SessionID())
	}
	if c.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0", c.Progress())
	}
	if New().SessionID() == "" {
		t.Error("New() should generate a session id")
	}
}

// TestAdvance_BlockedByCurrentStep checks the step never changes while any
// field of the current step fails
func TestAdvance_BlockedByCurrentStep(t *testing.T) {
	c := New()

	res, err := c.Advance()
	if res != NavBlocked {
		t.Fatalf("Advance() = %v, want blocked", res)
	}
	if c.Current() != 1 {
		t.Fatalf("Current() = %d, want 1", c.Current())
	}

	var ve registration.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("Advance() error = %v, want ValidationErrors", err)
	}
	want := []string{registration.FieldDateOfBirth, registration.FieldFirstName, registration.FieldLastName}
	if diff := cmp.Diff(want, ve.Fields()); diff != "" {
		t.Errorf("blocking fields mismatch (-want +got):\n%s", diff)
	}
	if got := c.Store().Error(registration.FieldFirstName); got != "First name must be at least 2 characters" {
		t.Errorf("firstName error = %q", got)
	}

	// Fields of later steps are not validated yet.
	if got := c.Store().Error(registration.FieldEmail); got != "" {
		t.Errorf("email should not be validated on step 1, got %q", got)
	}
}

func TestAdvance_SingleInvalidField(t *testing.T) {
	c := New()
	completeStep(t, c, 1)
	_ = c.Edit(registration.FieldFirstName, registration.Text("A"))

	res, err := c.Advance()
	if res != NavBlocked || c.Current() != 1 {
		t.Fatalf("Advance() = %v at step %d, want blocked at 1", res, c.Current())
	}
	if got := GetShortErrorMessage(err); got != "First name must be at least 2 characters" {
		t.Errorf("GetShortErrorMessage() = %q", got)
	}

	_ = c.Edit(registration.FieldFirstName, registration.Text("Al"))
	if res, err := c.Advance(); res != NavMoved || err != nil {
		t.Fatalf("Advance() = %v, %v, want moved", res, err)
	}
	if c.Current() != 2 {
		t.Errorf("Current() = %d, want 2", c.Current())
	}
}

func TestRetreat(t *testing.T) {
	c := New()

	res, err := c.Retreat()
	if res != NavAtBoundary || err != nil || c.Current() != 1 {
		t.Fatalf("Retreat() at step 1 = %v, %v, step %d", res, err, c.Current())
	}

	completeStep(t, c, 1)
	c.Advance()

	// Retreat does not care that step 2 is empty.
	res, err = c.Retreat()
	if res != NavMoved || err != nil {
		t.Fatalf("Retreat() = %v, %v", res, err)
	}
	if c.Current() != 1 {
		t.Errorf("Current() = %d, want 1", c.Current())
	}
	if len(c.Store().Errors()) != 0 {
		t.Errorf("Retreat() should not validate, errors = %v", c.Store().Errors())
	}
}

func TestAdvance_FinalStepIsBoundary(t *testing.T) {
	c := New()
	walkToFinalStep(t, c)
	completeStep(t, c, 4)

	res, err := c.Advance()
	if res != NavAtBoundary || err != nil || c.Current() != 4 {
		t.Errorf("Advance() at final step = %v, %v, step %d", res, err, c.Current())
	}
}

// TestAnimation_DebouncesRapidAdvance checks two advances during one
// transition produce exactly one step change
func TestAnimation_DebouncesRapidAdvance(t *testing.T) {
	c := New(WithAnimation(true))
	completeStep(t, c, 1)
	completeStep(t, c, 2)

	first, err := c.Advance()
	if first != NavMoved || err != nil {
		t.Fatalf("first Advance() = %v, %v", first, err)
	}
	if c.Phase() != PhaseTransitioning || c.Current() != 1 {
		t.Fatalf("after first Advance(): phase %s step %d", c.Phase(), c.Current())
	}

	second, err := c.Advance()
	if second != NavIgnored || err != nil {
		t.Errorf("second Advance() = %v, %v, want ignored", second, err)
	}
	if res, _ := c.Retreat(); res != NavIgnored {
		t.Errorf("Retreat() during transition = %v, want ignored", res)
	}

	if !c.Settle() {
		t.Fatal("Settle() should commit the pending move")
	}
	if c.Current() != 2 || c.Phase() != PhaseIdle {
		t.Errorf("after Settle(): step %d phase %s, want 2 idle", c.Current(), c.Phase())
	}
	if c.Settle() {
		t.Error("second Settle() should be a no-op")
	}
}

func TestEdit_DuringTransitionAllowed(t *testing.T) {
	c := New(WithAnimation(true))
	completeStep(t, c, 1)
	c.Advance()

	if err := c.Edit(registration.FieldEmail, registration.Text("a@b.com")); err != nil {
		t.Errorf("Edit() during transition error = %v", err)
	}
}

func TestStepStatusesAndProgress(t *testing.T) {
	c := New()
	completeStep(t, c, 1)
	completeStep(t, c, 2)
	c.Advance()
	c.Advance()

	want := []StepStatus{StatusCompleted, StatusCompleted, StatusCurrent, StatusUpcoming}
	if diff := cmp.Diff(want, c.StepStatuses()); diff != "" {
		t.Errorf("StepStatuses() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Progress(); got < 0.666 || got > 0.667 {
		t.Errorf("Progress() = %v, want 2/3", got)
	}
}

func TestSnapshot(t *testing.T) {
	c := New(WithSessionID("snap"))
	c.Advance()

	snap := c.Snapshot()
	if snap.SessionID != "snap" || snap.Step != 1 || snap.TotalSteps != 4 || snap.Phase != "idle" {
		t.Errorf("Snapshot() header = %+v", snap)
	}
	if snap.Title != "Personal Info" || len(snap.Fields) != 4 {
		t.Errorf("Snapshot() step = %q with %d fields", snap.Title, len(snap.Fields))
	}
	if snap.Errors[registration.FieldLastName] == "" {
		t.Error("Snapshot() should carry the blocking errors")
	}
	if diff := cmp.Diff([]Action{ActionEdit, ActionAdvance}, snap.Actions); diff != "" {
		t.Errorf("Snapshot().Actions mismatch (-want +got):\n%s", diff)
	}
	if snap.Review != nil {
		t.Error("Review should only be set on the final step")
	}

	gender := snap.Fields[3]
	if gender.Name != registration.FieldGender || gender.Display != "Prefer Not To Say" || len(gender.Options) != 4 {
		t.Errorf("gender field view = %+v", gender)
	}
}
