package resume

import (
	"errors"
	"strings"
	"testing"
)

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&PersistenceError{Op: OpWriteResume, Retryable: true, Cause: cause})

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PersistenceError, got=%T", err)
	}
	if !strings.Contains(err.Error(), "op=write_resume") {
		t.Fatalf("message: got=%q", err.Error())
	}
}

func TestMissingRequiredFieldErrorMessage(t *testing.T) {
	err := &MissingRequiredFieldError{Field: "email"}
	if got := err.Error(); got != "resume: missing required field: email" {
		t.Fatalf("Error: got=%q", got)
	}
}

func TestUnresolvableEntityWarningMessage(t *testing.T) {
	w := UnresolvableEntityWarning{Entity: EntityEducation, Index: 2, Reason: "missing university"}
	if got := w.Error(); got != "resume: skipped education[2]: missing university" {
		t.Fatalf("Error: got=%q", got)
	}
}
