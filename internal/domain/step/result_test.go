package step

import (
	"errors"
	"testing"
	"time"
)

func TestResultAccessors(t *testing.T) {
	id := MustNewID("apt:package:vim")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r := NewResult(id, StatusSucceeded, "", at)
	if !r.StepID().Equals(id) {
		t.Errorf("StepID() = %q", r.StepID())
	}
	if r.Status() != StatusSucceeded {
		t.Errorf("Status() = %q", r.Status())
	}
	if !r.Timestamp().Equal(at) {
		t.Errorf("Timestamp() = %v", r.Timestamp())
	}
	if r.Failed() {
		t.Error("succeeded result should not report Failed")
	}
}

func TestResultWithErrAndDuration(t *testing.T) {
	id := MustNewID("apt:update")
	cause := errors.New("boom")

	r := NewResult(id, StatusFailed, "apply failed", time.Now()).
		WithErr(cause).
		WithDuration(3 * time.Second)

	if !r.Failed() {
		t.Error("failed result should report Failed")
	}
	if !errors.Is(r.Err(), cause) {
		t.Errorf("Err() = %v", r.Err())
	}
	if r.Duration() != 3*time.Second {
		t.Errorf("Duration() = %v", r.Duration())
	}
	if r.Detail() != "apply failed" {
		t.Errorf("Detail() = %q", r.Detail())
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"succeeded": StatusSucceeded,
		"failed":    StatusFailed,
		"skipped":   StatusSkipped,
		"pending":   StatusPending,
		"garbage":   StatusPending,
		"":          StatusPending,
	}
	for in, want := range cases {
		if got := ParseStatus(in); got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Error("pending should not be terminal")
	}
	for _, s := range []Status{StatusSucceeded, StatusFailed, StatusSkipped} {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
}

func TestExecutionError(t *testing.T) {
	cause := errors.New("dpkg lock held")
	execErr := &ExecutionError{
		StepID: MustNewID("apt:package:vim"),
		Phase:  "apply",
		Err:    cause,
	}

	if !errors.Is(execErr, cause) {
		t.Error("ExecutionError should unwrap to its cause")
	}
	msg := execErr.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
}
