package executor

import (
	"testing"
)

// TestStatusString verifies the wire names of every status.
func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusPending:    "PENDING",
		StatusRunning:    "RUNNING",
		StatusSucceeded:  "SUCCEEDED",
		StatusFailed:     "FAILED",
		StatusTimedOut:   "TIMEOUT",
		StatusSpawnError: "SPAWN_ERROR",
		StatusCancelled:  "CANCELED",
		Status(99):       "UNKNOWN",
	}

	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

// TestStatusTerminal verifies transient and terminal states are disjoint.
func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusSucceeded, StatusFailed, StatusTimedOut, StatusSpawnError, StatusCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	transient := []Status{StatusPending, StatusRunning}
	for _, s := range transient {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

// TestOutcomeSucceeded verifies only SUCCEEDED counts as success.
func TestOutcomeSucceeded(t *testing.T) {
	if !(&Outcome{Status: StatusSucceeded}).Succeeded() {
		t.Error("SUCCEEDED outcome should report success")
	}
	for _, s := range []Status{StatusFailed, StatusTimedOut, StatusSpawnError, StatusCancelled} {
		if (&Outcome{Status: s}).Succeeded() {
			t.Errorf("%s outcome should not report success", s)
		}
	}
}
