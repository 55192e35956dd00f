package executor

import (
	"fmt"
	"time"

	"github.com/estudosdevops/argo-manager/internal/registry"
)

// Status represents the state of one invocation's lifecycle:
// Pending -> Running -> exactly one terminal state.
// Go doesn't have native enums, we use typed constants + iota.
type Status int

const (
	// StatusPending invocation not yet started
	StatusPending Status = iota

	// StatusRunning invocation in progress
	StatusRunning

	// StatusSucceeded process ran and exited zero
	StatusSucceeded

	// StatusFailed process ran and exited non-zero
	StatusFailed

	// StatusTimedOut process exceeded its deadline and was killed
	StatusTimedOut

	// StatusSpawnError process could not be started (binary missing, permissions)
	StatusSpawnError

	// StatusCancelled invocation cancelled before or while running (Ctrl+C)
	StatusCancelled
)

// String returns readable representation of the status.
// Implements Stringer interface.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusRunning:
		return "RUNNING"
	case StatusSucceeded:
		return "SUCCEEDED"
	case StatusFailed:
		return "FAILED"
	case StatusTimedOut:
		return "TIMEOUT"
	case StatusSpawnError:
		return "SPAWN_ERROR"
	case StatusCancelled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the status is one of the mutually exclusive
// end states.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusSpawnError, StatusCancelled:
		return true
	default:
		return false
	}
}

// Outcome is the recorded result of one invocation against one cluster.
// Created by the dispatcher, read-only afterwards.
type Outcome struct {
	Cluster   registry.ClusterContext
	Status    Status
	ExitCode  int // -1 when the process never ran
	Stdout    string
	Stderr    string
	Err       error // spawn/timeout/cancel cause, nil for plain non-zero exits
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Succeeded returns true if the invocation completed with exit code zero.
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// String returns readable representation of the outcome.
func (o *Outcome) String() string {
	return fmt.Sprintf("[%s] %s - %s", o.Status, o.Cluster.Name, o.Duration)
}
