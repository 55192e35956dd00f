// Package report merges per-cluster outcomes into a single ordered report
// with a derived overall status, and renders it for humans (table) and for
// scripts (stable JSON).
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estudosdevops/argo-manager/internal/executor"
)

// ErrClustersFailed is returned by Report.Err when at least one cluster's
// outcome is non-success. main maps it to the "partial failure" exit code.
var ErrClustersFailed = errors.New("one or more clusters failed")

// Exit codes for the process. Distinct codes let scripts tell
// "some clusters failed" from "the command itself was invalid".
const (
	ExitOK             = 0
	ExitInvocationErr  = 1
	ExitClustersFailed = 2
)

// OverallStatus is the derived status of a whole report.
type OverallStatus int

const (
	// OverallSuccess every outcome succeeded
	OverallSuccess OverallStatus = iota

	// OverallFailure at least one outcome did not succeed
	OverallFailure
)

// String returns readable representation of the overall status.
func (s OverallStatus) String() string {
	if s == OverallSuccess {
		return "Success"
	}
	return "Failure"
}

// Report is the aggregated, ordered collection of outcomes for one user
// command. Order matches the invocation order; created once per command
// and read-only afterwards.
type Report struct {
	RunID    string
	Command  []string
	Results  []*executor.Outcome
	Overall  OverallStatus
	Total    int
	Success  int
	Failed   int
	TimedOut int
	Spawn    int
	Canceled int
	Elapsed  time.Duration
}

// Aggregate merges ordered outcomes into a report. Deterministic: the same
// ordered outcomes always produce the same report (modulo the run id).
// The overall status is Failure if any outcome is non-success; a per-cluster
// failure is never silently swallowed.
func Aggregate(command []string, outcomes []*executor.Outcome) *Report {
	r := &Report{
		RunID:   uuid.NewString(),
		Command: command,
		Results: outcomes,
		Total:   len(outcomes),
	}

	var earliest, latest time.Time
	for _, o := range outcomes {
		switch o.Status {
		case executor.StatusSucceeded:
			r.Success++
		case executor.StatusFailed:
			r.Failed++
		case executor.StatusTimedOut:
			r.TimedOut++
		case executor.StatusSpawnError:
			r.Spawn++
		case executor.StatusCancelled:
			r.Canceled++
		}

		if !o.StartTime.IsZero() && (earliest.IsZero() || o.StartTime.Before(earliest)) {
			earliest = o.StartTime
		}
		if o.EndTime.After(latest) {
			latest = o.EndTime
		}
	}

	if r.Success == r.Total {
		r.Overall = OverallSuccess
	} else {
		r.Overall = OverallFailure
	}
	if !earliest.IsZero() {
		r.Elapsed = latest.Sub(earliest)
	}

	return r
}

// FailedResults returns the outcomes that did not succeed, in report order.
func (r *Report) FailedResults() []*executor.Outcome {
	var failed []*executor.Outcome
	for _, o := range r.Results {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err returns nil when the overall status is Success, ErrClustersFailed
// (wrapped with counts) otherwise.
func (r *Report) Err() error {
	if r.Overall == OverallSuccess {
		return nil
	}
	return fmt.Errorf("%w (%d of %d)", ErrClustersFailed, r.Total-r.Success, r.Total)
}

// ExitCode maps the overall status to the process exit code.
func (r *Report) ExitCode() int {
	if r.Overall == OverallSuccess {
		return ExitOK
	}
	return ExitClustersFailed
}

// String returns readable representation of the report.
func (r *Report) String() string {
	return fmt.Sprintf("Total: %d | Success: %d | Failed: %d | Timeout: %d | Canceled: %d | Time: %s",
		r.Total, r.Success, r.Failed+r.Spawn, r.TimedOut, r.Canceled, r.Elapsed)
}
