package argocd

import (
	"github.com/estudosdevops/argo-manager/internal/executor"
)

// diffExitCode is what `argocd app diff` returns when the live state
// differs from the target state; general errors exit 2. The diff
// convention makes exit 1 information, not a failure.
const diffExitCode = 1

// HasDiff reports whether a diff invocation's outcome found differences.
// Valid before and after ReclassifyDiffOutcomes.
func HasDiff(o *executor.Outcome) bool {
	return o.ExitCode == diffExitCode
}

// ReclassifyDiffOutcomes rewrites exit-code-1 diff outcomes to Succeeded so
// that "differences exist" does not count as a cluster failure in the
// aggregated report. Real failures (other exit codes, timeouts, spawn
// errors) are left untouched.
func ReclassifyDiffOutcomes(outcomes []*executor.Outcome) {
	for _, o := range outcomes {
		if o.Status == executor.StatusFailed && o.ExitCode == diffExitCode {
			o.Status = executor.StatusSucceeded
		}
	}
}
