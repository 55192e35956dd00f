package manager

import (
	"context"
	"errors"
	"strings"

	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/retry"
	"github.com/estudosdevops/argo-manager/internal/translator"
)

// retryRunner wraps a Runner and re-runs an invocation whose failure looks
// transient. Retries share the invocation's single timeout budget: the
// deadline set by the dispatcher is not extended per attempt.
type retryRunner struct {
	inner   executor.Runner
	retryer retry.Retryer
}

func (rr *retryRunner) Run(ctx context.Context, inv translator.Invocation) *executor.Outcome {
	var outcome *executor.Outcome

	// The closure returns an error only when the outcome is worth another
	// attempt; the retryer's own classification decides. The final outcome
	// already carries the failure, so the retryer's error is dropped.
	_ = rr.retryer.Do(ctx, func() error {
		outcome = rr.inner.Run(ctx, inv)
		if err := retryableFailure(outcome); err != nil {
			return err
		}
		return nil
	})

	return outcome
}

// retryableFailure maps an outcome to a retryable error, or nil.
// Timeouts and cancellations are terminal by design: the deadline already
// expired. Non-zero exits with empty stderr (e.g. diff's exit code 1) are
// information, not transient failures.
func retryableFailure(o *executor.Outcome) error {
	if o.Status != executor.StatusFailed {
		return nil
	}
	stderr := strings.TrimSpace(o.Stderr)
	if stderr == "" {
		return nil
	}
	err := errors.New(stderr)
	if !retry.IsRetryable(err) {
		return nil
	}
	return err
}
