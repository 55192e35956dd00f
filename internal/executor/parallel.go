// Package executor fans one CLI invocation out to many clusters through a
// bounded worker pool and collects per-cluster outcomes in input order.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/translator"
)

// Defaults applied by NewParallelExecutor when the config leaves them zero.
const (
	DefaultConcurrency = 5
	DefaultTimeout     = 60 * time.Second
)

// Config contains configuration for the parallel executor.
type Config struct {
	Runner         Runner        // Process runner (subprocess in production, fake in tests)
	MaxConcurrency int           // Max simultaneous invocations (default: 5)
	Timeout        time.Duration // Per-invocation deadline (default: 60s)
}

// ParallelExecutor executes invocations across multiple clusters
// concurrently. Uses goroutines with semaphore pattern to limit concurrency
// so a large fleet does not spawn an unbounded number of processes.
type ParallelExecutor struct {
	runner         Runner
	maxConcurrency int
	timeout        time.Duration
	log            *slog.Logger
}

// NewParallelExecutor creates a new parallel executor with given configuration.
func NewParallelExecutor(config Config) *ParallelExecutor {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultConcurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Runner == nil {
		config.Runner = NewRunner()
	}

	return &ParallelExecutor{
		runner:         config.Runner,
		maxConcurrency: config.MaxConcurrency,
		timeout:        config.Timeout,
		log:            logger.Get(),
	}
}

// Dispatch runs every invocation and returns one outcome per invocation,
// in input order regardless of completion order.
//
// Workflow:
// 1. Create semaphore channel to limit concurrency
// 2. Launch one goroutine per invocation
// 3. Each goroutine writes only its own slot of the outcome buffer
// 4. Wait for all goroutines, then return the buffer
//
// A failing invocation never aborts its siblings. When ctx is cancelled,
// in-flight processes are killed and invocations still waiting on the
// semaphore go straight to StatusCancelled without running.
func (pe *ParallelExecutor) Dispatch(ctx context.Context, invocations []translator.Invocation) ([]*Outcome, error) {
	if len(invocations) == 0 {
		return nil, fmt.Errorf("no invocations to dispatch")
	}

	pe.log.Debug("Starting dispatch",
		"invocations", len(invocations),
		"max_concurrency", pe.maxConcurrency,
		"timeout", pe.timeout)

	// Outcome buffer indexed by invocation position. Each worker owns
	// exactly one slot, so the slice needs no lock; it is only read
	// after wg.Wait.
	outcomes := make([]*Outcome, len(invocations))

	semaphore := make(chan struct{}, pe.maxConcurrency)
	var wg sync.WaitGroup
	var completed atomic.Int32

	for i, inv := range invocations {
		wg.Add(1)

		go func(slot int, inv translator.Invocation) {
			defer wg.Done()

			// Acquire semaphore (blocks if max concurrency reached).
			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				// Cancelled while queued: terminal state without running.
				outcomes[slot] = cancelledOutcome(inv, ctx)
				return
			}

			invCtx, cancel := context.WithTimeout(ctx, pe.timeout)
			defer cancel()

			outcome := pe.runner.Run(invCtx, inv)
			outcomes[slot] = outcome

			pe.log.Info("Cluster processed",
				"cluster", inv.Cluster.Name,
				"status", outcome.Status,
				"duration", outcome.Duration,
				"progress", fmt.Sprintf("%d/%d", completed.Add(1), len(invocations)))
		}(i, inv)
	}

	wg.Wait()

	pe.log.Debug("Dispatch completed", "invocations", len(invocations))
	return outcomes, nil
}

func cancelledOutcome(inv translator.Invocation, ctx context.Context) *Outcome {
	now := time.Now()
	return &Outcome{
		Cluster:   inv.Cluster,
		Status:    StatusCancelled,
		ExitCode:  -1,
		Err:       ctx.Err(),
		StartTime: now,
		EndTime:   now,
	}
}
