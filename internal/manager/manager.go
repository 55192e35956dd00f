// Package manager wires the registry, translator, dispatcher and aggregator
// together: one Manager per user command, resolving the cluster selector
// once and fanning the command out.
package manager

import (
	"context"
	"log/slog"
	"time"

	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/registry"
	"github.com/estudosdevops/argo-manager/internal/report"
	"github.com/estudosdevops/argo-manager/internal/retry"
	"github.com/estudosdevops/argo-manager/internal/translator"
)

// Options configures one fan-out run.
type Options struct {
	Selector    string        // cluster selector: "all", names, globs
	Concurrency int           // max simultaneous cluster invocations
	Timeout     time.Duration // per-invocation deadline
	Binary      string        // underlying CLI binary, default "argocd"
}

// Manager fans a single abstract command out to the selected clusters.
type Manager struct {
	registry *registry.Registry
	opts     Options
	log      *slog.Logger
}

// New creates a manager over the given registry.
func New(reg *registry.Registry, opts Options) *Manager {
	return &Manager{
		registry: reg,
		opts:     opts,
		log:      logger.Get(),
	}
}

// Clusters resolves the configured selector.
func (m *Manager) Clusters() ([]registry.ClusterContext, error) {
	return m.registry.Resolve(m.opts.Selector)
}

// Run dispatches args to every selected cluster and aggregates the
// outcomes. Used for mutating commands; failures are never retried.
func (m *Manager) Run(ctx context.Context, args []string) (*report.Report, error) {
	outcomes, err := m.dispatch(ctx, args, executor.NewRunner())
	if err != nil {
		return nil, err
	}
	return report.Aggregate(args, outcomes), nil
}

// Fetch is Run for read-only commands: transient per-cluster CLI failures
// (connection resets, gateway errors) are retried with backoff before the
// outcome is recorded.
func (m *Manager) Fetch(ctx context.Context, args []string) (*report.Report, error) {
	outcomes, err := m.FetchOutcomes(ctx, args)
	if err != nil {
		return nil, err
	}
	return report.Aggregate(args, outcomes), nil
}

// FetchOutcomes is Fetch without the aggregation step, for callers that
// post-process outcomes (diff reclassification, typed decoding) first.
func (m *Manager) FetchOutcomes(ctx context.Context, args []string) ([]*executor.Outcome, error) {
	runner := &retryRunner{
		inner:   executor.NewRunner(),
		retryer: retry.New(retry.CLIPolicy),
	}
	return m.dispatch(ctx, args, runner)
}

func (m *Manager) dispatch(ctx context.Context, args []string, runner executor.Runner) ([]*executor.Outcome, error) {
	clusters, err := m.Clusters()
	if err != nil {
		return nil, err
	}

	invocations := translator.Translate(m.opts.Binary, args, clusters)

	m.log.Debug("Dispatching command",
		"args", args,
		"clusters", len(clusters),
		"concurrency", m.opts.Concurrency)

	pe := executor.NewParallelExecutor(executor.Config{
		Runner:         runner,
		MaxConcurrency: m.opts.Concurrency,
		Timeout:        m.opts.Timeout,
	})
	return pe.Dispatch(ctx, invocations)
}
