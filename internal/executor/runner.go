package executor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/translator"
)

// Runner executes a single invocation and produces its outcome.
// The dispatcher depends only on this interface; tests swap in fakes.
type Runner interface {
	Run(ctx context.Context, inv translator.Invocation) *Outcome
}

// waitDelay bounds how long we wait for the process to release its pipes
// after the context kills it, so a stuck child cannot wedge the worker.
const waitDelay = 5 * time.Second

// execRunner runs invocations as real subprocesses via os/exec.
type execRunner struct {
	log *slog.Logger
}

// NewRunner returns the subprocess-backed Runner used in production.
func NewRunner() Runner {
	return &execRunner{log: logger.Get()}
}

// Run spawns the invocation's process, captures stdout/stderr separately
// and classifies the terminal status. Context expiry kills the process;
// the child is never left orphaned.
func (r *execRunner) Run(ctx context.Context, inv translator.Invocation) *Outcome {
	outcome := &Outcome{
		Cluster:   inv.Cluster,
		Status:    StatusRunning,
		ExitCode:  -1,
		StartTime: time.Now(),
	}

	// Already cancelled while queued: never start the process.
	if err := ctx.Err(); err != nil {
		r.finalize(outcome, classifyContextErr(ctx), err)
		return outcome
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	// The invocation gets its own process group, and cancellation kills the
	// whole group. The default Cancel only signals the direct child, which
	// leaves its descendants orphaned and holding our pipes until WaitDelay.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}

	r.log.Debug("Executing invocation",
		"cluster", inv.Cluster.Name,
		"command", inv.String())

	err := cmd.Run()
	outcome.Stdout = stdout.String()
	outcome.Stderr = stderr.String()

	switch {
	case ctx.Err() != nil:
		r.finalize(outcome, classifyContextErr(ctx), ctx.Err())
	case err == nil:
		outcome.ExitCode = 0
		r.finalize(outcome, StatusSucceeded, nil)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			r.finalize(outcome, StatusFailed, nil)
		} else {
			// Run failed before the process started: binary not found,
			// permission denied and friends.
			r.finalize(outcome, StatusSpawnError, err)
		}
	}

	return outcome
}

func (r *execRunner) finalize(outcome *Outcome, status Status, err error) {
	outcome.Status = status
	outcome.Err = err
	outcome.EndTime = time.Now()
	outcome.Duration = outcome.EndTime.Sub(outcome.StartTime)

	if status != StatusSucceeded {
		r.log.Debug("Invocation finished",
			"cluster", outcome.Cluster.Name,
			"status", status,
			"exit_code", outcome.ExitCode,
			"duration", outcome.Duration)
	}
}

// classifyContextErr maps a done context to the matching terminal status:
// deadline expiry is a per-invocation timeout, anything else is an
// external cancellation (signal or overall timeout upstream).
func classifyContextErr(ctx context.Context) Status {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return StatusTimedOut
	}
	return StatusCancelled
}
