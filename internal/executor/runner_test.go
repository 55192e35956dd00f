package executor

import (
	"context"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/estudosdevops/argo-manager/internal/registry"
	"github.com/estudosdevops/argo-manager/internal/translator"
)

// shInvocation builds an invocation running a shell one-liner, so the runner
// is exercised against real subprocesses without needing argocd installed.
func shInvocation(script string) translator.Invocation {
	return translator.Invocation{
		Cluster: registry.ClusterContext{Name: "test-cluster", Server: "test.example.com"},
		Binary:  "sh",
		Args:    []string{"-c", script},
	}
}

// TestRunSuccess verifies a zero exit is classified SUCCEEDED with captured stdout.
func TestRunSuccess(t *testing.T) {
	runner := NewRunner()

	outcome := runner.Run(context.Background(), shInvocation("echo hello"))

	if outcome.Status != StatusSucceeded {
		t.Fatalf("Status = %s, want SUCCEEDED (stderr: %q, err: %v)", outcome.Status, outcome.Stderr, outcome.Err)
	}
	if outcome.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", outcome.ExitCode)
	}
	if outcome.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", outcome.Stdout, "hello\n")
	}
	if outcome.Err != nil {
		t.Errorf("Err = %v, want nil", outcome.Err)
	}
	if outcome.EndTime.Before(outcome.StartTime) {
		t.Error("EndTime before StartTime")
	}
}

// TestRunFailure verifies a non-zero exit is classified FAILED with the exit
// code and stderr preserved.
func TestRunFailure(t *testing.T) {
	runner := NewRunner()

	outcome := runner.Run(context.Background(), shInvocation("echo oops >&2; exit 3"))

	if outcome.Status != StatusFailed {
		t.Fatalf("Status = %s, want FAILED", outcome.Status)
	}
	if outcome.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", outcome.ExitCode)
	}
	if outcome.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", outcome.Stderr, "oops\n")
	}
	if outcome.Err != nil {
		t.Errorf("Err = %v, want nil for plain non-zero exit", outcome.Err)
	}
}

// TestRunSeparateStreams verifies stdout and stderr are never mixed.
func TestRunSeparateStreams(t *testing.T) {
	runner := NewRunner()

	outcome := runner.Run(context.Background(), shInvocation("echo out; echo err >&2"))

	if outcome.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", outcome.Stdout, "out\n")
	}
	if outcome.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", outcome.Stderr, "err\n")
	}
}

// TestRunTimeout verifies deadline expiry kills the process and is
// classified TIMEOUT.
func TestRunTimeout(t *testing.T) {
	runner := NewRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	outcome := runner.Run(ctx, shInvocation("sleep 10"))

	if outcome.Status != StatusTimedOut {
		t.Fatalf("Status = %s, want TIMEOUT", outcome.Status)
	}
	if outcome.Err == nil {
		t.Error("Expected timeout cause in Err")
	}
	if elapsed := time.Since(start); elapsed > 8*time.Second {
		t.Errorf("Process not killed on deadline, took %v", elapsed)
	}
}

// TestRunTimeoutKillsProcessGroup verifies the whole process group dies on
// timeout: a child spawned by the invocation must not survive as an orphan,
// and its inherited pipes must not stall Run for the full WaitDelay.
func TestRunTimeoutKillsProcessGroup(t *testing.T) {
	runner := NewRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	outcome := runner.Run(ctx, shInvocation("sleep 60 & echo $!; wait"))
	elapsed := time.Since(start)

	if outcome.Status != StatusTimedOut {
		t.Fatalf("Status = %s, want TIMEOUT", outcome.Status)
	}

	// The grandchild's pid was echoed before the deadline hit.
	pid, err := strconv.Atoi(strings.TrimSpace(outcome.Stdout))
	if err != nil {
		t.Fatalf("Could not read grandchild pid from stdout %q: %v", outcome.Stdout, err)
	}

	// Give init a moment to reap it, then require it gone.
	alive := true
	for range 20 {
		if syscall.Kill(pid, 0) != nil {
			alive = false
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if alive {
		t.Errorf("Grandchild sleep (pid %d) survived the timeout", pid)
	}

	// Without the group kill, Run stalls WaitDelay (5s) on the orphan's
	// inherited pipe.
	if elapsed > 3*time.Second {
		t.Errorf("Run took %v after a 300ms deadline; pipes were held past the kill", elapsed)
	}
}

// TestRunCancelledBeforeStart verifies a dead context never spawns the process.
func TestRunCancelledBeforeStart(t *testing.T) {
	runner := NewRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := runner.Run(ctx, shInvocation("echo should-not-run"))

	if outcome.Status != StatusCancelled {
		t.Fatalf("Status = %s, want CANCELED", outcome.Status)
	}
	if outcome.Stdout != "" {
		t.Errorf("Process ran despite cancelled context: %q", outcome.Stdout)
	}
	if outcome.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for a process that never ran", outcome.ExitCode)
	}
}

// TestRunSpawnError verifies a missing binary is classified SPAWN_ERROR.
func TestRunSpawnError(t *testing.T) {
	runner := NewRunner()

	inv := translator.Invocation{
		Cluster: registry.ClusterContext{Name: "test-cluster"},
		Binary:  "definitely-not-a-real-binary-xyz",
		Args:    []string{"version"},
	}
	outcome := runner.Run(context.Background(), inv)

	if outcome.Status != StatusSpawnError {
		t.Fatalf("Status = %s, want SPAWN_ERROR", outcome.Status)
	}
	if outcome.Err == nil {
		t.Error("Expected spawn cause in Err")
	}
	if outcome.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", outcome.ExitCode)
	}
}

// TestClassifyContextErr verifies deadline vs cancellation mapping.
func TestClassifyContextErr(t *testing.T) {
	deadline, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-deadline.Done()
	if got := classifyContextErr(deadline); got != StatusTimedOut {
		t.Errorf("Deadline context classified %s, want TIMEOUT", got)
	}

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if got := classifyContextErr(cancelled); got != StatusCancelled {
		t.Errorf("Cancelled context classified %s, want CANCELED", got)
	}
}
