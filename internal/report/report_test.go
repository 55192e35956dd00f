package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/registry"
)

func outcome(name string, status executor.Status, exitCode int) *executor.Outcome {
	return &executor.Outcome{
		Cluster:  registry.ClusterContext{Name: name, Server: name + ".example.com"},
		Status:   status,
		ExitCode: exitCode,
	}
}

// TestAggregateAllSuccess verifies the happy path rollup.
func TestAggregateAllSuccess(t *testing.T) {
	outcomes := []*executor.Outcome{
		outcome("a", executor.StatusSucceeded, 0),
		outcome("b", executor.StatusSucceeded, 0),
	}

	rep := Aggregate([]string{"app", "list"}, outcomes)

	if rep.Overall != OverallSuccess {
		t.Errorf("Overall = %s, want Success", rep.Overall)
	}
	if rep.Total != 2 || rep.Success != 2 || rep.Failed != 0 {
		t.Errorf("Counts = total:%d success:%d failed:%d", rep.Total, rep.Success, rep.Failed)
	}
	if rep.RunID == "" {
		t.Error("Expected a run id")
	}
	if rep.Err() != nil {
		t.Errorf("Err() = %v, want nil", rep.Err())
	}
	if rep.ExitCode() != ExitOK {
		t.Errorf("ExitCode() = %d, want %d", rep.ExitCode(), ExitOK)
	}
}

// TestAggregateMixed verifies any non-success flips the overall status and
// every terminal state lands in its own counter.
func TestAggregateMixed(t *testing.T) {
	outcomes := []*executor.Outcome{
		outcome("a", executor.StatusSucceeded, 0),
		outcome("b", executor.StatusFailed, 1),
		outcome("c", executor.StatusTimedOut, -1),
		outcome("d", executor.StatusSpawnError, -1),
		outcome("e", executor.StatusCancelled, -1),
	}

	rep := Aggregate([]string{"app", "sync", "x"}, outcomes)

	if rep.Overall != OverallFailure {
		t.Errorf("Overall = %s, want Failure", rep.Overall)
	}
	if rep.Success != 1 || rep.Failed != 1 || rep.TimedOut != 1 || rep.Spawn != 1 || rep.Canceled != 1 {
		t.Errorf("Counts = %+v", rep)
	}

	err := rep.Err()
	if !errors.Is(err, ErrClustersFailed) {
		t.Errorf("Err() = %v, want ErrClustersFailed", err)
	}
	if !strings.Contains(err.Error(), "4 of 5") {
		t.Errorf("Err() = %q, want failure counts in message", err.Error())
	}
	if rep.ExitCode() != ExitClustersFailed {
		t.Errorf("ExitCode() = %d, want %d", rep.ExitCode(), ExitClustersFailed)
	}
}

// TestAggregatePreservesOrder verifies results keep invocation order.
func TestAggregatePreservesOrder(t *testing.T) {
	outcomes := []*executor.Outcome{
		outcome("c", executor.StatusSucceeded, 0),
		outcome("a", executor.StatusFailed, 1),
		outcome("b", executor.StatusSucceeded, 0),
	}

	rep := Aggregate([]string{"version"}, outcomes)

	for i, want := range []string{"c", "a", "b"} {
		if rep.Results[i].Cluster.Name != want {
			t.Errorf("Results[%d] = %q, want %q", i, rep.Results[i].Cluster.Name, want)
		}
	}
}

// TestAggregateElapsed verifies the wall-clock span covers first start to
// last end, not the sum of durations.
func TestAggregateElapsed(t *testing.T) {
	base := time.Now()
	first := outcome("a", executor.StatusSucceeded, 0)
	first.StartTime = base
	first.EndTime = base.Add(2 * time.Second)
	second := outcome("b", executor.StatusSucceeded, 0)
	second.StartTime = base.Add(500 * time.Millisecond)
	second.EndTime = base.Add(3 * time.Second)

	rep := Aggregate([]string{"app", "list"}, []*executor.Outcome{first, second})

	if rep.Elapsed != 3*time.Second {
		t.Errorf("Elapsed = %v, want 3s", rep.Elapsed)
	}
}

// TestFailedResults verifies only non-success outcomes are returned, in order.
func TestFailedResults(t *testing.T) {
	rep := Aggregate([]string{"app", "list"}, []*executor.Outcome{
		outcome("a", executor.StatusSucceeded, 0),
		outcome("b", executor.StatusTimedOut, -1),
		outcome("c", executor.StatusFailed, 1),
	})

	failed := rep.FailedResults()
	if len(failed) != 2 {
		t.Fatalf("Expected 2 failed results, got %d", len(failed))
	}
	if failed[0].Cluster.Name != "b" || failed[1].Cluster.Name != "c" {
		t.Errorf("Failed order = %q, %q", failed[0].Cluster.Name, failed[1].Cluster.Name)
	}
}

// TestWriteJSON verifies the machine output keeps its contract fields and
// per-cluster order.
func TestWriteJSON(t *testing.T) {
	first := outcome("a", executor.StatusSucceeded, 0)
	first.Stdout = "ok"
	second := outcome("b", executor.StatusFailed, 2)
	second.Stderr = "boom"

	rep := Aggregate([]string{"app", "list"}, []*executor.Outcome{first, second})

	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var decoded struct {
		RunID     string   `json:"run_id"`
		Command   []string `json:"command"`
		Overall   string   `json:"overall"`
		Total     int      `json:"total"`
		Succeeded int      `json:"succeeded"`
		Failed    int      `json:"failed"`
		Clusters  []struct {
			Cluster  string `json:"cluster"`
			Status   string `json:"status"`
			ExitCode int    `json:"exit_code"`
			Stderr   string `json:"stderr"`
		} `json:"clusters"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded.Overall != "failure" {
		t.Errorf("overall = %q, want %q", decoded.Overall, "failure")
	}
	if decoded.Total != 2 || decoded.Succeeded != 1 || decoded.Failed != 1 {
		t.Errorf("Counts = %+v", decoded)
	}
	if len(decoded.Clusters) != 2 {
		t.Fatalf("Expected 2 cluster entries, got %d", len(decoded.Clusters))
	}
	if decoded.Clusters[0].Cluster != "a" || decoded.Clusters[1].Cluster != "b" {
		t.Errorf("Cluster order = %q, %q", decoded.Clusters[0].Cluster, decoded.Clusters[1].Cluster)
	}
	if decoded.Clusters[1].Status != "FAILED" || decoded.Clusters[1].Stderr != "boom" {
		t.Errorf("Failed entry = %+v", decoded.Clusters[1])
	}
}

// TestWriteTable verifies the human output mentions every cluster and the
// summary line.
func TestWriteTable(t *testing.T) {
	rep := Aggregate([]string{"app", "list"}, []*executor.Outcome{
		outcome("prod-east", executor.StatusSucceeded, 0),
		outcome("prod-west", executor.StatusFailed, 1),
	})

	var buf bytes.Buffer
	rep.WriteTable(&buf)
	output := buf.String()

	for _, want := range []string{"CLUSTER", "STATUS", "prod-east", "prod-west", "Total: 2"} {
		if !strings.Contains(output, want) {
			t.Errorf("Table output missing %q:\n%s", want, output)
		}
	}
}

// TestWriteOutputs verifies failed stderr is always shown and succeeded
// stdout only on request.
func TestWriteOutputs(t *testing.T) {
	ok := outcome("good", executor.StatusSucceeded, 0)
	ok.Stdout = "all fine"
	bad := outcome("bad", executor.StatusFailed, 1)
	bad.Stderr = "connection refused"

	rep := Aggregate([]string{"app", "list"}, []*executor.Outcome{ok, bad})

	var quiet bytes.Buffer
	rep.WriteOutputs(&quiet, false)
	if strings.Contains(quiet.String(), "all fine") {
		t.Error("Succeeded stdout shown without withStdout")
	}
	if !strings.Contains(quiet.String(), "connection refused") {
		t.Error("Failed stderr must always be shown")
	}

	var full bytes.Buffer
	rep.WriteOutputs(&full, true)
	if !strings.Contains(full.String(), "all fine") {
		t.Error("Succeeded stdout missing with withStdout")
	}
}
