package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/presenter"
)

// outcomeJSON is the stable machine-readable shape of one outcome.
// Field names and order are part of the scripting contract; do not reorder.
type outcomeJSON struct {
	Cluster    string `json:"cluster"`
	Server     string `json:"server"`
	Status     string `json:"status"`
	ExitCode   int    `json:"exit_code"`
	DurationMS int64  `json:"duration_ms"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	Error      string `json:"error,omitempty"`
}

// reportJSON is the stable machine-readable shape of a whole report.
type reportJSON struct {
	RunID     string        `json:"run_id"`
	Command   []string      `json:"command"`
	Overall   string        `json:"overall"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	TimedOut  int           `json:"timed_out"`
	Canceled  int           `json:"canceled"`
	ElapsedMS int64         `json:"elapsed_ms"`
	Clusters  []outcomeJSON `json:"clusters"`
}

// WriteJSON renders the report for scripting consumption.
func (r *Report) WriteJSON(w io.Writer) error {
	out := reportJSON{
		RunID:     r.RunID,
		Command:   r.Command,
		Overall:   strings.ToLower(r.Overall.String()),
		Total:     r.Total,
		Succeeded: r.Success,
		Failed:    r.Failed + r.Spawn,
		TimedOut:  r.TimedOut,
		Canceled:  r.Canceled,
		ElapsedMS: r.Elapsed.Milliseconds(),
		Clusters:  make([]outcomeJSON, 0, len(r.Results)),
	}

	for _, o := range r.Results {
		entry := outcomeJSON{
			Cluster:    o.Cluster.Name,
			Server:     o.Cluster.Server,
			Status:     o.Status.String(),
			ExitCode:   o.ExitCode,
			DurationMS: o.Duration.Milliseconds(),
			Stdout:     o.Stdout,
			Stderr:     o.Stderr,
		}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		}
		out.Clusters = append(out.Clusters, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteTable renders the per-cluster summary table.
func (r *Report) WriteTable(w io.Writer) {
	header := []string{"CLUSTER", "STATUS", "EXIT", "DURATION"}
	rows := make([][]string, 0, len(r.Results))
	for _, o := range r.Results {
		exit := fmt.Sprintf("%d", o.ExitCode)
		if o.ExitCode < 0 {
			exit = "-"
		}
		rows = append(rows, []string{
			o.Cluster.Name,
			ColorStatus(o.Status),
			exit,
			o.Duration.Round(timePrecision).String(),
		})
	}
	presenter.PrintTable(w, header, rows)
	fmt.Fprintf(w, "\n%s\n", r.String())
}

// WriteOutputs prints each cluster's captured output after the summary,
// with a colored per-cluster heading. Stdout of succeeded clusters is
// included only when withStdout is set; stderr of failed clusters is
// always shown so failures are never hidden.
func (r *Report) WriteOutputs(w io.Writer, withStdout bool) {
	for _, o := range r.Results {
		stdout := strings.TrimSpace(o.Stdout)
		stderr := strings.TrimSpace(o.Stderr)

		if o.Succeeded() {
			if !withStdout || stdout == "" {
				continue
			}
			fmt.Fprintf(w, "\n%s\n%s\n", color.New(color.Bold).Sprintf("=== %s", o.Cluster.Name), stdout)
			continue
		}

		heading := color.New(color.Bold, color.FgRed).Sprintf("=== %s (%s)", o.Cluster.Name, o.Status)
		fmt.Fprintf(w, "\n%s\n", heading)
		if stderr != "" {
			fmt.Fprintln(w, stderr)
		}
		if o.Err != nil {
			fmt.Fprintln(w, o.Err.Error())
		}
	}
}

// timePrecision keeps the duration column readable.
const timePrecision = 10 * time.Millisecond

// ColorStatus renders an outcome status with the conventional color.
func ColorStatus(s executor.Status) string {
	switch s {
	case executor.StatusSucceeded:
		return color.GreenString(s.String())
	case executor.StatusFailed, executor.StatusSpawnError:
		return color.RedString(s.String())
	case executor.StatusTimedOut, executor.StatusCancelled:
		return color.YellowString(s.String())
	default:
		return s.String()
	}
}
