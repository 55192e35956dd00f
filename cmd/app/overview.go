// cmd/app/overview.go
package app

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

var overviewShowDiff bool

// appOverviewCmd is the fleet view: one row per cluster with the
// application's target revision(s), sync and health status, and optionally
// whether the live state diverges from the target.
var appOverviewCmd = &cobra.Command{
	Use:   "overview <app-name>",
	Short: "Show an application's target, sync and health across clusters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		name := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		getArgs := []string{"app", "get", name, "-o", "json"}

		m := cli.NewManager(cmd)
		outcomes, err := m.FetchOutcomes(ctx, getArgs)
		if err != nil {
			log.Error("Dispatch failed", "error", err)
			return err
		}
		rep := report.Aggregate(getArgs, outcomes)

		// The diff fan-out is a second round-trip per cluster, so it is
		// opt-in. Diff failures only blank the DIFF cell; the overview
		// itself stands on the get results.
		diffByCluster := map[string]*executor.Outcome{}
		if overviewShowDiff {
			diffOutcomes, derr := m.FetchOutcomes(ctx, []string{"app", "diff", name})
			if derr != nil {
				log.Error("Diff dispatch failed", "error", derr)
				return derr
			}
			argocd.ReclassifyDiffOutcomes(diffOutcomes)
			for _, o := range diffOutcomes {
				diffByCluster[o.Cluster.Name] = o
			}
		}

		format, err := cli.OutputFormat(cmd)
		if err != nil {
			return err
		}
		if format == cli.OutputJSON {
			// The overview has its own machine shape so that diff presence
			// is part of the output instead of living in a second report.
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(overviewEntries(name, outcomes, diffByCluster, overviewShowDiff)); err != nil {
				return err
			}
			return rep.Err()
		}

		header := []string{"CLUSTER", "STATUS", "TARGET", "SYNC", "HEALTH"}
		if overviewShowDiff {
			header = append(header, "DIFF")
		}

		rows := make([][]string, 0, len(outcomes))
		for _, o := range outcomes {
			row := []string{o.Cluster.Name, report.ColorStatus(o.Status), "-", "-", "-"}
			if o.Succeeded() {
				if app, perr := argocd.ParseApplication([]byte(o.Stdout)); perr == nil {
					row[2] = strings.Join(argocd.TargetRevisions(app), ", ")
					row[3] = argocd.ColorSyncStatus(argocd.SyncStatus(app))
					row[4] = argocd.ColorHealthStatus(argocd.HealthStatus(app))
				} else {
					log.Warn("Unparseable application", "cluster", o.Cluster.Name, "error", perr)
				}
			}
			if overviewShowDiff {
				cell := "-"
				if d, ok := diffByCluster[o.Cluster.Name]; ok && d.Succeeded() {
					cell = "no"
					if argocd.HasDiff(d) {
						cell = color.YellowString("yes")
					}
				}
				row = append(row, cell)
			}
			rows = append(rows, row)
		}

		presenter.PrintTable(os.Stdout, header, rows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}

// overviewEntry is the machine-readable shape of one overview row. Field
// names are part of the scripting contract; do not reorder.
type overviewEntry struct {
	Application string   `json:"application"`
	Cluster     string   `json:"cluster"`
	Status      string   `json:"status"`
	Targets     []string `json:"targets,omitempty"`
	Sync        string   `json:"sync,omitempty"`
	Health      string   `json:"health,omitempty"`
	Diff        *bool    `json:"diff,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// overviewEntries merges the get and diff fan-outs into one entry per
// cluster. Diff is set only when requested and the diff on that cluster
// completed; a failed diff leaves the field absent rather than lying.
func overviewEntries(name string, outcomes []*executor.Outcome, diffs map[string]*executor.Outcome, withDiff bool) []overviewEntry {
	entries := make([]overviewEntry, 0, len(outcomes))
	for _, o := range outcomes {
		e := overviewEntry{
			Application: name,
			Cluster:     o.Cluster.Name,
			Status:      o.Status.String(),
		}
		if o.Succeeded() {
			if app, err := argocd.ParseApplication([]byte(o.Stdout)); err == nil {
				e.Targets = argocd.TargetRevisions(app)
				e.Sync = argocd.SyncStatus(app)
				e.Health = argocd.HealthStatus(app)
			} else {
				e.Error = err.Error()
			}
		} else if o.Err != nil {
			e.Error = o.Err.Error()
		}
		if withDiff {
			if d, ok := diffs[o.Cluster.Name]; ok && d.Succeeded() {
				has := argocd.HasDiff(d)
				e.Diff = &has
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func init() {
	appOverviewCmd.Flags().BoolVar(&overviewShowDiff, "show-diff", false, "also diff the application on every cluster (one extra round-trip each)")
}
