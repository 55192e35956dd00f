// cmd/app/diff.go
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// appDiffCmd diffs one application against its target state on every
// selected cluster. The underlying CLI exits 1 when differences exist,
// which is reported as "diff: yes", not as a failed cluster.
var appDiffCmd = &cobra.Command{
	Use:   "diff <app-name>",
	Short: "Diff an application against its target state per cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		name := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"app", "diff", name}

		m := cli.NewManager(cmd)
		outcomes, err := m.FetchOutcomes(ctx, cliArgs)
		if err != nil {
			log.Error("Dispatch failed", "error", err)
			return err
		}
		argocd.ReclassifyDiffOutcomes(outcomes)
		rep := report.Aggregate(cliArgs, outcomes)

		format, err := cli.OutputFormat(cmd)
		if err != nil {
			return err
		}
		if format == cli.OutputJSON {
			if err := rep.WriteJSON(os.Stdout); err != nil {
				return err
			}
			return rep.Err()
		}

		rows := make([][]string, 0, len(outcomes))
		for _, o := range outcomes {
			diff := "-"
			if o.Succeeded() {
				diff = "no"
				if argocd.HasDiff(o) {
					diff = color.YellowString("yes")
				}
			}
			rows = append(rows, []string{
				o.Cluster.Name,
				report.ColorStatus(o.Status),
				diff,
			})
		}
		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "STATUS", "DIFF"}, rows)

		for _, o := range outcomes {
			if !o.Succeeded() || !argocd.HasDiff(o) {
				continue
			}
			heading := color.New(color.Bold).Sprintf("=== %s", o.Cluster.Name)
			fmt.Fprintf(os.Stdout, "\n%s\n%s\n", heading, strings.TrimSpace(o.Stdout))
		}
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}
