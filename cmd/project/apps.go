// cmd/project/apps.go
package project

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// projectAppsCmd shows one project's applications and their status on every
// selected cluster, with a per-cluster rollup of how many are out of sync
// or degraded.
var projectAppsCmd = &cobra.Command{
	Use:   "apps <project-name>",
	Short: "Show a project's applications across the selected clusters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		project := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"app", "list", "-o", "json", "--project", project}

		m := cli.NewManager(cmd)
		outcomes, err := m.FetchOutcomes(ctx, cliArgs)
		if err != nil {
			log.Error("Dispatch failed", "error", err)
			return err
		}
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

		appRows := [][]string{}
		summaryRows := [][]string{}
		for _, o := range outcomes {
			if !o.Succeeded() {
				continue
			}
			apps, perr := argocd.ParseApplicationList([]byte(o.Stdout))
			if perr != nil {
				log.Warn("Unparseable application list", "cluster", o.Cluster.Name, "error", perr)
				continue
			}
			for i := range apps {
				app := &apps[i]
				appRows = append(appRows, []string{
					o.Cluster.Name,
					app.Name,
					argocd.ColorSyncStatus(argocd.SyncStatus(app)),
					argocd.ColorHealthStatus(argocd.HealthStatus(app)),
				})
			}

			s := argocd.Summarize(apps)
			summaryRows = append(summaryRows, []string{
				o.Cluster.Name,
				strconv.Itoa(s.Total),
				strconv.Itoa(len(s.OutOfSync)),
				strconv.Itoa(len(s.Degraded)),
			})
		}

		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "NAME", "SYNC", "HEALTH"}, appRows)
		os.Stdout.WriteString("\n")
		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "APPS", "OUT-OF-SYNC", "DEGRADED"}, summaryRows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}
