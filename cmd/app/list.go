// cmd/app/list.go
package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

var listProject string

// appListCmd lists applications across the selected clusters in one merged
// table, each row tagged with its origin cluster.
var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications across the selected clusters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"app", "list", "-o", "json"}
		if listProject != "" {
			cliArgs = append(cliArgs, "--project", listProject)
		}

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

		rows := [][]string{}
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
				rows = append(rows, []string{
					o.Cluster.Name,
					app.Name,
					app.Spec.Project,
					argocd.ColorSyncStatus(argocd.SyncStatus(app)),
					argocd.ColorHealthStatus(argocd.HealthStatus(app)),
				})
			}
		}

		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "NAME", "PROJECT", "SYNC", "HEALTH"}, rows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}

func init() {
	appListCmd.Flags().StringVarP(&listProject, "project", "p", "", "only list applications in this project")
}
