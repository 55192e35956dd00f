// cmd/app/get.go
package app

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// appGetCmd shows one application's status on every selected cluster.
var appGetCmd = &cobra.Command{
	Use:   "get <app-name>",
	Short: "Show an application's status per cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		name := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"app", "get", name, "-o", "json"}

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
			app, perr := argocd.ParseApplication([]byte(o.Stdout))
			if perr != nil {
				log.Warn("Unparseable application", "cluster", o.Cluster.Name, "error", perr)
				continue
			}
			rows = append(rows, []string{
				o.Cluster.Name,
				app.Spec.Project,
				strings.Join(argocd.TargetRevisions(app), ", "),
				argocd.ColorSyncStatus(argocd.SyncStatus(app)),
				argocd.ColorHealthStatus(argocd.HealthStatus(app)),
			})
		}

		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "PROJECT", "TARGET", "SYNC", "HEALTH"}, rows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}
