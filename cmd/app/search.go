// cmd/app/search.go
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

var searchProject string

// appSearchCmd searches applications by name across the selected clusters.
var appSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search applications by name across the selected clusters",
	Long: `Lists the applications on every selected cluster and keeps the ones whose
name contains the query (case-insensitive).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		query := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"app", "list", "-o", "json"}
		if searchProject != "" {
			cliArgs = append(cliArgs, "--project", searchProject)
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
			matches := argocd.FilterApplications(apps, query)
			for i := range matches {
				app := &matches[i]
				rows = append(rows, []string{
					o.Cluster.Name,
					app.Name,
					argocd.ColorSyncStatus(argocd.SyncStatus(app)),
					argocd.ColorHealthStatus(argocd.HealthStatus(app)),
				})
			}
		}

		if len(rows) == 0 {
			log.Warn("No applications match", "query", query)
		}
		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "NAME", "SYNC", "HEALTH"}, rows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}

func init() {
	appSearchCmd.Flags().StringVarP(&searchProject, "project", "p", "", "only search applications in this project")
}
