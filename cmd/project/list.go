// cmd/project/list.go
package project

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// projectListCmd lists projects across the selected clusters.
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects across the selected clusters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"proj", "list", "-o", "json"}

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
			projects, perr := argocd.ParseProjectList([]byte(o.Stdout))
			if perr != nil {
				log.Warn("Unparseable project list", "cluster", o.Cluster.Name, "error", perr)
				continue
			}
			for i := range projects {
				p := &projects[i]
				rows = append(rows, []string{
					o.Cluster.Name,
					p.Name,
					p.Spec.Description,
				})
			}
		}

		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "NAME", "DESCRIPTION"}, rows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}
