// cmd/project/get.go
package project

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// projectGetCmd shows one project's definition on every selected cluster.
var projectGetCmd = &cobra.Command{
	Use:   "get <project-name>",
	Short: "Show a project's definition per cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		name := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		cliArgs := []string{"proj", "get", name, "-o", "json"}

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
			project, perr := argocd.ParseProject([]byte(o.Stdout))
			if perr != nil {
				log.Warn("Unparseable project", "cluster", o.Cluster.Name, "error", perr)
				continue
			}
			repos := strings.Join(project.Spec.SourceRepos, ", ")
			if repos == "" {
				repos = "-"
			}
			rows = append(rows, []string{
				o.Cluster.Name,
				project.Spec.Description,
				strconv.Itoa(len(project.Spec.Destinations)),
				repos,
			})
		}

		presenter.PrintTable(os.Stdout, []string{"CLUSTER", "DESCRIPTION", "DESTINATIONS", "SOURCE REPOS"}, rows)
		rep.WriteOutputs(os.Stdout, false)
		return rep.Err()
	},
}
