package cmd

import (
	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
)

// execCmd is the raw fan-out surface: any argocd sub-command, forwarded
// verbatim to every selected cluster with the per-context connection
// arguments appended.
var execCmd = &cobra.Command{
	Use:   "exec -- <argocd arguments...>",
	Short: "Run an arbitrary argocd command against the selected clusters",
	Long: `Runs the given argocd arguments once per selected cluster and merges the
results. The arguments are forwarded verbatim; argo-manager only appends the
--server and connection flags for each cluster context.

Example:
  argo-manager exec --cluster 'prod-*' -- app list -o wide`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		m := cli.NewManager(cmd)
		rep, err := m.Run(ctx, args)
		if err != nil {
			log.Error("Dispatch failed", "error", err)
			return err
		}

		if err := cli.RenderReport(cmd, rep, true); err != nil {
			return err
		}
		return rep.Err()
	},
}

func init() {
	RootCmd.AddCommand(execCmd)
}
