// cmd/app/syncmulti.go
package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
)

var (
	syncMultiPrune  bool
	syncMultiDryRun bool
	syncMultiYes    bool
)

// appSyncMultiCmd syncs several applications on every selected cluster in a
// single underlying sync call per cluster.
var appSyncMultiCmd = &cobra.Command{
	Use:   "sync-multi <app-name>...",
	Short: "Sync several applications on the selected clusters",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		m := cli.NewManagerWithTimeout(cmd, syncDefaultTimeout)
		clusters, err := m.Clusters()
		if err != nil {
			return err
		}

		if !syncMultiYes && !syncMultiDryRun {
			prompt := fmt.Sprintf("Sync %d application(s) (%s) on %d cluster(s)?",
				len(args), strings.Join(args, ", "), len(clusters))
			if !cli.Confirm(prompt, false) {
				log.Info("Sync aborted")
				return nil
			}
		}

		rep, err := m.Run(ctx, buildSyncArgs(args, syncMultiPrune, syncMultiDryRun))
		if err != nil {
			log.Error("Dispatch failed", "error", err)
			return err
		}

		if err := cli.RenderReport(cmd, rep, false); err != nil {
			return err
		}
		return rep.Err()
	},
}

func init() {
	appSyncMultiCmd.Flags().BoolVar(&syncMultiPrune, "prune", false, "allow deleting resources not tracked in git")
	appSyncMultiCmd.Flags().BoolVar(&syncMultiDryRun, "dry-run", false, "preview the sync without applying changes")
	appSyncMultiCmd.Flags().BoolVarP(&syncMultiYes, "yes", "y", false, "skip the confirmation prompt")
}
