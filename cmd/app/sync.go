// cmd/app/sync.go
package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
)

// syncDefaultTimeout replaces the generic per-command timeout when the user
// did not set one: syncs routinely outlive the 60s default.
const syncDefaultTimeout = 5 * time.Minute

var (
	syncPrune  bool
	syncDryRun bool
	syncYes    bool
)

// appSyncCmd syncs one application on every selected cluster.
var appSyncCmd = &cobra.Command{
	Use:   "sync <app-name>",
	Short: "Sync an application on the selected clusters",
	Long: `Runs 'argocd app sync' for the application on every selected cluster.
Failures on one cluster never stop the sync on the others; the merged report
shows which clusters succeeded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		name := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		m := cli.NewManagerWithTimeout(cmd, syncDefaultTimeout)
		clusters, err := m.Clusters()
		if err != nil {
			return err
		}

		if !syncYes && !syncDryRun {
			prompt := fmt.Sprintf("Sync application %q on %d cluster(s)?", name, len(clusters))
			if !cli.Confirm(prompt, false) {
				log.Info("Sync aborted")
				return nil
			}
		}

		rep, err := m.Run(ctx, buildSyncArgs([]string{name}, syncPrune, syncDryRun))
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

// buildSyncArgs assembles the underlying sync argv for one or more
// applications. The CLI accepts several names in a single sync call.
func buildSyncArgs(apps []string, prune, dryRun bool) []string {
	args := append([]string{"app", "sync"}, apps...)
	if prune {
		args = append(args, "--prune")
	}
	if dryRun {
		args = append(args, "--dry-run")
	}
	return args
}

func init() {
	appSyncCmd.Flags().BoolVar(&syncPrune, "prune", false, "allow deleting resources not tracked in git")
	appSyncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "preview the sync without applying changes")
	appSyncCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip the confirmation prompt")
}
