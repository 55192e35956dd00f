// cmd/app/settarget.go
package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/argocd"
	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/manager"
)

var (
	targetRevision    string
	targetSourceIndex int
	targetShowDiff    bool
	targetYes         bool
)

// appSetTargetCmd points one application at a new target revision on every
// selected cluster, the fan-out version of 'argocd app set --revision'.
var appSetTargetCmd = &cobra.Command{
	Use:   "set-target <app-name>",
	Short: "Set an application's target revision on the selected clusters",
	Long: `Updates the application's target revision via 'argocd app set' on every
selected cluster. For multi-source applications use --source-index to pick
the source to update. With --show-diff the application is diffed on each
cluster afterwards, so you see what the next sync would change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		name := args[0]

		ctx, stop := cli.SignalContext(cmd)
		defer stop()

		m := cli.NewManager(cmd)
		clusters, err := m.Clusters()
		if err != nil {
			return err
		}

		if !targetYes {
			prompt := fmt.Sprintf("Set %q target revision to %q on %d cluster(s)?", name, targetRevision, len(clusters))
			if !cli.Confirm(prompt, false) {
				log.Info("Update aborted")
				return nil
			}
		}

		cliArgs := []string{"app", "set", name, "--revision", targetRevision}
		if cmd.Flags().Changed("source-index") {
			cliArgs = append(cliArgs, "--source-index", strconv.Itoa(targetSourceIndex))
		}

		rep, err := m.Run(ctx, cliArgs)
		if err != nil {
			log.Error("Dispatch failed", "error", err)
			return err
		}

		if err := cli.RenderReport(cmd, rep, false); err != nil {
			return err
		}

		if targetShowDiff {
			showPostUpdateDiff(ctx, m, name)
		}
		return rep.Err()
	},
}

// showPostUpdateDiff is best-effort: the target update already happened, a
// failed diff must not turn the command's exit code around.
func showPostUpdateDiff(ctx context.Context, m *manager.Manager, name string) {
	log := logger.Get()

	outcomes, err := m.FetchOutcomes(ctx, []string{"app", "diff", name})
	if err != nil {
		log.Warn("Post-update diff failed", "error", err)
		return
	}
	argocd.ReclassifyDiffOutcomes(outcomes)

	for _, o := range outcomes {
		if !o.Succeeded() || !argocd.HasDiff(o) {
			continue
		}
		heading := color.New(color.Bold).Sprintf("=== %s", o.Cluster.Name)
		fmt.Fprintf(os.Stdout, "\n%s\n%s\n", heading, strings.TrimSpace(o.Stdout))
	}
}

func init() {
	appSetTargetCmd.Flags().StringVar(&targetRevision, "revision", "", "target revision to set (branch, tag or commit)")
	appSetTargetCmd.Flags().IntVar(&targetSourceIndex, "source-index", 0, "source to update for multi-source applications (1-based)")
	appSetTargetCmd.Flags().BoolVar(&targetShowDiff, "show-diff", false, "diff the application on every cluster after the update")
	appSetTargetCmd.Flags().BoolVarP(&targetYes, "yes", "y", false, "skip the confirmation prompt")
	_ = appSetTargetCmd.MarkFlagRequired("revision")
}
