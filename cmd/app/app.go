// cmd/app/app.go
package app

import (
	"github.com/spf13/cobra"
)

// AppCmd is the parent "app" command.
var AppCmd = &cobra.Command{
	Use:   "app",
	Short: "Work with Argo CD applications across clusters",
	Long: `Application commands fan the equivalent argocd invocation out to every
selected cluster and merge the results into a single view.`,
}

func init() {
	AppCmd.AddCommand(appListCmd)
	AppCmd.AddCommand(appGetCmd)
	AppCmd.AddCommand(appSyncCmd)
	AppCmd.AddCommand(appSyncMultiCmd)
	AppCmd.AddCommand(appSearchCmd)
	AppCmd.AddCommand(appDiffCmd)
	AppCmd.AddCommand(appOverviewCmd)
	AppCmd.AddCommand(appSetTargetCmd)
}
