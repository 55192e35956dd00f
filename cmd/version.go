package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// versionCmd represents the "version" command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the argo-manager version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("argo-manager", version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
