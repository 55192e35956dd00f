// cmd/project/project.go
package project

import (
	"github.com/spf13/cobra"
)

// ProjectCmd is the parent "project" command.
var ProjectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"proj"},
	Short:   "Work with Argo CD projects across clusters",
}

func init() {
	ProjectCmd.AddCommand(projectListCmd)
	ProjectCmd.AddCommand(projectGetCmd)
	ProjectCmd.AddCommand(projectAppsCmd)
}
