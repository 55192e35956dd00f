// cmd/cluster/cluster.go
package cluster

import (
	"github.com/spf13/cobra"
)

// ClusterCmd is the parent "cluster" command.
var ClusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Inspect the registered Argo CD cluster contexts",
	Long: `Commands for the cluster registry. Contexts are read from the argocd
CLI's own configuration; use 'argocd login' and 'argocd context' to manage
them.`,
}

func init() {
	ClusterCmd.AddCommand(clusterListCmd)
}
