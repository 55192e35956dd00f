// cmd/cluster/list.go
package cluster

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/estudosdevops/argo-manager/internal/cli"
	"github.com/estudosdevops/argo-manager/internal/logger"
	"github.com/estudosdevops/argo-manager/internal/presenter"
)

var detailed bool

// clusterListCmd represents the "argo-manager cluster list" command.
var clusterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered cluster contexts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		reg := cli.Registry(cmd)
		contexts, err := reg.List()
		if err != nil {
			log.Error("Failed to load cluster contexts", "error", err)
			return err
		}

		header := []string{"NAME", "SERVER"}
		if detailed {
			header = []string{"NAME", "SERVER", "GRPC-WEB", "INSECURE", "NAMESPACE", "PROJECT"}
		}

		var rows [][]string
		for _, c := range contexts {
			if detailed {
				rows = append(rows, []string{
					c.Name,
					c.Server,
					boolCell(c.GRPCWeb),
					boolCell(c.Insecure),
					c.Namespace,
					c.Project,
				})
			} else {
				rows = append(rows, []string{c.Name, c.Server})
			}
		}

		presenter.PrintTable(os.Stdout, header, rows)
		return nil
	},
}

func boolCell(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	clusterListCmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "show connection options and per-cluster defaults")
}
