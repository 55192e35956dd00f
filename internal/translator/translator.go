// Package translator turns an abstract argocd sub-command plus a set of
// resolved cluster contexts into one concrete CLI invocation per cluster.
package translator

import (
	"strings"

	"github.com/estudosdevops/argo-manager/internal/registry"
)

// DefaultBinary is the underlying CLI executed per cluster.
const DefaultBinary = "argocd"

// Invocation is one concrete execution request against a single cluster.
// Created per dispatch and never mutated afterwards.
type Invocation struct {
	Cluster registry.ClusterContext
	Binary  string
	Args    []string
}

// String renders the full command line, for logging.
func (inv Invocation) String() string {
	return inv.Binary + " " + strings.Join(inv.Args, " ")
}

// Translate builds one Invocation per cluster context, in input order.
//
// The argument vector is the user's sub-command argv followed by the
// connection arguments the underlying CLI accepts on any sub-command:
// --server plus the context's grpc-web/insecure/plaintext options.
// Login-only flags (--sso and friends) are never forwarded. Pure function:
// no reordering, no deduplication beyond what the registry guarantees.
func Translate(binary string, args []string, clusters []registry.ClusterContext) []Invocation {
	if binary == "" {
		binary = DefaultBinary
	}

	invocations := make([]Invocation, 0, len(clusters))
	for _, cluster := range clusters {
		argv := make([]string, 0, len(args)+5)
		argv = append(argv, args...)
		argv = append(argv, "--server", cluster.Server)
		if cluster.GRPCWeb {
			argv = append(argv, "--grpc-web")
		}
		if cluster.Insecure {
			argv = append(argv, "--insecure")
		}
		if cluster.PlainText {
			argv = append(argv, "--plaintext")
		}

		invocations = append(invocations, Invocation{
			Cluster: cluster,
			Binary:  binary,
			Args:    argv,
		})
	}

	return invocations
}
