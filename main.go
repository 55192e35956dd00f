package main

import (
	"errors"
	"os"

	"github.com/estudosdevops/argo-manager/cmd"
	"github.com/estudosdevops/argo-manager/internal/report"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Partial failure (some clusters failed) and invocation errors get
		// distinct exit codes so scripts can tell them apart.
		if errors.Is(err, report.ErrClustersFailed) {
			os.Exit(report.ExitClustersFailed)
		}
		os.Exit(report.ExitInvocationErr)
	}
}
