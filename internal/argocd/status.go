package argocd

import (
	"github.com/argoproj/argo-cd/v2/pkg/apis/application/v1alpha1"
)

// StatusSummary counts the problem applications in a listing, matching
// what the per-project status view highlights under its table.
type StatusSummary struct {
	Total     int
	OutOfSync []string
	Degraded  []string
}

// Summarize builds a StatusSummary for a set of applications.
// Degraded collects both Degraded and Missing health states.
func Summarize(apps []v1alpha1.Application) StatusSummary {
	summary := StatusSummary{Total: len(apps)}
	for i := range apps {
		app := &apps[i]
		if SyncStatus(app) == "OutOfSync" {
			summary.OutOfSync = append(summary.OutOfSync, app.Name)
		}
		switch HealthStatus(app) {
		case "Degraded", "Missing":
			summary.Degraded = append(summary.Degraded, app.Name)
		}
	}
	return summary
}
