// Package argocd decodes the underlying CLI's JSON output into the typed
// Argo CD API structures and provides display helpers for them.
package argocd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/argoproj/argo-cd/v2/pkg/apis/application/v1alpha1"
	"github.com/fatih/color"
)

// ParseApplicationList decodes `argocd app list -o json` output.
// Empty output (no applications) yields an empty slice.
func ParseApplicationList(data []byte) ([]v1alpha1.Application, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var apps []v1alpha1.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("failed to parse application list: %w", err)
	}
	return apps, nil
}

// ParseApplication decodes `argocd app get <name> -o json` output.
func ParseApplication(data []byte) (*v1alpha1.Application, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty application output")
	}

	var app v1alpha1.Application
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("failed to parse application: %w", err)
	}
	return &app, nil
}

// FilterApplications returns the applications whose name contains query,
// matched case-insensitively.
func FilterApplications(apps []v1alpha1.Application, query string) []v1alpha1.Application {
	query = strings.ToLower(query)

	var matches []v1alpha1.Application
	for i := range apps {
		if strings.Contains(strings.ToLower(apps[i].Name), query) {
			matches = append(matches, apps[i])
		}
	}
	return matches
}

// ParseProject decodes `argocd proj get <name> -o json` output.
func ParseProject(data []byte) (*v1alpha1.AppProject, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty project output")
	}

	var project v1alpha1.AppProject
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &project, nil
}

// ParseProjectList decodes `argocd proj list -o json` output.
func ParseProjectList(data []byte) ([]v1alpha1.AppProject, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var projects []v1alpha1.AppProject
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse project list: %w", err)
	}
	return projects, nil
}

// TargetRevisions returns one "repo@revision" string per application source.
// Applications may carry a single source or a list of sources.
func TargetRevisions(app *v1alpha1.Application) []string {
	sources := app.Spec.GetSources()

	targets := make([]string, 0, len(sources))
	for _, s := range sources {
		repo := s.RepoURL
		if repo == "" {
			repo = s.Chart
		}
		if repo == "" {
			repo = s.Path
		}

		rev := s.TargetRevision
		if rev == "" {
			rev = s.Ref
		}

		switch {
		case repo != "" && rev != "":
			targets = append(targets, repo+"@"+rev)
		case repo != "":
			targets = append(targets, repo)
		case rev != "":
			targets = append(targets, rev)
		default:
			targets = append(targets, "<unknown>")
		}
	}
	return targets
}

// SyncStatus returns the application's sync status, "Unknown" when absent.
func SyncStatus(app *v1alpha1.Application) string {
	if app.Status.Sync.Status == "" {
		return string(v1alpha1.SyncStatusCodeUnknown)
	}
	return string(app.Status.Sync.Status)
}

// HealthStatus returns the application's health status, "Unknown" when absent.
func HealthStatus(app *v1alpha1.Application) string {
	if app.Status.Health.Status == "" {
		return "Unknown"
	}
	return string(app.Status.Health.Status)
}

// ColorSyncStatus renders a sync status with the conventional color.
func ColorSyncStatus(status string) string {
	switch status {
	case "Synced":
		return color.GreenString(status)
	case "OutOfSync":
		return color.YellowString(status)
	default:
		return status
	}
}

// ColorHealthStatus renders a health status with the conventional color.
func ColorHealthStatus(status string) string {
	switch status {
	case "Healthy":
		return color.GreenString(status)
	case "Progressing":
		return color.BlueString(status)
	case "Suspended":
		return color.YellowString(status)
	case "Degraded", "Missing":
		return color.RedString(status)
	default:
		return status
	}
}
