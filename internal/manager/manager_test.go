package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/registry"
	"github.com/estudosdevops/argo-manager/internal/report"
)

// testRegistry builds a registry over a throwaway argocd config file.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	config := `contexts:
- name: prod-east
  server: argocd.east.example.com
- name: prod-west
  server: argocd.west.example.com
- name: staging
  server: argocd.staging.example.com
`
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return registry.New(path, nil)
}

// TestManagerClusters verifies the selector flows through to the registry.
func TestManagerClusters(t *testing.T) {
	m := New(testRegistry(t), Options{Selector: "prod-*"})

	clusters, err := m.Clusters()
	if err != nil {
		t.Fatalf("Clusters() error: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Name != "prod-east" || clusters[1].Name != "prod-west" {
		t.Errorf("Clusters = %q, %q", clusters[0].Name, clusters[1].Name)
	}
}

// TestManagerClustersUnknown verifies selector errors abort before dispatch.
func TestManagerClustersUnknown(t *testing.T) {
	m := New(testRegistry(t), Options{Selector: "nope"})

	if _, err := m.Run(context.Background(), []string{"app", "list"}); err == nil {
		t.Fatal("Expected resolve error, got nil")
	}
}

// TestManagerRunAggregates verifies a full dispatch produces one ordered
// result per selected cluster and a partial-failure error. The configured
// binary does not exist, so every outcome is a spawn error.
func TestManagerRunAggregates(t *testing.T) {
	m := New(testRegistry(t), Options{
		Selector: "all",
		Timeout:  5 * time.Second,
		Binary:   "argo-manager-test-missing-binary",
	})

	rep, err := m.Run(context.Background(), []string{"version"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if rep.Total != 3 {
		t.Fatalf("Total = %d, want 3", rep.Total)
	}
	for i, want := range []string{"prod-east", "prod-west", "staging"} {
		if rep.Results[i].Cluster.Name != want {
			t.Errorf("Results[%d] = %q, want %q", i, rep.Results[i].Cluster.Name, want)
		}
		if rep.Results[i].Status != executor.StatusSpawnError {
			t.Errorf("Results[%d] status = %s, want SPAWN_ERROR", i, rep.Results[i].Status)
		}
	}

	if !errors.Is(rep.Err(), report.ErrClustersFailed) {
		t.Errorf("Err() = %v, want ErrClustersFailed", rep.Err())
	}
}
