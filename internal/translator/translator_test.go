package translator

import (
	"reflect"
	"testing"

	"github.com/estudosdevops/argo-manager/internal/registry"
)

// TestTranslateAppendsServerFlag verifies every invocation targets its own cluster.
func TestTranslateAppendsServerFlag(t *testing.T) {
	clusters := []registry.ClusterContext{
		{Name: "prod-east", Server: "argocd.east.example.com"},
		{Name: "prod-west", Server: "argocd.west.example.com"},
	}

	invocations := Translate("", []string{"app", "list"}, clusters)

	if len(invocations) != 2 {
		t.Fatalf("Expected 2 invocations, got %d", len(invocations))
	}

	want := []string{"app", "list", "--server", "argocd.east.example.com"}
	if !reflect.DeepEqual(invocations[0].Args, want) {
		t.Errorf("Args = %v, want %v", invocations[0].Args, want)
	}
	if invocations[0].Binary != DefaultBinary {
		t.Errorf("Binary = %q, want %q", invocations[0].Binary, DefaultBinary)
	}
	if invocations[1].Args[len(invocations[1].Args)-1] != "argocd.west.example.com" {
		t.Errorf("Second invocation targets %q", invocations[1].Args[len(invocations[1].Args)-1])
	}
}

// TestTranslateConnectionFlags verifies per-context connection options are forwarded.
func TestTranslateConnectionFlags(t *testing.T) {
	clusters := []registry.ClusterContext{
		{Name: "lab", Server: "argocd.lab:8080", GRPCWeb: true, Insecure: true, PlainText: true},
	}

	invocations := Translate("argocd", []string{"version"}, clusters)

	want := []string{"version", "--server", "argocd.lab:8080", "--grpc-web", "--insecure", "--plaintext"}
	if !reflect.DeepEqual(invocations[0].Args, want) {
		t.Errorf("Args = %v, want %v", invocations[0].Args, want)
	}
}

// TestTranslatePreservesClusterOrder verifies invocations come out in input order.
func TestTranslatePreservesClusterOrder(t *testing.T) {
	clusters := []registry.ClusterContext{
		{Name: "c", Server: "c.example.com"},
		{Name: "a", Server: "a.example.com"},
		{Name: "b", Server: "b.example.com"},
	}

	invocations := Translate("", []string{"app", "list"}, clusters)

	for i, inv := range invocations {
		if inv.Cluster.Name != clusters[i].Name {
			t.Errorf("Invocation %d is for %q, want %q", i, inv.Cluster.Name, clusters[i].Name)
		}
	}
}

// TestTranslateDoesNotMutateInput verifies the shared argv is copied per cluster.
func TestTranslateDoesNotMutateInput(t *testing.T) {
	args := []string{"app", "sync", "my-app"}
	clusters := []registry.ClusterContext{
		{Name: "one", Server: "one.example.com"},
		{Name: "two", Server: "two.example.com"},
	}

	Translate("", args, clusters)

	want := []string{"app", "sync", "my-app"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Input args mutated: %v", args)
	}
}

// TestTranslateEmptyClusters verifies no invocations for no clusters.
func TestTranslateEmptyClusters(t *testing.T) {
	invocations := Translate("", []string{"app", "list"}, nil)
	if len(invocations) != 0 {
		t.Errorf("Expected 0 invocations, got %d", len(invocations))
	}
}

// TestInvocationString verifies the log rendering of an invocation.
func TestInvocationString(t *testing.T) {
	inv := Invocation{Binary: "argocd", Args: []string{"app", "list", "--server", "x"}}
	want := "argocd app list --server x"
	if inv.String() != want {
		t.Errorf("String() = %q, want %q", inv.String(), want)
	}
}
