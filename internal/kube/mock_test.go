package kube

import (
	"context"
	"errors"
	"testing"

	"pkt.systems/kubedeck/schema"
)

func TestMockListPods(t *testing.T) {
	client := NewMockClient()
	pods, err := client.ListResources(context.Background(), schema.KindPods, "")
	if err != nil {
		t.Fatalf("list pods: %v", err)
	}
	if len(pods) != 2 {
		t.Fatalf("expected 2 pods, got %d", len(pods))
	}
	if pods[0].Ref.Name != "web-app-1" || pods[0].Status != "Running" {
		t.Fatalf("unexpected first pod: %+v", pods[0])
	}
}

func TestMockListFiltersNamespace(t *testing.T) {
	client := NewMockClient()
	items, err := client.ListResources(context.Background(), schema.KindDaemonSets, "default")
	if err != nil {
		t.Fatalf("list daemonsets: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no daemonsets in default, got %d", len(items))
	}
	items, err = client.ListResources(context.Background(), schema.KindDaemonSets, "kube-system")
	if err != nil {
		t.Fatalf("list daemonsets: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 daemonset in kube-system, got %d", len(items))
	}
}

func TestMockListUnsupportedKind(t *testing.T) {
	client := NewMockClient()
	if _, err := client.ListResources(context.Background(), "Gadgets", ""); !errors.Is(err, schema.ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestMockGetRequiresNamespace(t *testing.T) {
	client := NewMockClient()
	ref := schema.ResourceRef{Kind: schema.KindPods, Name: "web-app-1"}
	if _, err := client.GetResource(context.Background(), ref); !errors.Is(err, schema.ErrNamespaceRequired) {
		t.Fatalf("expected ErrNamespaceRequired, got %v", err)
	}
}

func TestMockGetResourceDetail(t *testing.T) {
	client := NewMockClient()
	ref := schema.ResourceRef{Kind: schema.KindPods, Name: "web-app-1", Namespace: "default"}
	detail, err := client.GetResource(context.Background(), ref)
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	metadata, ok := detail.Object["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("expected metadata map, got %T", detail.Object["metadata"])
	}
	if metadata["name"] != "web-app-1" || metadata["namespace"] != "default" {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}
	if _, ok := metadata["labels"]; !ok {
		t.Fatalf("expected fixture labels in metadata")
	}
}

func TestMockListCRDs(t *testing.T) {
	client := NewMockClient()
	crds, err := client.ListResources(context.Background(), schema.KindCRDs, "")
	if err != nil {
		t.Fatalf("list crds: %v", err)
	}
	if len(crds) != 3 {
		t.Fatalf("expected 3 crds, got %d", len(crds))
	}
	if crds[0].Ref.Name != "certificates.cert-manager.io" || crds[0].Status != "Namespaced" {
		t.Fatalf("unexpected first crd: %+v", crds[0])
	}
}

func TestMockListCRDGroups(t *testing.T) {
	client := NewMockClient()
	groups, err := client.ListCRDGroups(context.Background())
	if err != nil {
		t.Fatalf("list crd groups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Group != "cert-manager.io" || len(groups[0].Resources) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[0].Resources[0].Kind != "Certificate" {
		t.Fatalf("expected kinds sorted, got %+v", groups[0].Resources)
	}
}

func TestMockCustomResources(t *testing.T) {
	client := NewMockClient()
	certs := schema.CRDInfo{
		Group: "cert-manager.io", Kind: "Certificate", Plural: "certificates",
		Version: "v1", Scope: schema.CRDScopeNamespaced,
	}

	items, err := client.ListCustomResources(context.Background(), certs, "")
	if err != nil {
		t.Fatalf("list custom resources: %v", err)
	}
	if len(items) != 1 || items[0].Ref.Name != "web-tls" {
		t.Fatalf("unexpected instances: %+v", items)
	}
	items, err = client.ListCustomResources(context.Background(), certs, "production")
	if err != nil {
		t.Fatalf("list custom resources: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no certificates in production, got %d", len(items))
	}

	detail, err := client.GetCustomResource(context.Background(), certs, "web-tls", "default")
	if err != nil {
		t.Fatalf("get custom resource: %v", err)
	}
	if detail.Object["apiVersion"] != "cert-manager.io/v1" || detail.Object["kind"] != "Certificate" {
		t.Fatalf("unexpected object: %+v", detail.Object)
	}

	if _, err := client.GetCustomResource(context.Background(), certs, "web-tls", ""); !errors.Is(err, schema.ErrNamespaceRequired) {
		t.Fatalf("expected ErrNamespaceRequired, got %v", err)
	}
}

func TestMockStats(t *testing.T) {
	client := NewMockClient()
	stats, err := Stats(context.Background(), client)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalNodes != 2 || stats.ReadyNodes != 2 {
		t.Fatalf("unexpected node counts: %+v", stats)
	}
	if stats.TotalPods != 2 || stats.RunningPods != 2 {
		t.Fatalf("unexpected pod counts: %+v", stats)
	}
	if stats.NamespaceCount != 3 {
		t.Fatalf("expected 3 namespaces, got %d", stats.NamespaceCount)
	}
	if stats.DeploymentCount != 2 || stats.JobCount != 1 {
		t.Fatalf("unexpected workload counts: %+v", stats)
	}
}

func TestMockOverview(t *testing.T) {
	client := NewMockClient()
	overview, err := Overview(context.Background(), client, "gke_project-a_asia-northeast1_cluster-1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Provider != schema.ProviderGKE {
		t.Fatalf("expected gke provider, got %q", overview.Provider)
	}
	if overview.ProjectOrAccount != "project-a" || overview.Region != "asia-northeast1" {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	if overview.ClusterName != "cluster-1" {
		t.Fatalf("expected cluster-1, got %q", overview.ClusterName)
	}
	if overview.ClusterVersion != "1.28" {
		t.Fatalf("expected version 1.28, got %q", overview.ClusterVersion)
	}
}
