package kube

import (
	"context"
	"fmt"
	"time"

	"pkt.systems/kubedeck/schema"
)

// MockClient serves deterministic fixture data so the UI can be exercised
// without a reachable cluster. Every context gets the same fixtures.
type MockClient struct {
	fixtures  map[schema.ResourceKind][]schema.ResourceSummary
	crdGroups []schema.CRDGroup
	custom    map[string][]schema.ResourceSummary
}

// NewMockClient constructs a fixture-backed client.
func NewMockClient() *MockClient {
	return &MockClient{
		fixtures:  mockFixtures(),
		crdGroups: mockCRDGroups(),
		custom:    mockCustomResources(),
	}
}

func mockTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func mockFixtures() map[schema.ResourceKind][]schema.ResourceSummary {
	ref := func(kind schema.ResourceKind, name, namespace string) schema.ResourceRef {
		return schema.ResourceRef{Kind: kind, Name: name, Namespace: namespace}
	}
	return map[schema.ResourceKind][]schema.ResourceSummary{
		schema.KindPods: {
			{
				Ref: ref(schema.KindPods, "web-app-1", "default"), Status: "Running", Ready: "1/1",
				Created: mockTime("2024-01-15T10:00:00Z"),
				Labels:  map[string]string{"app": "web", "version": "1.0"},
			},
			{
				Ref: ref(schema.KindPods, "api-server-1", "default"), Status: "Running", Ready: "1/1",
				Created: mockTime("2024-01-15T09:30:00Z"),
				Labels:  map[string]string{"app": "api", "version": "2.0"},
			},
		},
		schema.KindDeployments: {
			{
				Ref: ref(schema.KindDeployments, "web-deployment", "default"), Status: "Available", Ready: "3/3",
				Created: mockTime("2024-01-15T08:00:00Z"),
				Labels:  map[string]string{"app": "web"},
			},
			{
				Ref: ref(schema.KindDeployments, "api-deployment", "default"), Status: "Available", Ready: "2/2",
				Created: mockTime("2024-01-15T07:00:00Z"),
				Labels:  map[string]string{"app": "api"},
			},
		},
		schema.KindServices: {
			{
				Ref: ref(schema.KindServices, "web-service", "default"), Status: "ClusterIP",
				Created: mockTime("2024-01-15T08:00:00Z"),
				Labels:  map[string]string{"app": "web"},
			},
		},
		schema.KindReplicaSets: {
			{
				Ref: ref(schema.KindReplicaSets, "web-rs", "default"), Status: "Available", Ready: "3/3",
				Created: mockTime("2024-01-15T08:00:00Z"),
				Labels:  map[string]string{"app": "web"},
			},
		},
		schema.KindStatefulSets: {
			{
				Ref: ref(schema.KindStatefulSets, "db-statefulset", "default"), Status: "Available", Ready: "1/1",
				Created: mockTime("2024-01-10T00:00:00Z"),
				Labels:  map[string]string{"app": "db"},
			},
		},
		schema.KindDaemonSets: {
			{
				Ref: ref(schema.KindDaemonSets, "logging-daemonset", "kube-system"), Status: "Available", Ready: "2/2",
				Created: mockTime("2024-01-01T00:00:00Z"),
				Labels:  map[string]string{"app": "logging"},
			},
		},
		schema.KindJobs: {
			{
				Ref: ref(schema.KindJobs, "backup-job", "default"), Status: "Complete",
				Created: mockTime("2024-01-15T09:00:00Z"),
			},
		},
		schema.KindCronJobs: {
			{
				Ref: ref(schema.KindCronJobs, "daily-backup", "default"), Status: "Active",
				Created: mockTime("2024-01-01T00:00:00Z"),
			},
		},
		schema.KindConfigMaps: {
			{
				Ref:     ref(schema.KindConfigMaps, "app-config", "default"),
				Created: mockTime("2024-01-15T08:00:00Z"),
			},
		},
		schema.KindSecrets: {
			{
				Ref:     ref(schema.KindSecrets, "app-secret", "default"),
				Created: mockTime("2024-01-15T08:00:00Z"),
			},
		},
		schema.KindPersistentVolumeClaims: {
			{
				Ref: ref(schema.KindPersistentVolumeClaims, "db-pvc", "default"), Status: "Bound",
				Created: mockTime("2024-01-10T00:00:00Z"),
			},
		},
		schema.KindServiceAccounts: {
			{
				Ref:     ref(schema.KindServiceAccounts, "default", "default"),
				Created: mockTime("2024-01-01T00:00:00Z"),
			},
			{
				Ref:     ref(schema.KindServiceAccounts, "app-service-account", "default"),
				Created: mockTime("2024-01-15T08:00:00Z"),
			},
		},
		schema.KindEndpoints: {
			{
				Ref:     ref(schema.KindEndpoints, "web-service", "default"),
				Created: mockTime("2024-01-15T08:00:00Z"),
			},
		},
		schema.KindNodes: {
			{
				Ref: ref(schema.KindNodes, "node-1", ""), Status: "Ready",
				Created: mockTime("2024-01-01T00:00:00Z"),
				Labels:  map[string]string{"kubernetes.io/os": "linux"},
			},
			{
				Ref: ref(schema.KindNodes, "node-2", ""), Status: "Ready",
				Created: mockTime("2024-01-01T00:00:00Z"),
				Labels:  map[string]string{"kubernetes.io/os": "linux"},
			},
		},
		schema.KindNamespaces: {
			{
				Ref: ref(schema.KindNamespaces, "default", ""), Status: "Active",
				Created: mockTime("2024-01-01T00:00:00Z"),
			},
			{
				Ref: ref(schema.KindNamespaces, "kube-system", ""), Status: "Active",
				Created: mockTime("2024-01-01T00:00:00Z"),
			},
			{
				Ref: ref(schema.KindNamespaces, "production", ""), Status: "Active",
				Created: mockTime("2024-01-05T00:00:00Z"),
			},
		},
		schema.KindPersistentVolumes: {
			{
				Ref: ref(schema.KindPersistentVolumes, "pv-1", ""), Status: "Bound",
				Created: mockTime("2024-01-10T00:00:00Z"),
			},
		},
		schema.KindStorageClasses: {
			{
				Ref:     ref(schema.KindStorageClasses, "sc-1", ""),
				Created: mockTime("2024-01-01T00:00:00Z"),
			},
		},
		schema.KindCRDs: {
			{
				Ref: ref(schema.KindCRDs, "certificates.cert-manager.io", ""), Status: "Namespaced",
				Created: mockTime("2024-01-02T00:00:00Z"),
			},
			{
				Ref: ref(schema.KindCRDs, "clusterissuers.cert-manager.io", ""), Status: "Cluster",
				Created: mockTime("2024-01-02T00:00:00Z"),
			},
			{
				Ref: ref(schema.KindCRDs, "servicemonitors.monitoring.coreos.com", ""), Status: "Namespaced",
				Created: mockTime("2024-01-03T00:00:00Z"),
			},
		},
	}
}

func mockCRDGroups() []schema.CRDGroup {
	return []schema.CRDGroup{
		{
			Group: "cert-manager.io",
			Resources: []schema.CRDInfo{
				{Group: "cert-manager.io", Kind: "Certificate", Plural: "certificates", Version: "v1", Scope: schema.CRDScopeNamespaced},
				{Group: "cert-manager.io", Kind: "ClusterIssuer", Plural: "clusterissuers", Version: "v1", Scope: "Cluster"},
			},
		},
		{
			Group: "monitoring.coreos.com",
			Resources: []schema.CRDInfo{
				{Group: "monitoring.coreos.com", Kind: "ServiceMonitor", Plural: "servicemonitors", Version: "v1", Scope: schema.CRDScopeNamespaced},
			},
		},
	}
}

func mockCustomResources() map[string][]schema.ResourceSummary {
	return map[string][]schema.ResourceSummary{
		"certificates.cert-manager.io": {
			{
				Ref:     schema.ResourceRef{Kind: "Certificate", Name: "web-tls", Namespace: "default"},
				Status:  "Ready",
				Created: mockTime("2024-01-12T00:00:00Z"),
			},
		},
		"clusterissuers.cert-manager.io": {
			{
				Ref:     schema.ResourceRef{Kind: "ClusterIssuer", Name: "letsencrypt-prod"},
				Status:  "Ready",
				Created: mockTime("2024-01-02T00:00:00Z"),
			},
		},
		"servicemonitors.monitoring.coreos.com": {
			{
				Ref:     schema.ResourceRef{Kind: "ServiceMonitor", Name: "web-metrics", Namespace: "default"},
				Created: mockTime("2024-01-12T00:00:00Z"),
			},
		},
	}
}

func (m *MockClient) ListResources(ctx context.Context, kind schema.ResourceKind, namespace string) ([]schema.ResourceSummary, error) {
	if !kind.Known() {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedKind, kind)
	}
	items := m.fixtures[kind]
	out := make([]schema.ResourceSummary, 0, len(items))
	for _, item := range items {
		if namespace != "" && kind.IsNamespaced() && item.Ref.Namespace != namespace {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *MockClient) GetResource(ctx context.Context, ref schema.ResourceRef) (schema.ResourceDetail, error) {
	if !ref.Kind.Known() {
		return schema.ResourceDetail{}, fmt.Errorf("%w: %s", schema.ErrUnsupportedKind, ref.Kind)
	}
	if ref.Kind.IsNamespaced() && ref.Namespace == "" {
		return schema.ResourceDetail{}, fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, ref.Kind)
	}
	metadata := map[string]any{
		"name": ref.Name,
		"uid":  fmt.Sprintf("%s-%s-uid", ref.Kind, ref.Name),
	}
	if ref.Namespace != "" {
		metadata["namespace"] = ref.Namespace
	}
	for _, item := range m.fixtures[ref.Kind] {
		if item.Ref.Name == ref.Name && item.Ref.Namespace == ref.Namespace {
			if len(item.Labels) > 0 {
				labels := map[string]any{}
				for k, v := range item.Labels {
					labels[k] = v
				}
				metadata["labels"] = labels
			}
			metadata["creationTimestamp"] = item.Created.Format(time.RFC3339)
			break
		}
	}
	return schema.ResourceDetail{
		Ref: ref,
		Object: map[string]any{
			"kind":     string(ref.Kind),
			"metadata": metadata,
		},
	}, nil
}

func (m *MockClient) ListCRDGroups(ctx context.Context) ([]schema.CRDGroup, error) {
	return m.crdGroups, nil
}

func (m *MockClient) ListCustomResources(ctx context.Context, crd schema.CRDInfo, namespace string) ([]schema.ResourceSummary, error) {
	items := m.custom[crd.Plural+"."+crd.Group]
	out := make([]schema.ResourceSummary, 0, len(items))
	for _, item := range items {
		if namespace != "" && crd.IsNamespaced() && item.Ref.Namespace != namespace {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *MockClient) GetCustomResource(ctx context.Context, crd schema.CRDInfo, name, namespace string) (schema.ResourceDetail, error) {
	if crd.IsNamespaced() && namespace == "" {
		return schema.ResourceDetail{}, fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, crd.Kind)
	}
	for _, item := range m.custom[crd.Plural+"."+crd.Group] {
		if item.Ref.Name != name || item.Ref.Namespace != namespace {
			continue
		}
		metadata := map[string]any{
			"name": name,
			"uid":  fmt.Sprintf("%s-%s-uid", crd.Kind, name),
		}
		if namespace != "" {
			metadata["namespace"] = namespace
		}
		return schema.ResourceDetail{
			Ref: item.Ref,
			Object: map[string]any{
				"apiVersion": crd.Group + "/" + crd.Version,
				"kind":       crd.Kind,
				"metadata":   metadata,
			},
		}, nil
	}
	return schema.ResourceDetail{}, fmt.Errorf("%s %q not found", crd.Kind, name)
}

func (m *MockClient) ServerVersion(ctx context.Context) (string, error) {
	return "1.28", nil
}

func (m *MockClient) DeleteResource(ctx context.Context, ref schema.ResourceRef) error {
	if !ref.Kind.Known() {
		return fmt.Errorf("%w: %s", schema.ErrUnsupportedKind, ref.Kind)
	}
	if ref.Kind.IsNamespaced() && ref.Namespace == "" {
		return fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, ref.Kind)
	}
	return nil
}

func (m *MockClient) RolloutRestartDeployment(ctx context.Context, name, namespace string) error {
	if namespace == "" {
		return fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, schema.KindDeployments)
	}
	return nil
}
