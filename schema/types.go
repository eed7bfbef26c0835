package schema

// ContextID identifies a connection target (a kubeconfig context).
type ContextID string

// ContextName is the raw context name as it appears in the kubeconfig.
type ContextName string

// PanelID identifies a workspace panel.
type PanelID string

// TabID identifies a tab within a panel. Tab ids are derived from
// (PanelID, ContextID) and are regenerated when a tab changes panels.
type TabID string

// SessionID identifies a terminal session.
type SessionID string

// WatchID identifies a running resource watch.
type WatchID string

// NodeID identifies a node in the connection tree.
type NodeID string

// ResourceKind names a cluster resource kind ("Pods", "Deployments", ...).
type ResourceKind string

// Provider identifies the managed-cluster flavor a context points at.
type Provider string

const (
	// ProviderGKE marks Google Kubernetes Engine contexts.
	ProviderGKE Provider = "gke"
	// ProviderEKS marks Amazon EKS contexts.
	ProviderEKS Provider = "eks"
	// ProviderAKS marks Azure AKS contexts.
	ProviderAKS Provider = "aks"
	// ProviderLocal marks local development clusters.
	ProviderLocal Provider = "local"
	// ProviderUnknown marks contexts with no recognizable naming scheme.
	ProviderUnknown Provider = "unknown"
)

// ClusterContext describes a reachable cluster endpoint. Values are supplied
// by the kubeconfig and are immutable once listed.
type ClusterContext struct {
	ID       ContextID
	Name     ContextName
	Provider Provider
	Region   string
	Account  string
	Cluster  string
}

// ThemeName identifies a UI theme.
type ThemeName string
