package schema

import "time"

// Namespaced resource kinds served by the cluster clients.
const (
	KindPods                     ResourceKind = "Pods"
	KindDeployments              ResourceKind = "Deployments"
	KindServices                 ResourceKind = "Services"
	KindReplicaSets              ResourceKind = "ReplicaSets"
	KindStatefulSets             ResourceKind = "StatefulSets"
	KindDaemonSets               ResourceKind = "DaemonSets"
	KindJobs                     ResourceKind = "Jobs"
	KindCronJobs                 ResourceKind = "CronJobs"
	KindConfigMaps               ResourceKind = "ConfigMaps"
	KindSecrets                  ResourceKind = "Secrets"
	KindIngresses                ResourceKind = "Ingresses"
	KindNetworkPolicies          ResourceKind = "NetworkPolicies"
	KindPersistentVolumeClaims   ResourceKind = "PersistentVolumeClaims"
	KindRoles                    ResourceKind = "Roles"
	KindRoleBindings             ResourceKind = "RoleBindings"
	KindServiceAccounts          ResourceKind = "ServiceAccounts"
	KindEndpoints                ResourceKind = "Endpoints"
	KindEvents                   ResourceKind = "Events"
	KindHorizontalPodAutoscalers ResourceKind = "HorizontalPodAutoscalers"
	KindLimitRanges              ResourceKind = "LimitRanges"
	KindResourceQuotas           ResourceKind = "ResourceQuotas"
)

// Cluster-scoped resource kinds.
const (
	KindNodes               ResourceKind = "Nodes"
	KindNamespaces          ResourceKind = "Namespaces"
	KindPersistentVolumes   ResourceKind = "PersistentVolumes"
	KindStorageClasses      ResourceKind = "StorageClasses"
	KindClusterRoles        ResourceKind = "ClusterRoles"
	KindClusterRoleBindings ResourceKind = "ClusterRoleBindings"
	KindCRDs                ResourceKind = "CRDs"
)

var namespacedKinds = []ResourceKind{
	KindPods, KindDeployments, KindServices, KindReplicaSets,
	KindStatefulSets, KindDaemonSets, KindJobs, KindCronJobs,
	KindConfigMaps, KindSecrets, KindIngresses, KindNetworkPolicies,
	KindPersistentVolumeClaims, KindRoles, KindRoleBindings,
	KindServiceAccounts, KindEndpoints, KindEvents,
	KindHorizontalPodAutoscalers, KindLimitRanges, KindResourceQuotas,
}

var clusterKinds = []ResourceKind{
	KindNodes, KindNamespaces, KindPersistentVolumes,
	KindStorageClasses, KindClusterRoles, KindClusterRoleBindings,
	KindCRDs,
}

// AllKinds returns every supported resource kind, namespaced first.
func AllKinds() []ResourceKind {
	out := make([]ResourceKind, 0, len(namespacedKinds)+len(clusterKinds))
	out = append(out, namespacedKinds...)
	out = append(out, clusterKinds...)
	return out
}

// IsNamespaced reports whether the kind is namespace scoped.
func (k ResourceKind) IsNamespaced() bool {
	for _, kind := range namespacedKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Known reports whether the kind is served by the cluster clients.
func (k ResourceKind) Known() bool {
	if k.IsNamespaced() {
		return true
	}
	for _, kind := range clusterKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// CRDScopeNamespaced is the CustomResourceDefinition spec.scope value for
// namespace-scoped custom resources.
const CRDScopeNamespaced = "Namespaced"

// CRDInfo describes one served custom resource definition, enough to address
// its instances through the dynamic API.
type CRDInfo struct {
	Group   string
	Kind    string
	Plural  string
	Version string
	Scope   string
}

// IsNamespaced reports whether the definition's instances live in namespaces.
func (c CRDInfo) IsNamespaced() bool {
	return c.Scope == CRDScopeNamespaced
}

// CRDGroup collects the definitions of one API group, sorted by kind.
type CRDGroup struct {
	Group     string
	Resources []CRDInfo
}

// ResourceRef addresses a single resource in a cluster.
type ResourceRef struct {
	Kind      ResourceKind
	Name      string
	Namespace string
}

// ResourceSummary is the table row for a listed resource.
type ResourceSummary struct {
	Ref     ResourceRef
	Status  string
	Ready   string
	Created time.Time
	Labels  map[string]string
}

// ResourceDetail carries the full object for the detail inspector.
type ResourceDetail struct {
	Ref    ResourceRef
	Object map[string]any
}

// ClusterOverview summarizes a cluster for the overview header.
type ClusterOverview struct {
	Provider         Provider
	ProjectOrAccount string
	Region           string
	ClusterName      string
	ClusterVersion   string
}

// ClusterStats carries headline counts for a cluster.
type ClusterStats struct {
	TotalNodes      int
	ReadyNodes      int
	TotalPods       int
	RunningPods     int
	NamespaceCount  int
	DeploymentCount int
	JobCount        int
}

// WatchEventType describes a change observed by a resource watch.
type WatchEventType string

const (
	// WatchAdded indicates a resource appeared.
	WatchAdded WatchEventType = "added"
	// WatchModified indicates a resource changed.
	WatchModified WatchEventType = "modified"
	// WatchDeleted indicates a resource disappeared.
	WatchDeleted WatchEventType = "deleted"
)

// WatchEvent is delivered to subscribers of a resource watch.
type WatchEvent struct {
	WatchID WatchID
	Context ContextID
	Kind    ResourceKind
	Type    WatchEventType
	Summary ResourceSummary
}
