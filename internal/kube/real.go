package kube

import (
	"context"
	"fmt"
	"sort"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	k8sschema "k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/clientcmd"

	"pkt.systems/kubedeck/schema"
)

var kindGVRs = map[schema.ResourceKind]k8sschema.GroupVersionResource{
	schema.KindPods:                     {Version: "v1", Resource: "pods"},
	schema.KindDeployments:              {Group: "apps", Version: "v1", Resource: "deployments"},
	schema.KindServices:                 {Version: "v1", Resource: "services"},
	schema.KindReplicaSets:              {Group: "apps", Version: "v1", Resource: "replicasets"},
	schema.KindStatefulSets:             {Group: "apps", Version: "v1", Resource: "statefulsets"},
	schema.KindDaemonSets:               {Group: "apps", Version: "v1", Resource: "daemonsets"},
	schema.KindJobs:                     {Group: "batch", Version: "v1", Resource: "jobs"},
	schema.KindCronJobs:                 {Group: "batch", Version: "v1", Resource: "cronjobs"},
	schema.KindConfigMaps:               {Version: "v1", Resource: "configmaps"},
	schema.KindSecrets:                  {Version: "v1", Resource: "secrets"},
	schema.KindIngresses:                {Group: "networking.k8s.io", Version: "v1", Resource: "ingresses"},
	schema.KindNetworkPolicies:          {Group: "networking.k8s.io", Version: "v1", Resource: "networkpolicies"},
	schema.KindPersistentVolumeClaims:   {Version: "v1", Resource: "persistentvolumeclaims"},
	schema.KindRoles:                    {Group: "rbac.authorization.k8s.io", Version: "v1", Resource: "roles"},
	schema.KindRoleBindings:             {Group: "rbac.authorization.k8s.io", Version: "v1", Resource: "rolebindings"},
	schema.KindServiceAccounts:          {Version: "v1", Resource: "serviceaccounts"},
	schema.KindEndpoints:                {Version: "v1", Resource: "endpoints"},
	schema.KindEvents:                   {Version: "v1", Resource: "events"},
	schema.KindHorizontalPodAutoscalers: {Group: "autoscaling", Version: "v2", Resource: "horizontalpodautoscalers"},
	schema.KindLimitRanges:              {Version: "v1", Resource: "limitranges"},
	schema.KindResourceQuotas:           {Version: "v1", Resource: "resourcequotas"},
	schema.KindNodes:                    {Version: "v1", Resource: "nodes"},
	schema.KindNamespaces:               {Version: "v1", Resource: "namespaces"},
	schema.KindPersistentVolumes:        {Version: "v1", Resource: "persistentvolumes"},
	schema.KindStorageClasses:           {Group: "storage.k8s.io", Version: "v1", Resource: "storageclasses"},
	schema.KindClusterRoles:             {Group: "rbac.authorization.k8s.io", Version: "v1", Resource: "clusterroles"},
	schema.KindClusterRoleBindings:      {Group: "rbac.authorization.k8s.io", Version: "v1", Resource: "clusterrolebindings"},
	schema.KindCRDs:                     {Group: "apiextensions.k8s.io", Version: "v1", Resource: "customresourcedefinitions"},
}

// realClient serves every kind through the dynamic client so one code path
// covers the whole GVR table.
type realClient struct {
	dyn   dynamic.Interface
	disco discovery.DiscoveryInterface
}

// NewClient builds a cluster client for the given kubeconfig context.
// An empty path falls back to the default kubeconfig loading rules.
func NewClient(contextName schema.ContextName, kubeconfigPath string) (Client, error) {
	loading := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loading = &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	}
	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = string(contextName)
	}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loading, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrClientUnavailable, err)
	}
	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrClientUnavailable, err)
	}
	disco, err := discovery.NewDiscoveryClientForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrClientUnavailable, err)
	}
	return &realClient{dyn: dyn, disco: disco}, nil
}

func (r *realClient) ListResources(ctx context.Context, kind schema.ResourceKind, namespace string) ([]schema.ResourceSummary, error) {
	gvr, ok := kindGVRs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedKind, kind)
	}
	var (
		list *unstructured.UnstructuredList
		err  error
	)
	if kind.IsNamespaced() && namespace != "" {
		list, err = r.dyn.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
	} else {
		list, err = r.dyn.Resource(gvr).List(ctx, metav1.ListOptions{})
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	summaries := make([]schema.ResourceSummary, 0, len(list.Items))
	for i := range list.Items {
		summaries = append(summaries, summarize(kind, &list.Items[i]))
	}
	return summaries, nil
}

func (r *realClient) GetResource(ctx context.Context, ref schema.ResourceRef) (schema.ResourceDetail, error) {
	gvr, ok := kindGVRs[ref.Kind]
	if !ok {
		return schema.ResourceDetail{}, fmt.Errorf("%w: %s", schema.ErrUnsupportedKind, ref.Kind)
	}
	if ref.Kind.IsNamespaced() && ref.Namespace == "" {
		return schema.ResourceDetail{}, fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, ref.Kind)
	}
	var (
		obj *unstructured.Unstructured
		err error
	)
	if ref.Kind.IsNamespaced() {
		obj, err = r.dyn.Resource(gvr).Namespace(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	} else {
		obj, err = r.dyn.Resource(gvr).Get(ctx, ref.Name, metav1.GetOptions{})
	}
	if err != nil {
		return schema.ResourceDetail{}, fmt.Errorf("get %s %s: %w", ref.Kind, ref.Name, err)
	}
	return schema.ResourceDetail{Ref: ref, Object: obj.Object}, nil
}

// ListCRDGroups lists the cluster's CustomResourceDefinitions and groups
// their served versions by API group.
func (r *realClient) ListCRDGroups(ctx context.Context) ([]schema.CRDGroup, error) {
	gvr := kindGVRs[schema.KindCRDs]
	list, err := r.dyn.Resource(gvr).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list crds: %w", err)
	}
	byGroup := make(map[string][]schema.CRDInfo)
	for i := range list.Items {
		info := crdInfo(&list.Items[i])
		byGroup[info.Group] = append(byGroup[info.Group], info)
	}
	return crdGroups(byGroup), nil
}

func (r *realClient) ListCustomResources(ctx context.Context, crd schema.CRDInfo, namespace string) ([]schema.ResourceSummary, error) {
	gvr := customResourceGVR(crd)
	var (
		list *unstructured.UnstructuredList
		err  error
	)
	if crd.IsNamespaced() && namespace != "" {
		list, err = r.dyn.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
	} else {
		list, err = r.dyn.Resource(gvr).List(ctx, metav1.ListOptions{})
	}
	if err != nil {
		return nil, fmt.Errorf("list %s.%s: %w", crd.Plural, crd.Group, err)
	}
	summaries := make([]schema.ResourceSummary, 0, len(list.Items))
	for i := range list.Items {
		summaries = append(summaries, summarize(schema.ResourceKind(crd.Kind), &list.Items[i]))
	}
	return summaries, nil
}

func (r *realClient) GetCustomResource(ctx context.Context, crd schema.CRDInfo, name, namespace string) (schema.ResourceDetail, error) {
	if crd.IsNamespaced() && namespace == "" {
		return schema.ResourceDetail{}, fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, crd.Kind)
	}
	gvr := customResourceGVR(crd)
	var (
		obj *unstructured.Unstructured
		err error
	)
	if crd.IsNamespaced() {
		obj, err = r.dyn.Resource(gvr).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
	} else {
		obj, err = r.dyn.Resource(gvr).Get(ctx, name, metav1.GetOptions{})
	}
	if err != nil {
		return schema.ResourceDetail{}, fmt.Errorf("get %s %s: %w", crd.Kind, name, err)
	}
	ref := schema.ResourceRef{Kind: schema.ResourceKind(crd.Kind), Name: name, Namespace: namespace}
	return schema.ResourceDetail{Ref: ref, Object: obj.Object}, nil
}

func customResourceGVR(crd schema.CRDInfo) k8sschema.GroupVersionResource {
	return k8sschema.GroupVersionResource{Group: crd.Group, Version: crd.Version, Resource: crd.Plural}
}

// crdInfo extracts the addressing fields from a CustomResourceDefinition
// object, picking the first served version.
func crdInfo(obj *unstructured.Unstructured) schema.CRDInfo {
	info := schema.CRDInfo{}
	info.Group, _, _ = unstructured.NestedString(obj.Object, "spec", "group")
	info.Kind, _, _ = unstructured.NestedString(obj.Object, "spec", "names", "kind")
	info.Plural, _, _ = unstructured.NestedString(obj.Object, "spec", "names", "plural")
	info.Scope, _, _ = unstructured.NestedString(obj.Object, "spec", "scope")
	versions, _, _ := unstructured.NestedSlice(obj.Object, "spec", "versions")
	for _, raw := range versions {
		version, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if served, _, _ := unstructured.NestedBool(version, "served"); served {
			info.Version, _, _ = unstructured.NestedString(version, "name")
			break
		}
	}
	return info
}

func crdGroups(byGroup map[string][]schema.CRDInfo) []schema.CRDGroup {
	groups := make([]schema.CRDGroup, 0, len(byGroup))
	for group, resources := range byGroup {
		sort.Slice(resources, func(i, j int) bool { return resources[i].Kind < resources[j].Kind })
		groups = append(groups, schema.CRDGroup{Group: group, Resources: resources})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Group < groups[j].Group })
	return groups
}

func (r *realClient) ServerVersion(ctx context.Context) (string, error) {
	info, err := r.disco.ServerVersion()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s", info.Major, info.Minor), nil
}

func (r *realClient) DeleteResource(ctx context.Context, ref schema.ResourceRef) error {
	gvr, ok := kindGVRs[ref.Kind]
	if !ok {
		return fmt.Errorf("%w: %s", schema.ErrUnsupportedKind, ref.Kind)
	}
	if ref.Kind.IsNamespaced() && ref.Namespace == "" {
		return fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, ref.Kind)
	}
	var err error
	if ref.Kind.IsNamespaced() {
		err = r.dyn.Resource(gvr).Namespace(ref.Namespace).Delete(ctx, ref.Name, metav1.DeleteOptions{})
	} else {
		err = r.dyn.Resource(gvr).Delete(ctx, ref.Name, metav1.DeleteOptions{})
	}
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", ref.Kind, ref.Name, err)
	}
	return nil
}

func (r *realClient) RolloutRestartDeployment(ctx context.Context, name, namespace string) error {
	if namespace == "" {
		return fmt.Errorf("%w: %s", schema.ErrNamespaceRequired, schema.KindDeployments)
	}
	gvr := kindGVRs[schema.KindDeployments]
	patch := fmt.Sprintf(
		`{"spec":{"template":{"metadata":{"annotations":{"kubectl.kubernetes.io/restartedAt":%q}}}}}`,
		time.Now().UTC().Format(time.RFC3339),
	)
	_, err := r.dyn.Resource(gvr).Namespace(namespace).Patch(ctx, name, types.MergePatchType, []byte(patch), metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("rollout restart %s: %w", name, err)
	}
	return nil
}

func summarize(kind schema.ResourceKind, obj *unstructured.Unstructured) schema.ResourceSummary {
	summary := schema.ResourceSummary{
		Ref: schema.ResourceRef{
			Kind:      kind,
			Name:      obj.GetName(),
			Namespace: obj.GetNamespace(),
		},
		Created: obj.GetCreationTimestamp().Time,
		Labels:  obj.GetLabels(),
	}
	switch kind {
	case schema.KindPods:
		summary.Status, _, _ = unstructured.NestedString(obj.Object, "status", "phase")
		summary.Ready = podReady(obj)
	case schema.KindNodes:
		summary.Status = nodeStatus(obj)
	case schema.KindDeployments, schema.KindStatefulSets, schema.KindReplicaSets:
		summary.Status, summary.Ready = replicaStatus(obj)
	case schema.KindDaemonSets:
		summary.Status, summary.Ready = daemonStatus(obj)
	case schema.KindNamespaces, schema.KindPersistentVolumes, schema.KindPersistentVolumeClaims:
		summary.Status, _, _ = unstructured.NestedString(obj.Object, "status", "phase")
	case schema.KindServices:
		summary.Status, _, _ = unstructured.NestedString(obj.Object, "spec", "type")
	case schema.KindJobs:
		summary.Status = jobStatus(obj)
	case schema.KindCronJobs:
		if suspended, found, _ := unstructured.NestedBool(obj.Object, "spec", "suspend"); found && suspended {
			summary.Status = "Suspended"
		} else {
			summary.Status = "Active"
		}
	case schema.KindCRDs:
		summary.Status, _, _ = unstructured.NestedString(obj.Object, "spec", "scope")
	}
	return summary
}

func podReady(obj *unstructured.Unstructured) string {
	statuses, found, _ := unstructured.NestedSlice(obj.Object, "status", "containerStatuses")
	if !found {
		return ""
	}
	ready := 0
	for _, raw := range statuses {
		status, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if isReady, _, _ := unstructured.NestedBool(status, "ready"); isReady {
			ready++
		}
	}
	return fmt.Sprintf("%d/%d", ready, len(statuses))
}

func nodeStatus(obj *unstructured.Unstructured) string {
	conditions, found, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if !found {
		return "Unknown"
	}
	for _, raw := range conditions {
		condition, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		kind, _, _ := unstructured.NestedString(condition, "type")
		value, _, _ := unstructured.NestedString(condition, "status")
		if kind == "Ready" {
			if value == "True" {
				return "Ready"
			}
			return "NotReady"
		}
	}
	return "Unknown"
}

func replicaStatus(obj *unstructured.Unstructured) (string, string) {
	total, _, _ := unstructured.NestedInt64(obj.Object, "spec", "replicas")
	ready, _, _ := unstructured.NestedInt64(obj.Object, "status", "readyReplicas")
	status := "Progressing"
	if ready >= total && total > 0 {
		status = "Available"
	}
	return status, fmt.Sprintf("%d/%d", ready, total)
}

func daemonStatus(obj *unstructured.Unstructured) (string, string) {
	desired, _, _ := unstructured.NestedInt64(obj.Object, "status", "desiredNumberScheduled")
	ready, _, _ := unstructured.NestedInt64(obj.Object, "status", "numberReady")
	status := "Progressing"
	if ready >= desired && desired > 0 {
		status = "Available"
	}
	return status, fmt.Sprintf("%d/%d", ready, desired)
}

func jobStatus(obj *unstructured.Unstructured) string {
	if succeeded, _, _ := unstructured.NestedInt64(obj.Object, "status", "succeeded"); succeeded > 0 {
		return "Complete"
	}
	if active, _, _ := unstructured.NestedInt64(obj.Object, "status", "active"); active > 0 {
		return "Running"
	}
	if failed, _, _ := unstructured.NestedInt64(obj.Object, "status", "failed"); failed > 0 {
		return "Failed"
	}
	return "Pending"
}
