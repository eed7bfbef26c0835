package schema

import "strings"

// ParseContext derives provider, region, and cluster metadata from a
// kubeconfig context name. Managed clusters encode these in their generated
// names (gke_<project>_<location>_<cluster>, arn:aws:eks:<region>:<account>:
// cluster/<name>); local clusters use well-known fixed names. Anything else
// is kept verbatim with an unknown provider.
func ParseContext(name ContextName) ClusterContext {
	cc := ClusterContext{
		ID:       ContextID(name),
		Name:     name,
		Provider: ProviderUnknown,
	}
	raw := strings.TrimSpace(string(name))
	if raw == "" {
		return cc
	}
	cc.Cluster = raw
	switch {
	case strings.HasPrefix(raw, "gke_"):
		cc.Provider = ProviderGKE
		if parts := strings.Split(raw, "_"); len(parts) >= 4 {
			cc.Account = parts[1]
			cc.Region = parts[2]
			cc.Cluster = strings.Join(parts[3:], "_")
		}
	case strings.HasPrefix(raw, "arn:aws:eks:"):
		cc.Provider = ProviderEKS
		if parts := strings.Split(raw, ":"); len(parts) >= 6 {
			cc.Region = parts[3]
			cc.Account = parts[4]
			cc.Cluster = strings.TrimPrefix(parts[5], "cluster/")
		}
	case strings.HasPrefix(raw, "aks-") || strings.HasPrefix(raw, "aks_"):
		cc.Provider = ProviderAKS
	case raw == "docker-desktop" || raw == "minikube" || raw == "rancher-desktop" || strings.HasPrefix(raw, "kind-"):
		cc.Provider = ProviderLocal
	}
	return cc
}

// DisplayName returns the short, human-facing name for a context.
func (c ClusterContext) DisplayName() string {
	if c.Cluster != "" {
		return c.Cluster
	}
	return string(c.Name)
}
