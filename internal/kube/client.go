package kube

import (
	"context"
	"fmt"

	"pkt.systems/kubedeck/schema"
)

// Client is the per-context cluster API surface the rest of the app
// consumes. Implementations summarize raw objects into table rows and
// expose the full object only through GetResource.
type Client interface {
	ListResources(ctx context.Context, kind schema.ResourceKind, namespace string) ([]schema.ResourceSummary, error)
	GetResource(ctx context.Context, ref schema.ResourceRef) (schema.ResourceDetail, error)
	ListCRDGroups(ctx context.Context) ([]schema.CRDGroup, error)
	ListCustomResources(ctx context.Context, crd schema.CRDInfo, namespace string) ([]schema.ResourceSummary, error)
	GetCustomResource(ctx context.Context, crd schema.CRDInfo, name, namespace string) (schema.ResourceDetail, error)
	ServerVersion(ctx context.Context) (string, error)
	DeleteResource(ctx context.Context, ref schema.ResourceRef) error
	RolloutRestartDeployment(ctx context.Context, name, namespace string) error
}

// Overview combines context-name metadata with the live server version.
func Overview(ctx context.Context, c Client, contextID schema.ContextID) (schema.ClusterOverview, error) {
	cc := schema.ParseContext(schema.ContextName(contextID))
	version, err := c.ServerVersion(ctx)
	if err != nil {
		return schema.ClusterOverview{}, fmt.Errorf("server version: %w", err)
	}
	return schema.ClusterOverview{
		Provider:         cc.Provider,
		ProjectOrAccount: cc.Account,
		Region:           cc.Region,
		ClusterName:      cc.DisplayName(),
		ClusterVersion:   version,
	}, nil
}

// Stats lists nodes, pods, namespaces, deployments, and jobs cluster-wide
// and derives the headline counts shown on the overview screen.
func Stats(ctx context.Context, c Client) (schema.ClusterStats, error) {
	var stats schema.ClusterStats

	nodes, err := c.ListResources(ctx, schema.KindNodes, "")
	if err != nil {
		return schema.ClusterStats{}, fmt.Errorf("list nodes: %w", err)
	}
	stats.TotalNodes = len(nodes)
	for _, node := range nodes {
		if node.Status == "Ready" {
			stats.ReadyNodes++
		}
	}

	pods, err := c.ListResources(ctx, schema.KindPods, "")
	if err != nil {
		return schema.ClusterStats{}, fmt.Errorf("list pods: %w", err)
	}
	stats.TotalPods = len(pods)
	for _, pod := range pods {
		if pod.Status == "Running" {
			stats.RunningPods++
		}
	}

	namespaces, err := c.ListResources(ctx, schema.KindNamespaces, "")
	if err != nil {
		return schema.ClusterStats{}, fmt.Errorf("list namespaces: %w", err)
	}
	stats.NamespaceCount = len(namespaces)

	deployments, err := c.ListResources(ctx, schema.KindDeployments, "")
	if err != nil {
		return schema.ClusterStats{}, fmt.Errorf("list deployments: %w", err)
	}
	stats.DeploymentCount = len(deployments)

	jobs, err := c.ListResources(ctx, schema.KindJobs, "")
	if err != nil {
		return schema.ClusterStats{}, fmt.Errorf("list jobs: %w", err)
	}
	stats.JobCount = len(jobs)

	return stats, nil
}
