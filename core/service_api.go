package core

import (
	"context"

	"pkt.systems/kubedeck/schema"
)

// Service is the transport-agnostic API for managing the workspace, cluster
// resources, and terminal sessions.
type Service interface {
	SelectContext(ctx context.Context, req schema.SelectContextRequest) (schema.SelectContextResponse, error)
	CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error)
	SplitRight(ctx context.Context, req schema.SplitRightRequest) (schema.SplitRightResponse, error)
	ReorderTabs(ctx context.Context, req schema.ReorderTabsRequest) (schema.ReorderTabsResponse, error)
	MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error)
	GetWorkspace(ctx context.Context, req schema.GetWorkspaceRequest) (schema.GetWorkspaceResponse, error)
	ListContexts(ctx context.Context, req schema.ListContextsRequest) (schema.ListContextsResponse, error)
	ListResources(ctx context.Context, req schema.ListResourcesRequest) (schema.ListResourcesResponse, error)
	GetResourceDetail(ctx context.Context, req schema.GetResourceDetailRequest) (schema.GetResourceDetailResponse, error)
	ListCRDGroups(ctx context.Context, req schema.ListCRDGroupsRequest) (schema.ListCRDGroupsResponse, error)
	ListCustomResources(ctx context.Context, req schema.ListCustomResourcesRequest) (schema.ListCustomResourcesResponse, error)
	GetCustomResource(ctx context.Context, req schema.GetCustomResourceRequest) (schema.GetCustomResourceResponse, error)
	ClusterOverview(ctx context.Context, req schema.ClusterOverviewRequest) (schema.ClusterOverviewResponse, error)
	ClusterStats(ctx context.Context, req schema.ClusterStatsRequest) (schema.ClusterStatsResponse, error)
	DeleteResource(ctx context.Context, req schema.DeleteResourceRequest) (schema.DeleteResourceResponse, error)
	RolloutRestart(ctx context.Context, req schema.RolloutRestartRequest) (schema.RolloutRestartResponse, error)
	StartWatch(ctx context.Context, req schema.StartWatchRequest) (schema.StartWatchResponse, error)
	StopWatch(ctx context.Context, req schema.StopWatchRequest) (schema.StopWatchResponse, error)
	CreateTerminal(ctx context.Context, req schema.CreateTerminalRequest) (schema.CreateTerminalResponse, error)
	WriteTerminal(ctx context.Context, req schema.WriteTerminalRequest) (schema.WriteTerminalResponse, error)
	ResizeTerminal(ctx context.Context, req schema.ResizeTerminalRequest) (schema.ResizeTerminalResponse, error)
	CloseTerminal(ctx context.Context, req schema.CloseTerminalRequest) (schema.CloseTerminalResponse, error)
}
