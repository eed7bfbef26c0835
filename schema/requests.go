package schema

// Workspace operations.

// SelectContextRequest focuses or opens a tab for a context in the active panel.
type SelectContextRequest struct {
	Context ClusterContext
}

// SelectContextResponse reports the workspace after the selection.
type SelectContextResponse struct {
	Workspace WorkspaceSnapshot
}

// CloseTabRequest closes a tab.
type CloseTabRequest struct {
	TabID TabID
}

// CloseTabResponse reports the workspace after the close.
type CloseTabResponse struct {
	Workspace WorkspaceSnapshot
}

// SplitRightRequest duplicates a tab's context into a new panel on the right.
type SplitRightRequest struct {
	TabID TabID
}

// SplitRightResponse reports the new tab and the resulting workspace.
type SplitRightResponse struct {
	Workspace WorkspaceSnapshot
	NewTab    TabSnapshot
}

// ReorderTabsRequest reorders the tabs of one panel.
type ReorderTabsRequest struct {
	PanelID PanelID
	Order   []TabID
}

// ReorderTabsResponse reports the workspace after the reorder.
type ReorderTabsResponse struct {
	Workspace WorkspaceSnapshot
}

// MoveTabRequest re-homes a tab into another panel at an index.
type MoveTabRequest struct {
	TabID     TabID
	DestPanel PanelID
	DestIndex int
}

// MoveTabResponse reports the moved tab's old and new ids.
type MoveTabResponse struct {
	Workspace WorkspaceSnapshot
	OldTabID  TabID
	NewTabID  TabID
}

// GetWorkspaceRequest fetches the current workspace snapshot.
type GetWorkspaceRequest struct{}

// GetWorkspaceResponse carries the current workspace snapshot.
type GetWorkspaceResponse struct {
	Workspace WorkspaceSnapshot
}

// Cluster operations.

// ListContextsRequest lists the kubeconfig contexts.
type ListContextsRequest struct{}

// ListContextsResponse carries the parsed contexts.
type ListContextsResponse struct {
	Contexts []ClusterContext
}

// ListResourcesRequest lists resources of a kind in a context.
type ListResourcesRequest struct {
	Context   ContextID
	Kind      ResourceKind
	Namespace string
}

// ListResourcesResponse carries the listed resources.
type ListResourcesResponse struct {
	Resources []ResourceSummary
}

// GetResourceDetailRequest fetches one resource with its full object.
type GetResourceDetailRequest struct {
	Context ContextID
	Ref     ResourceRef
}

// GetResourceDetailResponse carries the resource detail.
type GetResourceDetailResponse struct {
	Detail ResourceDetail
}

// ClusterOverviewRequest fetches overview metadata for a context.
type ClusterOverviewRequest struct {
	Context ContextID
}

// ClusterOverviewResponse carries the overview.
type ClusterOverviewResponse struct {
	Overview ClusterOverview
}

// ClusterStatsRequest fetches headline counts for a context.
type ClusterStatsRequest struct {
	Context ContextID
}

// ClusterStatsResponse carries the stats.
type ClusterStatsResponse struct {
	Stats ClusterStats
}

// ListCRDGroupsRequest lists a cluster's custom resource definitions grouped
// by API group.
type ListCRDGroupsRequest struct {
	Context ContextID
}

// ListCRDGroupsResponse carries the grouped definitions.
type ListCRDGroupsResponse struct {
	Groups []CRDGroup
}

// ListCustomResourcesRequest lists the instances of one custom resource
// definition, optionally narrowed to a namespace.
type ListCustomResourcesRequest struct {
	Context   ContextID
	CRD       CRDInfo
	Namespace string
}

// ListCustomResourcesResponse carries the listed instances.
type ListCustomResourcesResponse struct {
	Resources []ResourceSummary
}

// GetCustomResourceRequest fetches one custom resource with its full object.
type GetCustomResourceRequest struct {
	Context   ContextID
	CRD       CRDInfo
	Name      string
	Namespace string
}

// GetCustomResourceResponse carries the custom resource detail.
type GetCustomResourceResponse struct {
	Detail ResourceDetail
}

// DeleteResourceRequest deletes a resource.
type DeleteResourceRequest struct {
	Context ContextID
	Ref     ResourceRef
}

// DeleteResourceResponse acknowledges the delete.
type DeleteResourceResponse struct{}

// RolloutRestartRequest restarts a deployment's rollout.
type RolloutRestartRequest struct {
	Context   ContextID
	Name      string
	Namespace string
}

// RolloutRestartResponse acknowledges the restart.
type RolloutRestartResponse struct{}

// StartWatchRequest starts a resource watch.
type StartWatchRequest struct {
	Context   ContextID
	Kind      ResourceKind
	Namespace string
}

// StartWatchResponse reports the watch id.
type StartWatchResponse struct {
	WatchID WatchID
}

// StopWatchRequest stops a resource watch.
type StopWatchRequest struct {
	WatchID WatchID
}

// StopWatchResponse acknowledges the stop.
type StopWatchResponse struct{}

// Terminal operations.

// CreateTerminalRequest opens a shell session pinned to a context.
type CreateTerminalRequest struct {
	Context ContextID
	Shell   string
}

// CreateTerminalResponse reports the session id.
type CreateTerminalResponse struct {
	SessionID SessionID
}

// WriteTerminalRequest writes user input to a session.
type WriteTerminalRequest struct {
	SessionID SessionID
	Data      string
}

// WriteTerminalResponse acknowledges the write.
type WriteTerminalResponse struct{}

// ResizeTerminalRequest resizes a session's PTY.
type ResizeTerminalRequest struct {
	SessionID SessionID
	Rows      int
	Cols      int
}

// ResizeTerminalResponse acknowledges the resize.
type ResizeTerminalResponse struct{}

// CloseTerminalRequest closes a session.
type CloseTerminalRequest struct {
	SessionID SessionID
}

// CloseTerminalResponse acknowledges the close.
type CloseTerminalResponse struct{}
