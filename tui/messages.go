package tui

import (
	"pkt.systems/kubedeck/internal/eventbus"
	"pkt.systems/kubedeck/schema"
)

type contextsLoadedMsg struct {
	contexts []schema.ClusterContext
}

type workspaceChangedMsg struct {
	workspace schema.WorkspaceSnapshot
}

type resourcesLoadedMsg struct {
	context   schema.ContextID
	kind      schema.ResourceKind
	namespace string
	resources []schema.ResourceSummary
}

type detailLoadedMsg struct {
	detail schema.ResourceDetail
}

type overviewLoadedMsg struct {
	context  schema.ContextID
	overview schema.ClusterOverview
	stats    schema.ClusterStats
}

type namespacesLoadedMsg struct {
	context schema.ContextID
	names   []string
}

type busEventMsg struct {
	event eventbus.Event
}

type terminalStartedMsg struct {
	session schema.SessionID
}

type errMsg struct {
	err error
}
