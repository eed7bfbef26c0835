package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pkt.systems/kubedeck/core"
	"pkt.systems/kubedeck/internal/eventbus"
	"pkt.systems/kubedeck/schema"
)

func loadContextsCmd(svc core.Service) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.ListContexts(context.Background(), schema.ListContextsRequest{})
		if err != nil {
			return errMsg{err}
		}
		return contextsLoadedMsg{contexts: resp.Contexts}
	}
}

func selectContextCmd(svc core.Service, target schema.ClusterContext) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.SelectContext(context.Background(), schema.SelectContextRequest{Context: target})
		if err != nil {
			return errMsg{err}
		}
		return workspaceChangedMsg{workspace: resp.Workspace}
	}
}

func closeTabCmd(svc core.Service, tabID schema.TabID) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.CloseTab(context.Background(), schema.CloseTabRequest{TabID: tabID})
		if err != nil {
			return errMsg{err}
		}
		return workspaceChangedMsg{workspace: resp.Workspace}
	}
}

func splitRightCmd(svc core.Service, tabID schema.TabID) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.SplitRight(context.Background(), schema.SplitRightRequest{TabID: tabID})
		if err != nil {
			return errMsg{err}
		}
		return workspaceChangedMsg{workspace: resp.Workspace}
	}
}

func reorderTabsCmd(svc core.Service, panelID schema.PanelID, order []schema.TabID) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.ReorderTabs(context.Background(), schema.ReorderTabsRequest{PanelID: panelID, Order: order})
		if err != nil {
			return errMsg{err}
		}
		return workspaceChangedMsg{workspace: resp.Workspace}
	}
}

func moveTabCmd(svc core.Service, tabID schema.TabID, dest schema.PanelID, index int) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.MoveTab(context.Background(), schema.MoveTabRequest{TabID: tabID, DestPanel: dest, DestIndex: index})
		if err != nil {
			return errMsg{err}
		}
		return workspaceChangedMsg{workspace: resp.Workspace}
	}
}

func loadResourcesCmd(svc core.Service, contextID schema.ContextID, kind schema.ResourceKind, namespace string) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.ListResources(context.Background(), schema.ListResourcesRequest{
			Context:   contextID,
			Kind:      kind,
			Namespace: namespace,
		})
		if err != nil {
			return errMsg{err}
		}
		return resourcesLoadedMsg{
			context:   contextID,
			kind:      kind,
			namespace: namespace,
			resources: resp.Resources,
		}
	}
}

func loadDetailCmd(svc core.Service, contextID schema.ContextID, ref schema.ResourceRef) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.GetResourceDetail(context.Background(), schema.GetResourceDetailRequest{
			Context: contextID,
			Ref:     ref,
		})
		if err != nil {
			return errMsg{err}
		}
		return detailLoadedMsg{detail: resp.Detail}
	}
}

func loadOverviewCmd(svc core.Service, contextID schema.ContextID) tea.Cmd {
	return func() tea.Msg {
		overview, err := svc.ClusterOverview(context.Background(), schema.ClusterOverviewRequest{Context: contextID})
		if err != nil {
			return errMsg{err}
		}
		stats, err := svc.ClusterStats(context.Background(), schema.ClusterStatsRequest{Context: contextID})
		if err != nil {
			return errMsg{err}
		}
		return overviewLoadedMsg{
			context:  contextID,
			overview: overview.Overview,
			stats:    stats.Stats,
		}
	}
}

func loadNamespacesCmd(svc core.Service, contextID schema.ContextID) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.ListResources(context.Background(), schema.ListResourcesRequest{
			Context: contextID,
			Kind:    schema.KindNamespaces,
		})
		if err != nil {
			return errMsg{err}
		}
		names := make([]string, 0, len(resp.Resources))
		for _, res := range resp.Resources {
			names = append(names, res.Ref.Name)
		}
		return namespacesLoadedMsg{context: contextID, names: names}
	}
}

func createTerminalCmd(svc core.Service, contextID schema.ContextID) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.CreateTerminal(context.Background(), schema.CreateTerminalRequest{Context: contextID})
		if err != nil {
			return errMsg{err}
		}
		return terminalStartedMsg{session: resp.SessionID}
	}
}

// waitForBusEvent blocks on the event bus subscription and feeds one event
// back into the update loop. The model re-issues it after each delivery.
func waitForBusEvent(events <-chan eventbus.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return busEventMsg{event: event}
	}
}
