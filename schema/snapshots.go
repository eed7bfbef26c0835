package schema

// TabSnapshot is a read-only view of a tab for transports and persistence.
type TabSnapshot struct {
	ID      TabID          `json:"id"`
	Context ClusterContext `json:"context"`
	Active  bool           `json:"active"`
}

// PanelSnapshot is a read-only view of a panel.
type PanelSnapshot struct {
	ID              PanelID       `json:"id"`
	Tabs            []TabSnapshot `json:"tabs"`
	ActiveContextID ContextID     `json:"active_context_id,omitempty"`
	Active          bool          `json:"active"`
}

// WorkspaceSnapshot is a read-only view of the whole workspace.
type WorkspaceSnapshot struct {
	Panels          []PanelSnapshot `json:"panels"`
	ActivePanelID   PanelID         `json:"active_panel_id"`
	SelectedContext ContextID       `json:"selected_context,omitempty"`
	TabHistory      []TabID         `json:"tab_history,omitempty"`
}
