package core

import (
	"pkt.systems/kubedeck/schema"
)

// Tab is a view slot bound to exactly one cluster context inside one panel.
// Per-tab UI state (selected kind, namespace, detail visibility) belongs to
// the renderer and is addressed by (PanelID, TabID), never stored here.
type Tab struct {
	ID      schema.TabID
	Context schema.ClusterContext
}

// Panel is an ordered sequence of tabs plus the context id of its focused
// tab. Tab order is the tab-strip order. ActiveContextID, when set, must
// reference a tab present in the panel.
type Panel struct {
	ID              schema.PanelID
	Tabs            []Tab
	ActiveContextID schema.ContextID
}

// Workspace is the full split-panel arrangement: a non-empty ordered list
// of panels rendered left to right, the panel receiving focus, the context
// the user last explicitly focused, and a recency history of tab ids used
// to pick a replacement active tab on close. Values are never mutated in
// place; every transition returns a fresh Workspace.
type Workspace struct {
	Panels          []Panel
	ActivePanelID   schema.PanelID
	SelectedContext schema.ContextID
	TabHistory      []schema.TabID
}

// NewWorkspace returns the initial shape: one empty default panel.
func NewWorkspace() Workspace {
	p := Panel{ID: newPanelID()}
	return Workspace{
		Panels:        []Panel{p},
		ActivePanelID: p.ID,
	}
}

func (ws Workspace) clone() Workspace {
	out := ws
	out.Panels = make([]Panel, len(ws.Panels))
	for i, p := range ws.Panels {
		out.Panels[i] = p
		out.Panels[i].Tabs = append([]Tab(nil), p.Tabs...)
	}
	out.TabHistory = append([]schema.TabID(nil), ws.TabHistory...)
	return out
}

func (ws Workspace) panelIndex(id schema.PanelID) int {
	for i := range ws.Panels {
		if ws.Panels[i].ID == id {
			return i
		}
	}
	return -1
}

// activePanelIndex resolves ActivePanelID, falling back to the first panel
// if the pointer dangles.
func (ws Workspace) activePanelIndex() int {
	if i := ws.panelIndex(ws.ActivePanelID); i >= 0 {
		return i
	}
	return 0
}

// findTab locates a tab by id. Duplicate ids are legal (a moved tab can
// land next to a tab bound to the same context), so lookups are positional:
// the first match in panel order wins.
func (ws Workspace) findTab(id schema.TabID) (int, int) {
	for pi := range ws.Panels {
		for ti := range ws.Panels[pi].Tabs {
			if ws.Panels[pi].Tabs[ti].ID == id {
				return pi, ti
			}
		}
	}
	return -1, -1
}

// ActivePanel returns the panel receiving focus.
func (ws Workspace) ActivePanel() Panel {
	return ws.Panels[ws.activePanelIndex()]
}

// ActiveTab returns the focused tab of a panel, if any.
func (p Panel) ActiveTab() (Tab, bool) {
	if p.ActiveContextID == "" {
		return Tab{}, false
	}
	for _, t := range p.Tabs {
		if t.Context.ID == p.ActiveContextID {
			return t, true
		}
	}
	return Tab{}, false
}

// SelectContext focuses the tab bound to target in the active panel,
// appending a fresh tab if none exists. Always succeeds; a dangling active
// panel pointer resolves to the first panel.
func SelectContext(ws Workspace, target schema.ClusterContext) Workspace {
	out := ws.clone()
	pi := out.activePanelIndex()
	panel := &out.Panels[pi]
	out.ActivePanelID = panel.ID
	out.SelectedContext = target.ID
	for _, t := range panel.Tabs {
		if t.Context.ID == target.ID {
			panel.ActiveContextID = target.ID
			return out
		}
	}
	tab := Tab{ID: tabIDFor(panel.ID, target.ID), Context: target}
	panel.Tabs = append(panel.Tabs, tab)
	panel.ActiveContextID = target.ID
	out.TabHistory = append(out.TabHistory, tab.ID)
	return out
}

// CloseTab removes the tab and prunes it from the history. Closing a
// background tab changes nothing else. Closing a panel's active tab picks a
// replacement from the history (most recent entry still in the panel),
// falling back to the last remaining tab, then to an empty panel. An empty
// panel is removed unless it is the sole panel, in which case the workspace
// collapses back to its initial shape.
func CloseTab(ws Workspace, tabID schema.TabID) Workspace {
	out := ws.clone()
	pi, ti := out.findTab(tabID)
	if pi < 0 {
		return out
	}
	panel := &out.Panels[pi]
	closed := panel.Tabs[ti]
	wasActive := panel.ActiveContextID == closed.Context.ID
	panel.Tabs = append(panel.Tabs[:ti], panel.Tabs[ti+1:]...)
	out.TabHistory = removeTabID(out.TabHistory, tabID)
	if !wasActive {
		return out
	}

	isActivePanel := out.ActivePanelID == panel.ID
	if next, ok := latestHistoryTab(out.TabHistory, *panel); ok {
		panel.ActiveContextID = next.Context.ID
		if isActivePanel {
			out.SelectedContext = next.Context.ID
		}
		return out
	}
	if len(panel.Tabs) > 0 {
		last := panel.Tabs[len(panel.Tabs)-1]
		panel.ActiveContextID = last.Context.ID
		if isActivePanel {
			out.SelectedContext = last.Context.ID
		}
		return out
	}

	if len(out.Panels) > 1 {
		out.Panels = append(out.Panels[:pi], out.Panels[pi+1:]...)
		if isActivePanel {
			ni := pi - 1
			if ni < 0 {
				ni = 0
			}
			neighbor := out.Panels[ni]
			out.ActivePanelID = neighbor.ID
			out.SelectedContext = neighbor.ActiveContextID
		}
		return out
	}

	// Sole panel: keep it, collapse to the initial shape.
	panel.ActiveContextID = ""
	out.ActivePanelID = panel.ID
	out.SelectedContext = ""
	out.TabHistory = nil
	return out
}

// SplitRight inserts a new panel immediately right of the panel owning
// tabID, holding one fresh tab bound to the same context. The new panel and
// tab become active; the source panel is untouched. Returns false when the
// tab cannot be located, which callers should treat as a programming error.
func SplitRight(ws Workspace, tabID schema.TabID) (Workspace, Tab, bool) {
	out := ws.clone()
	pi, ti := out.findTab(tabID)
	if pi < 0 {
		return ws, Tab{}, false
	}
	source := out.Panels[pi].Tabs[ti]
	panel := Panel{ID: newPanelID()}
	tab := Tab{ID: tabIDFor(panel.ID, source.Context.ID), Context: source.Context}
	panel.Tabs = []Tab{tab}
	panel.ActiveContextID = tab.Context.ID

	out.Panels = append(out.Panels, Panel{})
	copy(out.Panels[pi+2:], out.Panels[pi+1:])
	out.Panels[pi+1] = panel

	out.ActivePanelID = panel.ID
	out.SelectedContext = tab.Context.ID
	out.TabHistory = append(out.TabHistory, tab.ID)
	return out, tab, true
}

// ReorderTabs rebuilds a panel's tab sequence to match the requested order.
// The order is authoritative: unknown ids are ignored and tabs omitted from
// it are dropped. Active pointers are left untouched.
func ReorderTabs(ws Workspace, panelID schema.PanelID, order []schema.TabID) Workspace {
	out := ws.clone()
	pi := out.panelIndex(panelID)
	if pi < 0 {
		return out
	}
	panel := &out.Panels[pi]
	used := make([]bool, len(panel.Tabs))
	reordered := make([]Tab, 0, len(order))
	for _, id := range order {
		for i, t := range panel.Tabs {
			if !used[i] && t.ID == id {
				reordered = append(reordered, t)
				used[i] = true
				break
			}
		}
	}
	panel.Tabs = reordered
	return out
}

// MoveTab re-homes a tab into the destination panel at the given index,
// regenerating its id for the new panel. The destination panel and the
// moved tab become active. A source panel left empty is removed unless it
// is the sole panel. The destination index is clamped to the panel bounds.
// Returns the new and old tab ids so callers can reconcile anything keyed
// by the old id; the internal history is reconciled here.
func MoveTab(ws Workspace, tabID schema.TabID, destPanelID schema.PanelID, destIndex int) (Workspace, schema.TabID, schema.TabID, error) {
	out := ws.clone()
	pi, ti := out.findTab(tabID)
	if pi < 0 {
		return ws, "", "", schema.ErrTabNotFound
	}
	di := out.panelIndex(destPanelID)
	if di < 0 {
		return ws, "", "", schema.ErrPanelNotFound
	}

	source := &out.Panels[pi]
	moved := source.Tabs[ti]
	source.Tabs = append(source.Tabs[:ti], source.Tabs[ti+1:]...)

	tab := Tab{ID: tabIDFor(destPanelID, moved.Context.ID), Context: moved.Context}
	dest := &out.Panels[di]
	idx := destIndex
	if idx < 0 {
		idx = 0
	}
	if idx > len(dest.Tabs) {
		idx = len(dest.Tabs)
	}
	dest.Tabs = append(dest.Tabs, Tab{})
	copy(dest.Tabs[idx+1:], dest.Tabs[idx:])
	dest.Tabs[idx] = tab

	out.ActivePanelID = dest.ID
	dest.ActiveContextID = tab.Context.ID
	out.SelectedContext = tab.Context.ID
	out.TabHistory = replaceTabID(out.TabHistory, moved.ID, tab.ID)

	if pi != di {
		// Re-point the source panel's focus if the moved tab held it.
		if source.ActiveContextID == moved.Context.ID {
			if _, ok := source.ActiveTab(); !ok {
				if next, ok := latestHistoryTab(out.TabHistory, *source); ok {
					source.ActiveContextID = next.Context.ID
				} else if len(source.Tabs) > 0 {
					source.ActiveContextID = source.Tabs[len(source.Tabs)-1].Context.ID
				} else {
					source.ActiveContextID = ""
				}
			}
		}
		if len(source.Tabs) == 0 && len(out.Panels) > 1 {
			out.Panels = append(out.Panels[:pi], out.Panels[pi+1:]...)
		}
	}
	return out, tab.ID, moved.ID, nil
}

// latestHistoryTab walks the history from most recent to least recent and
// returns the first tab still present in the panel.
func latestHistoryTab(history []schema.TabID, panel Panel) (Tab, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		for _, t := range panel.Tabs {
			if t.ID == history[i] {
				return t, true
			}
		}
	}
	return Tab{}, false
}

func removeTabID(history []schema.TabID, id schema.TabID) []schema.TabID {
	out := history[:0]
	for _, h := range history {
		if h != id {
			out = append(out, h)
		}
	}
	return out
}

func replaceTabID(history []schema.TabID, old, updated schema.TabID) []schema.TabID {
	for i, h := range history {
		if h == old {
			history[i] = updated
		}
	}
	return history
}

// Snapshot converts the workspace into its transport/persistence form.
func (ws Workspace) Snapshot() schema.WorkspaceSnapshot {
	snap := schema.WorkspaceSnapshot{
		Panels:          make([]schema.PanelSnapshot, 0, len(ws.Panels)),
		ActivePanelID:   ws.ActivePanelID,
		SelectedContext: ws.SelectedContext,
		TabHistory:      append([]schema.TabID(nil), ws.TabHistory...),
	}
	for _, p := range ws.Panels {
		ps := schema.PanelSnapshot{
			ID:              p.ID,
			ActiveContextID: p.ActiveContextID,
			Active:          p.ID == ws.ActivePanelID,
			Tabs:            make([]schema.TabSnapshot, 0, len(p.Tabs)),
		}
		for _, t := range p.Tabs {
			ps.Tabs = append(ps.Tabs, schema.TabSnapshot{
				ID:      t.ID,
				Context: t.Context,
				Active:  p.ActiveContextID == t.Context.ID,
			})
		}
		snap.Panels = append(snap.Panels, ps)
	}
	return snap
}

// WorkspaceFromSnapshot restores a workspace from its persisted form.
// Snapshots with no panels yield a fresh default workspace.
func WorkspaceFromSnapshot(snap schema.WorkspaceSnapshot) Workspace {
	if len(snap.Panels) == 0 {
		return NewWorkspace()
	}
	ws := Workspace{
		ActivePanelID:   snap.ActivePanelID,
		SelectedContext: snap.SelectedContext,
		TabHistory:      append([]schema.TabID(nil), snap.TabHistory...),
		Panels:          make([]Panel, 0, len(snap.Panels)),
	}
	for _, ps := range snap.Panels {
		p := Panel{ID: ps.ID, ActiveContextID: ps.ActiveContextID}
		for _, ts := range ps.Tabs {
			p.Tabs = append(p.Tabs, Tab{ID: ts.ID, Context: ts.Context})
		}
		ws.Panels = append(ws.Panels, p)
	}
	if ws.panelIndex(ws.ActivePanelID) < 0 {
		ws.ActivePanelID = ws.Panels[0].ID
	}
	return ws
}
