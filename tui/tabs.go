package tui

import (
	"strings"

	"pkt.systems/kubedeck/schema"
)

// renderTabStrip renders one panel's tab bar. The active tab is highlighted;
// duplicate contexts across tabs keep their position-based identity.
func renderTabStrip(theme Theme, panel schema.PanelSnapshot) string {
	if len(panel.Tabs) == 0 {
		return theme.Muted.Render("(no tabs)")
	}
	parts := make([]string, 0, len(panel.Tabs))
	for _, tab := range panel.Tabs {
		label := " " + tab.Context.DisplayName() + " "
		if tab.Active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, theme.Muted.Render("|"))
}

// activeTab returns the focused tab of a panel snapshot.
func activeTab(panel schema.PanelSnapshot) (schema.TabSnapshot, bool) {
	for _, tab := range panel.Tabs {
		if tab.Active {
			return tab, true
		}
	}
	if len(panel.Tabs) > 0 {
		return panel.Tabs[0], true
	}
	return schema.TabSnapshot{}, false
}

// activePanel returns the focused panel of the workspace snapshot.
func activePanel(ws schema.WorkspaceSnapshot) (schema.PanelSnapshot, bool) {
	for _, panel := range ws.Panels {
		if panel.ID == ws.ActivePanelID {
			return panel, true
		}
	}
	if len(ws.Panels) > 0 {
		return ws.Panels[0], true
	}
	return schema.PanelSnapshot{}, false
}

// neighborPanel returns the panel before or after the active one.
func neighborPanel(ws schema.WorkspaceSnapshot, delta int) (schema.PanelSnapshot, bool) {
	for i, panel := range ws.Panels {
		if panel.ID == ws.ActivePanelID {
			j := i + delta
			if j < 0 || j >= len(ws.Panels) {
				return schema.PanelSnapshot{}, false
			}
			return ws.Panels[j], true
		}
	}
	return schema.PanelSnapshot{}, false
}

// reorderedTabIDs returns the panel's tab ids with the active tab shifted by
// delta, clamped to the panel bounds.
func reorderedTabIDs(panel schema.PanelSnapshot, delta int) ([]schema.TabID, bool) {
	active := -1
	ids := make([]schema.TabID, len(panel.Tabs))
	for i, tab := range panel.Tabs {
		ids[i] = tab.ID
		if tab.Active {
			active = i
		}
	}
	if active < 0 {
		return nil, false
	}
	target := active + delta
	if target < 0 || target >= len(ids) {
		return nil, false
	}
	ids[active], ids[target] = ids[target], ids[active]
	return ids, true
}
