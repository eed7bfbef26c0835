package core

import (
	"testing"

	"pkt.systems/kubedeck/schema"
)

func testContext(name string) schema.ClusterContext {
	return schema.ParseContext(schema.ContextName(name))
}

// checkInvariants asserts the structural invariants every reachable
// workspace must satisfy: panels is non-empty, the active panel pointer
// resolves, and every set active-context pointer references a tab present
// in its panel.
func checkInvariants(t *testing.T, ws Workspace) {
	t.Helper()
	if len(ws.Panels) == 0 {
		t.Fatalf("workspace has no panels")
	}
	if ws.panelIndex(ws.ActivePanelID) < 0 {
		t.Fatalf("active panel %q not present", ws.ActivePanelID)
	}
	for _, p := range ws.Panels {
		if p.ActiveContextID == "" {
			continue
		}
		found := false
		for _, tab := range p.Tabs {
			if tab.Context.ID == p.ActiveContextID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("panel %q active context %q references no tab", p.ID, p.ActiveContextID)
		}
	}
	seen := make(map[schema.PanelID]bool, len(ws.Panels))
	for _, p := range ws.Panels {
		if seen[p.ID] {
			t.Fatalf("duplicate panel id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func activeTabOf(t *testing.T, ws Workspace) Tab {
	t.Helper()
	tab, ok := ws.ActivePanel().ActiveTab()
	if !ok {
		t.Fatalf("active panel %q has no active tab", ws.ActivePanelID)
	}
	return tab
}

func historyContains(ws Workspace, id schema.TabID) bool {
	for _, h := range ws.TabHistory {
		if h == id {
			return true
		}
	}
	return false
}

func TestNewWorkspaceShape(t *testing.T) {
	ws := NewWorkspace()
	checkInvariants(t, ws)
	if len(ws.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(ws.Panels))
	}
	if len(ws.Panels[0].Tabs) != 0 {
		t.Fatalf("expected empty panel, got %d tabs", len(ws.Panels[0].Tabs))
	}
	if ws.SelectedContext != "" {
		t.Fatalf("expected empty selection, got %q", ws.SelectedContext)
	}
	if len(ws.TabHistory) != 0 {
		t.Fatalf("expected empty history, got %v", ws.TabHistory)
	}
}

func TestSelectContextAppendsAndFocuses(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	checkInvariants(t, ws)

	panel := ws.ActivePanel()
	if len(panel.Tabs) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(panel.Tabs))
	}
	if panel.ActiveContextID != c1.ID {
		t.Fatalf("expected active context %q, got %q", c1.ID, panel.ActiveContextID)
	}
	if ws.SelectedContext != c1.ID {
		t.Fatalf("expected selected context %q, got %q", c1.ID, ws.SelectedContext)
	}
	if !historyContains(ws, panel.Tabs[0].ID) {
		t.Fatalf("expected history to record %q, got %v", panel.Tabs[0].ID, ws.TabHistory)
	}
}

func TestSelectContextExistingTabNoDuplicate(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	before := len(ws.TabHistory)

	ws = SelectContext(ws, c1)
	checkInvariants(t, ws)
	panel := ws.ActivePanel()
	if len(panel.Tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(panel.Tabs))
	}
	if panel.ActiveContextID != c1.ID {
		t.Fatalf("expected refocus on %q, got %q", c1.ID, panel.ActiveContextID)
	}
	if len(ws.TabHistory) != before {
		t.Fatalf("re-select must not grow history: %d -> %d", before, len(ws.TabHistory))
	}
}

func TestSelectContextIdempotentReselect(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	again := SelectContext(ws, c1)
	checkInvariants(t, again)
	if len(again.Panels) != len(ws.Panels) {
		t.Fatalf("panel count changed on re-select")
	}
	if len(again.ActivePanel().Tabs) != len(ws.ActivePanel().Tabs) {
		t.Fatalf("tab count changed on re-select")
	}
	if again.SelectedContext != c1.ID || again.ActivePanel().ActiveContextID != c1.ID {
		t.Fatalf("re-select lost focus: selected=%q active=%q", again.SelectedContext, again.ActivePanel().ActiveContextID)
	}
}

func TestSelectContextDanglingActivePanelFallsBackToFirst(t *testing.T) {
	ws := NewWorkspace()
	ws.ActivePanelID = "no-such-panel"
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	checkInvariants(t, ws)
	if ws.ActivePanelID != ws.Panels[0].ID {
		t.Fatalf("expected fallback to first panel, got %q", ws.ActivePanelID)
	}
	if ws.Panels[0].ActiveContextID != c1.ID {
		t.Fatalf("expected first panel focused on %q", c1.ID)
	}
}

func TestSelectContextDoesNotMutateInput(t *testing.T) {
	ws := NewWorkspace()
	ws = SelectContext(ws, testContext("context1"))
	tabsBefore := len(ws.ActivePanel().Tabs)
	_ = SelectContext(ws, testContext("context2"))
	if len(ws.ActivePanel().Tabs) != tabsBefore {
		t.Fatalf("input workspace mutated: %d tabs", len(ws.ActivePanel().Tabs))
	}
}

func TestCloseBackgroundTabPreservesFocus(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	c3 := testContext("context3")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	ws = SelectContext(ws, c3)

	panel := ws.ActivePanel()
	target := panel.Tabs[0] // context1, not active
	ws = CloseTab(ws, target.ID)
	checkInvariants(t, ws)

	panel = ws.ActivePanel()
	if len(panel.Tabs) != 2 {
		t.Fatalf("expected 2 tabs after close, got %d", len(panel.Tabs))
	}
	if panel.Tabs[0].Context.ID != c2.ID || panel.Tabs[1].Context.ID != c3.ID {
		t.Fatalf("unexpected tab order after close: %q, %q", panel.Tabs[0].Context.ID, panel.Tabs[1].Context.ID)
	}
	if panel.ActiveContextID != c3.ID {
		t.Fatalf("background close moved focus to %q", panel.ActiveContextID)
	}
	if ws.SelectedContext != c3.ID {
		t.Fatalf("background close changed selection to %q", ws.SelectedContext)
	}
	if historyContains(ws, target.ID) {
		t.Fatalf("closed tab %q still in history %v", target.ID, ws.TabHistory)
	}
}

func TestCloseActiveTabFallsBackToHistory(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	c3 := testContext("context3")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	ws = SelectContext(ws, c3)

	// Close background A, then refocus B and close it: the replacement must
	// be C (the most recent history entry still in the panel), not A.
	panel := ws.ActivePanel()
	ws = CloseTab(ws, panel.Tabs[0].ID)
	if ws.ActivePanel().ActiveContextID != c3.ID {
		t.Fatalf("closing A moved focus to %q", ws.ActivePanel().ActiveContextID)
	}
	ws = SelectContext(ws, c2)
	panel = ws.ActivePanel()
	var tabB Tab
	for _, tab := range panel.Tabs {
		if tab.Context.ID == c2.ID {
			tabB = tab
		}
	}
	ws = CloseTab(ws, tabB.ID)
	checkInvariants(t, ws)
	if ws.ActivePanel().ActiveContextID != c3.ID {
		t.Fatalf("expected history fallback to %q, got %q", c3.ID, ws.ActivePanel().ActiveContextID)
	}
	if ws.SelectedContext != c3.ID {
		t.Fatalf("expected selection %q, got %q", c3.ID, ws.SelectedContext)
	}
}

func TestCloseActiveTabWithoutHistoryFallsBackToLastSibling(t *testing.T) {
	// Hand-built state with no history, as a restored snapshot would be.
	p := Panel{ID: "p1"}
	c1 := testContext("context1")
	c2 := testContext("context2")
	c3 := testContext("context3")
	p.Tabs = []Tab{
		{ID: tabIDFor(p.ID, c1.ID), Context: c1},
		{ID: tabIDFor(p.ID, c2.ID), Context: c2},
		{ID: tabIDFor(p.ID, c3.ID), Context: c3},
	}
	p.ActiveContextID = c2.ID
	ws := Workspace{Panels: []Panel{p}, ActivePanelID: p.ID, SelectedContext: c2.ID}

	ws = CloseTab(ws, tabIDFor(p.ID, c2.ID))
	checkInvariants(t, ws)
	if ws.ActivePanel().ActiveContextID != c3.ID {
		t.Fatalf("expected last-sibling fallback to %q, got %q", c3.ID, ws.ActivePanel().ActiveContextID)
	}
}

func TestCloseLastTabOfSolePanelCollapsesToDefault(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	tab := activeTabOf(t, ws)

	ws = CloseTab(ws, tab.ID)
	checkInvariants(t, ws)
	if len(ws.Panels) != 1 {
		t.Fatalf("expected sole panel kept, got %d panels", len(ws.Panels))
	}
	if len(ws.Panels[0].Tabs) != 0 {
		t.Fatalf("expected empty panel, got %d tabs", len(ws.Panels[0].Tabs))
	}
	if ws.Panels[0].ActiveContextID != "" {
		t.Fatalf("expected cleared active context, got %q", ws.Panels[0].ActiveContextID)
	}
	if ws.SelectedContext != "" {
		t.Fatalf("expected cleared selection, got %q", ws.SelectedContext)
	}
	if len(ws.TabHistory) != 0 {
		t.Fatalf("expected cleared history, got %v", ws.TabHistory)
	}
	if ws.ActivePanelID != ws.Panels[0].ID {
		t.Fatalf("active panel %q does not point at the kept panel", ws.ActivePanelID)
	}
}

func TestCloseLastTabOfSecondPanelRemovesPanel(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	original := activeTabOf(t, ws)

	ws, split, ok := SplitRight(ws, original.ID)
	if !ok {
		t.Fatalf("split failed")
	}
	checkInvariants(t, ws)
	if len(ws.Panels) != 2 {
		t.Fatalf("expected 2 panels after split, got %d", len(ws.Panels))
	}

	ws = CloseTab(ws, split.ID)
	checkInvariants(t, ws)
	if len(ws.Panels) != 1 {
		t.Fatalf("expected split panel removed, got %d panels", len(ws.Panels))
	}
	if len(ws.Panels[0].Tabs) != 1 || ws.Panels[0].Tabs[0].ID != original.ID {
		t.Fatalf("original tab lost after collapsing split")
	}
	if ws.ActivePanelID != ws.Panels[0].ID {
		t.Fatalf("expected focus back on remaining panel")
	}
	if ws.SelectedContext != c1.ID {
		t.Fatalf("expected selection %q, got %q", c1.ID, ws.SelectedContext)
	}
}

func TestCloseActivePanelPrefersLeftNeighbor(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	ws = SelectContext(ws, c1)
	first := activeTabOf(t, ws)

	ws, _, ok := SplitRight(ws, first.ID)
	if !ok {
		t.Fatalf("first split failed")
	}
	ws = SelectContext(ws, c2)
	middleTab := activeTabOf(t, ws)
	ws, _, ok = SplitRight(ws, middleTab.ID)
	if !ok {
		t.Fatalf("second split failed")
	}
	if len(ws.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(ws.Panels))
	}

	// Empty the middle panel: close c2's tab then c1's duplicate.
	middle := ws.Panels[1]
	for len(middle.Tabs) > 0 {
		ws = CloseTab(ws, middle.Tabs[0].ID)
		idx := ws.panelIndex(middle.ID)
		if idx < 0 {
			break
		}
		middle = ws.Panels[idx]
	}
	checkInvariants(t, ws)
	if len(ws.Panels) != 2 {
		t.Fatalf("expected middle panel removed, got %d panels", len(ws.Panels))
	}
}

func TestCloseUnknownTabIsNoOp(t *testing.T) {
	ws := NewWorkspace()
	ws = SelectContext(ws, testContext("context1"))
	before := ws.Snapshot()
	ws = CloseTab(ws, "bogus")
	checkInvariants(t, ws)
	after := ws.Snapshot()
	if len(after.Panels) != len(before.Panels) || len(after.Panels[0].Tabs) != len(before.Panels[0].Tabs) {
		t.Fatalf("closing an unknown tab changed the workspace")
	}
}

func TestSplitRightDuplicatesWithoutMutatingSource(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	sourcePanel := ws.ActivePanel()
	sourceTabs := append([]Tab(nil), sourcePanel.Tabs...)
	target := sourcePanel.Tabs[0] // context1, not the active tab

	ws, newTab, ok := SplitRight(ws, target.ID)
	if !ok {
		t.Fatalf("split failed")
	}
	checkInvariants(t, ws)

	if len(ws.Panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(ws.Panels))
	}
	if ws.Panels[1].ID != ws.ActivePanelID {
		t.Fatalf("expected new panel active")
	}
	if len(ws.Panels[1].Tabs) != 1 {
		t.Fatalf("expected 1 tab in new panel, got %d", len(ws.Panels[1].Tabs))
	}
	if ws.Panels[1].Tabs[0].Context.ID != c1.ID {
		t.Fatalf("split bound wrong context %q", ws.Panels[1].Tabs[0].Context.ID)
	}
	if newTab.ID == target.ID {
		t.Fatalf("split reused the source tab id %q", target.ID)
	}
	if newTab.ID != tabIDFor(ws.Panels[1].ID, c1.ID) {
		t.Fatalf("split tab id %q not scoped to new panel", newTab.ID)
	}
	if ws.SelectedContext != c1.ID {
		t.Fatalf("expected selection %q, got %q", c1.ID, ws.SelectedContext)
	}

	// Source panel untouched: same tabs, same order, same focus.
	src := ws.Panels[0]
	if len(src.Tabs) != len(sourceTabs) {
		t.Fatalf("source panel tab count changed: %d -> %d", len(sourceTabs), len(src.Tabs))
	}
	for i := range sourceTabs {
		if src.Tabs[i] != sourceTabs[i] {
			t.Fatalf("source tab %d changed: %+v -> %+v", i, sourceTabs[i], src.Tabs[i])
		}
	}
	if src.ActiveContextID != c2.ID {
		t.Fatalf("source panel focus changed to %q", src.ActiveContextID)
	}
}

func TestSplitRightInsertsAdjacent(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	first := activeTabOf(t, ws)
	ws, _, _ = SplitRight(ws, first.ID)

	// Splitting the leftmost tab again must land between panel 0 and the
	// previous split, not at the end.
	ws, _, ok := SplitRight(ws, first.ID)
	if !ok {
		t.Fatalf("split failed")
	}
	checkInvariants(t, ws)
	if len(ws.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(ws.Panels))
	}
	if ws.Panels[1].ID != ws.ActivePanelID {
		t.Fatalf("expected the new panel immediately right of the source")
	}
}

func TestSplitRightUnknownTab(t *testing.T) {
	ws := NewWorkspace()
	ws = SelectContext(ws, testContext("context1"))
	out, _, ok := SplitRight(ws, "bogus")
	if ok {
		t.Fatalf("expected split of unknown tab to fail")
	}
	if len(out.Panels) != len(ws.Panels) {
		t.Fatalf("failed split changed the workspace")
	}
}

func TestReorderTabsFilterAndPermutation(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("x1")
	c2 := testContext("x2")
	c3 := testContext("x3")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	ws = SelectContext(ws, c3)
	panel := ws.ActivePanel()
	t1, t2, t3 := panel.Tabs[0], panel.Tabs[1], panel.Tabs[2]

	ws = ReorderTabs(ws, panel.ID, []schema.TabID{t3.ID, "unknown", t1.ID})
	got := ws.Panels[ws.panelIndex(panel.ID)]
	if len(got.Tabs) != 2 {
		t.Fatalf("expected 2 tabs after reorder, got %d", len(got.Tabs))
	}
	if got.Tabs[0].ID != t3.ID || got.Tabs[1].ID != t1.ID {
		t.Fatalf("unexpected order: %q, %q", got.Tabs[0].ID, got.Tabs[1].ID)
	}
	for _, tab := range got.Tabs {
		if tab.ID == t2.ID {
			t.Fatalf("omitted tab %q survived reorder", t2.ID)
		}
	}
	if ws.ActivePanelID != panel.ID {
		t.Fatalf("reorder moved the active panel")
	}
}

func TestReorderTabsUnknownPanelIsNoOp(t *testing.T) {
	ws := NewWorkspace()
	ws = SelectContext(ws, testContext("context1"))
	before := len(ws.ActivePanel().Tabs)
	ws = ReorderTabs(ws, "bogus", []schema.TabID{"a"})
	if len(ws.ActivePanel().Tabs) != before {
		t.Fatalf("reorder of unknown panel changed tabs")
	}
}

func TestReorderFullPermutationKeepsFocus(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("x1")
	c2 := testContext("x2")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	panel := ws.ActivePanel()

	ws = ReorderTabs(ws, panel.ID, []schema.TabID{panel.Tabs[1].ID, panel.Tabs[0].ID})
	checkInvariants(t, ws)
	got := ws.ActivePanel()
	if got.Tabs[0].Context.ID != c2.ID || got.Tabs[1].Context.ID != c1.ID {
		t.Fatalf("permutation not applied")
	}
	if got.ActiveContextID != c2.ID {
		t.Fatalf("reorder changed focus to %q", got.ActiveContextID)
	}
}

func TestMoveTabReHomesAndReidentifies(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	ws = SelectContext(ws, c1)
	first := activeTabOf(t, ws)
	ws, _, _ = SplitRight(ws, first.ID)
	ws = SelectContext(ws, c2)
	moving := activeTabOf(t, ws) // c2 tab in panel 2

	destPanel := ws.Panels[0].ID
	ws, newID, oldID, err := MoveTab(ws, moving.ID, destPanel, 0)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	checkInvariants(t, ws)

	if oldID != moving.ID {
		t.Fatalf("expected old id %q, got %q", moving.ID, oldID)
	}
	if newID != tabIDFor(destPanel, c2.ID) {
		t.Fatalf("expected destination-scoped id, got %q", newID)
	}
	dest := ws.Panels[ws.panelIndex(destPanel)]
	if dest.Tabs[0].ID != newID {
		t.Fatalf("moved tab not at requested index: %q", dest.Tabs[0].ID)
	}
	if ws.ActivePanelID != destPanel {
		t.Fatalf("destination panel must become active")
	}
	if dest.ActiveContextID != c2.ID || ws.SelectedContext != c2.ID {
		t.Fatalf("moved tab must take focus: active=%q selected=%q", dest.ActiveContextID, ws.SelectedContext)
	}
}

func TestMoveTabRemovesEmptiedSourcePanel(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	first := activeTabOf(t, ws)
	ws, split, _ := SplitRight(ws, first.ID)

	ws, _, _, err := MoveTab(ws, split.ID, ws.Panels[0].ID, 1)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	checkInvariants(t, ws)
	if len(ws.Panels) != 1 {
		t.Fatalf("expected emptied source panel removed, got %d panels", len(ws.Panels))
	}
	if len(ws.Panels[0].Tabs) != 2 {
		t.Fatalf("expected 2 tabs in destination, got %d", len(ws.Panels[0].Tabs))
	}
}

func TestMoveTabAllowsDuplicateIDs(t *testing.T) {
	// Moving a tab into a panel that already shows the same context yields
	// two tabs with the same derived id. That is the observed behavior;
	// nothing dedups, and slice order keeps them addressable.
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	first := activeTabOf(t, ws)
	ws, split, _ := SplitRight(ws, first.ID)

	ws, newID, _, err := MoveTab(ws, split.ID, ws.Panels[0].ID, 0)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if newID != first.ID {
		t.Fatalf("expected colliding id %q, got %q", first.ID, newID)
	}
	panel := ws.Panels[0]
	if len(panel.Tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(panel.Tabs))
	}
	if panel.Tabs[0].ID != panel.Tabs[1].ID {
		t.Fatalf("expected duplicate ids, got %q and %q", panel.Tabs[0].ID, panel.Tabs[1].ID)
	}
}

func TestMoveTabNotFound(t *testing.T) {
	ws := NewWorkspace()
	ws = SelectContext(ws, testContext("context1"))
	_, _, _, err := MoveTab(ws, "bogus", ws.Panels[0].ID, 0)
	if err != schema.ErrTabNotFound {
		t.Fatalf("expected ErrTabNotFound, got %v", err)
	}
}

func TestMoveTabClampsDestinationIndex(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	ws = SelectContext(ws, c1)
	first := activeTabOf(t, ws)
	ws, _, _ = SplitRight(ws, first.ID)
	ws = SelectContext(ws, c2)
	moving := activeTabOf(t, ws)

	ws, newID, _, err := MoveTab(ws, moving.ID, ws.Panels[0].ID, 99)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	dest := ws.Panels[ws.panelIndex(ws.ActivePanelID)]
	if dest.Tabs[len(dest.Tabs)-1].ID != newID {
		t.Fatalf("expected out-of-range index to append")
	}
}

func TestMoveTabWithinPanelRepositions(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("x1")
	c2 := testContext("x2")
	c3 := testContext("x3")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	ws = SelectContext(ws, c3)
	panel := ws.ActivePanel()

	ws, _, _, err := MoveTab(ws, panel.Tabs[2].ID, panel.ID, 0)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	checkInvariants(t, ws)
	got := ws.ActivePanel()
	if got.Tabs[0].Context.ID != c3.ID {
		t.Fatalf("expected %q first, got %q", c3.ID, got.Tabs[0].Context.ID)
	}
	if len(got.Tabs) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(got.Tabs))
	}
}

func TestEndToEndOpenThreeCloseBackground(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	c2 := testContext("context2")
	c3 := testContext("context3")
	ws = SelectContext(ws, c1)
	ws = SelectContext(ws, c2)
	ws = SelectContext(ws, c3)

	panel := ws.ActivePanel()
	if len(panel.Tabs) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(panel.Tabs))
	}
	if panel.ActiveContextID != c3.ID {
		t.Fatalf("expected %q active, got %q", c3.ID, panel.ActiveContextID)
	}

	closedID := panel.Tabs[0].ID
	ws = CloseTab(ws, closedID)
	checkInvariants(t, ws)
	panel = ws.ActivePanel()
	if len(panel.Tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(panel.Tabs))
	}
	if panel.Tabs[0].Context.ID != c2.ID || panel.Tabs[1].Context.ID != c3.ID {
		t.Fatalf("unexpected survivors: %q, %q", panel.Tabs[0].Context.ID, panel.Tabs[1].Context.ID)
	}
	if panel.ActiveContextID != c3.ID {
		t.Fatalf("expected %q still active, got %q", c3.ID, panel.ActiveContextID)
	}
	if historyContains(ws, closedID) {
		t.Fatalf("closed id %q still in history", closedID)
	}
}

func TestEndToEndSplitThenCloseSplitTab(t *testing.T) {
	ws := NewWorkspace()
	c1 := testContext("context1")
	ws = SelectContext(ws, c1)
	original := activeTabOf(t, ws)

	ws, split, ok := SplitRight(ws, original.ID)
	if !ok {
		t.Fatalf("split failed")
	}
	if len(ws.Panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(ws.Panels))
	}
	for _, p := range ws.Panels {
		if len(p.Tabs) != 1 || p.Tabs[0].Context.ID != c1.ID {
			t.Fatalf("each panel must hold one %q tab", c1.ID)
		}
	}
	if ws.ActivePanelID != ws.Panels[1].ID {
		t.Fatalf("expected panel 2 active")
	}

	ws = CloseTab(ws, split.ID)
	checkInvariants(t, ws)
	if len(ws.Panels) != 1 {
		t.Fatalf("expected 1 panel after close, got %d", len(ws.Panels))
	}
	if len(ws.Panels[0].Tabs) != 1 || ws.Panels[0].Tabs[0].ID != original.ID {
		t.Fatalf("original tab must survive the collapse")
	}
}

func TestInvariantsHoldAcrossRandomishScript(t *testing.T) {
	// A fixed operation script that crosses every transition at least once.
	ws := NewWorkspace()
	contexts := []schema.ClusterContext{
		testContext("gke_project-a_asia-northeast1_cluster-1"),
		testContext("arn:aws:eks:ap-northeast-1:123456789012:cluster/eks-cluster-1"),
		testContext("docker-desktop"),
		testContext("minikube"),
	}
	for _, c := range contexts {
		ws = SelectContext(ws, c)
		checkInvariants(t, ws)
	}
	tab := activeTabOf(t, ws)
	var ok bool
	ws, tab, ok = SplitRight(ws, tab.ID)
	if !ok {
		t.Fatalf("split failed")
	}
	checkInvariants(t, ws)

	ws = SelectContext(ws, contexts[0])
	checkInvariants(t, ws)

	panel := ws.Panels[0]
	order := make([]schema.TabID, 0, len(panel.Tabs))
	for i := len(panel.Tabs) - 1; i >= 0; i-- {
		order = append(order, panel.Tabs[i].ID)
	}
	ws = ReorderTabs(ws, panel.ID, order)
	checkInvariants(t, ws)

	ws, _, _, err := MoveTab(ws, ws.Panels[0].Tabs[0].ID, ws.Panels[1].ID, 1)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	checkInvariants(t, ws)

	for len(ws.Panels) > 1 || len(ws.Panels[0].Tabs) > 0 {
		p := ws.Panels[len(ws.Panels)-1]
		if len(p.Tabs) == 0 {
			t.Fatalf("non-sole empty panel survived")
		}
		ws = CloseTab(ws, p.Tabs[0].ID)
		checkInvariants(t, ws)
	}
	if ws.SelectedContext != "" || len(ws.TabHistory) != 0 {
		t.Fatalf("drained workspace kept selection %q history %v", ws.SelectedContext, ws.TabHistory)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ws := NewWorkspace()
	ws = SelectContext(ws, testContext("context1"))
	ws = SelectContext(ws, testContext("context2"))
	tab := activeTabOf(t, ws)
	ws, _, _ = SplitRight(ws, tab.ID)

	restored := WorkspaceFromSnapshot(ws.Snapshot())
	checkInvariants(t, restored)
	if len(restored.Panels) != len(ws.Panels) {
		t.Fatalf("panel count changed across snapshot: %d -> %d", len(ws.Panels), len(restored.Panels))
	}
	for i := range ws.Panels {
		if restored.Panels[i].ID != ws.Panels[i].ID {
			t.Fatalf("panel %d id changed", i)
		}
		if len(restored.Panels[i].Tabs) != len(ws.Panels[i].Tabs) {
			t.Fatalf("panel %d tab count changed", i)
		}
		if restored.Panels[i].ActiveContextID != ws.Panels[i].ActiveContextID {
			t.Fatalf("panel %d focus changed", i)
		}
	}
	if restored.ActivePanelID != ws.ActivePanelID || restored.SelectedContext != ws.SelectedContext {
		t.Fatalf("workspace pointers changed across snapshot")
	}
}

func TestSnapshotFromEmptyYieldsDefault(t *testing.T) {
	ws := WorkspaceFromSnapshot(schema.WorkspaceSnapshot{})
	checkInvariants(t, ws)
	if len(ws.Panels) != 1 || len(ws.Panels[0].Tabs) != 0 {
		t.Fatalf("expected default shape")
	}
}
