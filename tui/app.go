package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pkt.systems/kubedeck/core"
	"pkt.systems/kubedeck/internal/eventbus"
	"pkt.systems/kubedeck/schema"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusMain
)

// tabState is per-tab UI state. It is keyed by tab id and never leaves the
// TUI; the workspace state machine knows nothing about kinds or namespaces.
type tabState struct {
	kind      schema.ResourceKind
	namespace string
}

// Options configures the TUI.
type Options struct {
	Theme        schema.ThemeName
	InitialKind  schema.ResourceKind
	SidebarWidth int
}

// Model is the top-level bubbletea model.
type Model struct {
	svc    core.Service
	events <-chan eventbus.Event
	theme  Theme

	sidebar sidebar
	table   table.Model
	detail  detailPane
	filter  textinput.Model

	ws          schema.WorkspaceSnapshot
	resources   []schema.ResourceSummary
	overviews   map[schema.ContextID]overviewLoadedMsg
	namespaces  map[schema.ContextID][]string
	tabStates   map[schema.TabID]tabState
	initialKind schema.ResourceKind

	focus     focusArea
	filtering bool
	status    string
	errText   string
	width     int
	height    int
	ready     bool
}

// NewModel builds the initial model around a core service and its event bus.
func NewModel(svc core.Service, events <-chan eventbus.Event, opts Options) Model {
	theme := ThemeByName(opts.Theme)
	sidebarWidth := opts.SidebarWidth
	if sidebarWidth <= 0 {
		sidebarWidth = 32
	}
	initialKind := opts.InitialKind
	if !initialKind.Known() {
		initialKind = schema.KindPods
	}
	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.CharLimit = 64
	return Model{
		svc:         svc,
		events:      events,
		theme:       theme,
		sidebar:     newSidebar(sidebarWidth),
		table:       newResourceTable(theme, 80, 20),
		detail:      newDetailPane(80, 20),
		filter:      filter,
		overviews:   make(map[schema.ContextID]overviewLoadedMsg),
		namespaces:  make(map[schema.ContextID][]string),
		tabStates:   make(map[schema.TabID]tabState),
		initialKind: initialKind,
	}
}

// Init loads the contexts, the persisted workspace, and starts the bus pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadContextsCmd(m.svc),
		func() tea.Msg {
			resp, err := m.svc.GetWorkspace(context.Background(), schema.GetWorkspaceRequest{})
			if err != nil {
				return errMsg{err}
			}
			return workspaceChangedMsg{workspace: resp.Workspace}
		},
		waitForBusEvent(m.events),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case contextsLoadedMsg:
		m.sidebar.setContexts(msg.contexts)
		m.status = fmt.Sprintf("%d contexts", len(msg.contexts))
		return m, nil

	case workspaceChangedMsg:
		return m.applyWorkspace(msg.workspace)

	case resourcesLoadedMsg:
		m.resources = msg.resources
		m.refreshTableRows()
		m.status = fmt.Sprintf("%d %s in %s", len(msg.resources), msg.kind, msg.context)
		return m, nil

	case detailLoadedMsg:
		m.detail.show(msg.detail)
		return m, nil

	case overviewLoadedMsg:
		m.overviews[msg.context] = msg
		return m, nil

	case namespacesLoadedMsg:
		m.namespaces[msg.context] = msg.names
		return m, nil

	case terminalStartedMsg:
		m.status = fmt.Sprintf("terminal session %s started", msg.session)
		return m, nil

	case busEventMsg:
		return m.applyBusEvent(msg.event)

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			m.refreshTableRows()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.refreshTableRows()
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusMain
		} else {
			m.focus = focusSidebar
		}
		return m, nil

	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, nil

	case "esc":
		if m.detail.visible {
			m.detail.hide()
			return m, nil
		}
		m.errText = ""
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sidebar.moveCursor(-1)
	case "down", "j":
		m.sidebar.moveCursor(1)
	case "enter":
		if target, ok := m.sidebar.selected(); ok {
			return m, selectContextCmd(m.svc, target)
		}
	}
	return m, nil
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panel, havePanel := activePanel(m.ws)
	tab, haveTab := schema.TabSnapshot{}, false
	if havePanel {
		tab, haveTab = activeTab(panel)
	}

	switch msg.String() {
	case "ctrl+w":
		if haveTab {
			return m, closeTabCmd(m.svc, tab.ID)
		}
	case "ctrl+s":
		if haveTab {
			return m, splitRightCmd(m.svc, tab.ID)
		}
	case "[":
		if havePanel {
			if order, ok := reorderedTabIDs(panel, -1); ok {
				return m, reorderTabsCmd(m.svc, panel.ID, order)
			}
		}
	case "]":
		if havePanel {
			if order, ok := reorderedTabIDs(panel, 1); ok {
				return m, reorderTabsCmd(m.svc, panel.ID, order)
			}
		}
	case "ctrl+left":
		if haveTab {
			if dest, ok := neighborPanel(m.ws, -1); ok {
				return m, moveTabCmd(m.svc, tab.ID, dest.ID, len(dest.Tabs))
			}
		}
	case "ctrl+right":
		if haveTab {
			if dest, ok := neighborPanel(m.ws, 1); ok {
				return m, moveTabCmd(m.svc, tab.ID, dest.ID, len(dest.Tabs))
			}
		}
	case "r":
		if haveTab {
			state := m.stateFor(tab)
			return m, tea.Batch(
				loadResourcesCmd(m.svc, tab.Context.ID, state.kind, state.namespace),
				loadOverviewCmd(m.svc, tab.Context.ID),
			)
		}
	case "K":
		if haveTab {
			state := m.stateFor(tab)
			state.kind = nextKind(state.kind, 1)
			m.tabStates[tab.ID] = state
			return m, loadResourcesCmd(m.svc, tab.Context.ID, state.kind, state.namespace)
		}
	case "J":
		if haveTab {
			state := m.stateFor(tab)
			state.kind = nextKind(state.kind, -1)
			m.tabStates[tab.ID] = state
			return m, loadResourcesCmd(m.svc, tab.Context.ID, state.kind, state.namespace)
		}
	case "n":
		if haveTab {
			state := m.stateFor(tab)
			state.namespace = nextNamespace(m.namespaces[tab.Context.ID], state.namespace)
			m.tabStates[tab.ID] = state
			return m, loadResourcesCmd(m.svc, tab.Context.ID, state.kind, state.namespace)
		}
	case "d", "enter":
		if haveTab {
			if ref, ok := m.selectedResource(); ok {
				return m, loadDetailCmd(m.svc, tab.Context.ID, ref)
			}
		}
	case "t":
		if haveTab {
			return m, createTerminalCmd(m.svc, tab.Context.ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) applyWorkspace(ws schema.WorkspaceSnapshot) (tea.Model, tea.Cmd) {
	m.ws = ws
	m.pruneTabStates()
	panel, ok := activePanel(ws)
	if !ok {
		m.resources = nil
		m.refreshTableRows()
		return m, nil
	}
	tab, ok := activeTab(panel)
	if !ok {
		m.resources = nil
		m.refreshTableRows()
		return m, nil
	}
	m.focus = focusMain
	state := m.stateFor(tab)
	cmds := []tea.Cmd{loadResourcesCmd(m.svc, tab.Context.ID, state.kind, state.namespace)}
	if _, seen := m.overviews[tab.Context.ID]; !seen {
		cmds = append(cmds, loadOverviewCmd(m.svc, tab.Context.ID))
		cmds = append(cmds, loadNamespacesCmd(m.svc, tab.Context.ID))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applyBusEvent(event eventbus.Event) (tea.Model, tea.Cmd) {
	pump := waitForBusEvent(m.events)
	switch event.Type {
	case eventbus.EventWorkspace:
		next, cmd := m.applyWorkspace(event.Workspace.Workspace)
		return next, tea.Batch(cmd, pump)
	case eventbus.EventWatch:
		watch := event.Watch
		m.status = fmt.Sprintf("%s %s %s", watch.Kind, watch.Type, watch.Summary.Ref.Name)
		panel, okPanel := activePanel(m.ws)
		if okPanel {
			if tab, okTab := activeTab(panel); okTab && tab.Context.ID == watch.Context {
				state := m.stateFor(tab)
				if state.kind == watch.Kind {
					return m, tea.Batch(loadResourcesCmd(m.svc, tab.Context.ID, state.kind, state.namespace), pump)
				}
			}
		}
		return m, pump
	case eventbus.EventTerminalClosed:
		m.status = fmt.Sprintf("terminal session %s closed", event.TerminalClosed.SessionID)
		return m, pump
	default:
		return m, pump
	}
}

// stateFor returns the per-tab UI state, seeding defaults for new tabs.
func (m Model) stateFor(tab schema.TabSnapshot) tabState {
	if state, ok := m.tabStates[tab.ID]; ok {
		return state
	}
	state := tabState{kind: m.initialKind}
	m.tabStates[tab.ID] = state
	return state
}

// pruneTabStates drops UI state for tabs that no longer exist.
func (m Model) pruneTabStates() {
	live := make(map[schema.TabID]bool)
	for _, panel := range m.ws.Panels {
		for _, tab := range panel.Tabs {
			live[tab.ID] = true
		}
	}
	for id := range m.tabStates {
		if !live[id] {
			delete(m.tabStates, id)
		}
	}
}

func (m *Model) refreshTableRows() {
	filtered := m.resources
	if query := strings.TrimSpace(m.filter.Value()); query != "" {
		filtered = nil
		for _, res := range m.resources {
			if strings.Contains(strings.ToLower(res.Ref.Name), strings.ToLower(query)) {
				filtered = append(filtered, res)
			}
		}
	}
	m.table.SetRows(resourceRows(filtered, timeNow()))
	if m.table.Cursor() >= len(filtered) {
		m.table.SetCursor(0)
	}
}

func (m Model) selectedResource() (schema.ResourceRef, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return schema.ResourceRef{}, false
	}
	panel, ok := activePanel(m.ws)
	if !ok {
		return schema.ResourceRef{}, false
	}
	tab, ok := activeTab(panel)
	if !ok {
		return schema.ResourceRef{}, false
	}
	state := m.stateFor(tab)
	return schema.ResourceRef{Kind: state.kind, Name: row[0], Namespace: row[1]}, true
}

func (m *Model) resize() {
	mainWidth := m.width - m.sidebar.width - 4
	if mainWidth < 40 {
		mainWidth = 40
	}
	bodyHeight := m.height - 6
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	m.table.SetColumns(resourceColumns(mainWidth))
	m.table.SetHeight(bodyHeight - 4)
	m.detail.view.Width = mainWidth
	m.detail.view.Height = bodyHeight
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	bodyHeight := m.height - 6
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	left := m.sidebar.view(m.theme, m.focus == focusSidebar, bodyHeight)
	right := m.renderMain(bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return strings.Join([]string{m.renderHeader(), body, m.renderStatus()}, "\n")
}

func (m Model) renderHeader() string {
	panel, ok := activePanel(m.ws)
	if !ok {
		return m.theme.Title.Render("kubedeck") + " " + m.theme.Muted.Render("select a context to begin")
	}
	tab, ok := activeTab(panel)
	if !ok {
		return m.theme.Title.Render("kubedeck")
	}
	header := m.theme.Title.Render("kubedeck") + " " + m.theme.Accent.Render(tab.Context.DisplayName())
	if ov, seen := m.overviews[tab.Context.ID]; seen {
		header += m.theme.Muted.Render(fmt.Sprintf(
			"  %s %s v%s  nodes %d/%d  pods %d/%d  ns %d",
			ov.overview.Provider, ov.overview.Region, ov.overview.ClusterVersion,
			ov.stats.ReadyNodes, ov.stats.TotalNodes,
			ov.stats.RunningPods, ov.stats.TotalPods,
			ov.stats.NamespaceCount,
		))
	}
	return header
}

func (m Model) renderMain(height int) string {
	if len(m.ws.Panels) == 0 {
		return m.theme.Border.Height(height).Render(m.theme.Muted.Render("no open tabs"))
	}
	panels := make([]string, 0, len(m.ws.Panels))
	for _, panel := range m.ws.Panels {
		focused := m.focus == focusMain && panel.ID == m.ws.ActivePanelID
		var content string
		if focused && m.detail.visible {
			content = m.detail.render(m.theme)
		} else if focused {
			content = m.table.View()
			if m.filtering || m.filter.Value() != "" {
				content = m.filter.View() + "\n" + content
			}
		} else {
			content = m.theme.Muted.Render(fmt.Sprintf("%d tabs", len(panel.Tabs)))
		}
		border := m.theme.Border
		if focused {
			border = m.theme.BorderFocused
		}
		panels = append(panels, border.Height(height).Render(renderTabStrip(m.theme, panel)+"\n"+content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m Model) renderStatus() string {
	if m.errText != "" {
		return m.theme.StatusError.Render("error: " + m.errText)
	}
	help := "tab focus  enter select  ctrl+w close  ctrl+s split  [/] reorder  ctrl+←/→ move  / filter  r refresh  d detail  t terminal  q quit"
	if m.status != "" {
		return m.theme.StatusBar.Render(m.status + "  " + help)
	}
	return m.theme.StatusBar.Render(help)
}

// timeNow is swapped in tests for deterministic ages.
var timeNow = time.Now

// nextNamespace cycles empty (all namespaces) then each known namespace.
func nextNamespace(names []string, current string) string {
	if len(names) == 0 {
		return ""
	}
	if current == "" {
		return names[0]
	}
	for i, name := range names {
		if name == current {
			if i+1 >= len(names) {
				return ""
			}
			return names[i+1]
		}
	}
	return ""
}

// nextKind steps through the supported resource kinds, wrapping around.
func nextKind(current schema.ResourceKind, delta int) schema.ResourceKind {
	kinds := schema.AllKinds()
	for i, kind := range kinds {
		if kind == current {
			j := (i + delta + len(kinds)) % len(kinds)
			return kinds[j]
		}
	}
	return kinds[0]
}

// Run starts the TUI program and blocks until it exits.
func Run(svc core.Service, bus *eventbus.Bus, opts Options) error {
	events, cancel := bus.Subscribe()
	defer cancel()
	program := tea.NewProgram(NewModel(svc, events, opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
