package tui

import (
	"fmt"
	"strings"

	"pkt.systems/kubedeck/internal/conntree"
	"pkt.systems/kubedeck/schema"
)

// sidebarRow is one visible line of the connection tree.
type sidebarRow struct {
	depth   int
	node    conntree.Node
	context schema.ClusterContext
}

// sidebar renders the connection-target tree and tracks the cursor.
type sidebar struct {
	tree   *conntree.Tree
	rows   []sidebarRow
	cursor int
	width  int
}

var providerFolders = []struct {
	provider schema.Provider
	label    string
}{
	{schema.ProviderGKE, "Google Kubernetes Engine"},
	{schema.ProviderEKS, "Amazon EKS"},
	{schema.ProviderAKS, "Azure AKS"},
	{schema.ProviderLocal, "Local"},
	{schema.ProviderUnknown, "Other"},
}

func newSidebar(width int) sidebar {
	return sidebar{tree: conntree.New(), width: width}
}

// setContexts rebuilds the tree grouped by provider. Empty groups are
// omitted so the sidebar stays short.
func (s *sidebar) setContexts(contexts []schema.ClusterContext) {
	tree := conntree.New()
	for _, group := range providerFolders {
		var members []schema.ClusterContext
		for _, cc := range contexts {
			if cc.Provider == group.provider {
				members = append(members, cc)
			}
		}
		if len(members) == 0 {
			continue
		}
		folderID, err := tree.AddFolder(conntree.RootID, group.label)
		if err != nil {
			continue
		}
		for _, cc := range members {
			if _, err := tree.AddContext(folderID, cc); err != nil {
				continue
			}
		}
	}
	s.tree = tree
	s.rebuildRows()
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *sidebar) rebuildRows() {
	s.rows = s.rows[:0]
	s.tree.Walk(func(depth int, node conntree.Node) bool {
		s.rows = append(s.rows, sidebarRow{depth: depth, node: node, context: node.Context})
		return true
	})
}

func (s *sidebar) moveCursor(delta int) {
	if len(s.rows) == 0 {
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
}

// selected returns the context under the cursor, if the cursor is on one.
func (s *sidebar) selected() (schema.ClusterContext, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return schema.ClusterContext{}, false
	}
	row := s.rows[s.cursor]
	if row.node.Kind != conntree.KindContext {
		return schema.ClusterContext{}, false
	}
	return row.context, true
}

func (s *sidebar) view(theme Theme, focused bool, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Clusters"))
	b.WriteString("\n")
	if len(s.rows) == 0 {
		b.WriteString(theme.Muted.Render("no contexts found"))
	}
	for i, row := range s.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		indent := strings.Repeat("  ", row.depth)
		label := row.node.Name
		if row.node.Kind == conntree.KindContext {
			label = row.context.DisplayName()
			if row.context.Region != "" {
				label = fmt.Sprintf("%s (%s)", label, row.context.Region)
			}
		}
		line := indent + label
		switch {
		case focused && i == s.cursor:
			b.WriteString(theme.TableSelected.Render("> " + line))
		case row.node.Kind == conntree.KindFolder:
			b.WriteString(theme.Accent.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
	}
	border := theme.Border
	if focused {
		border = theme.BorderFocused
	}
	return border.Width(s.width).Height(height).Render(b.String())
}
