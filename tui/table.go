package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"pkt.systems/kubedeck/schema"
)

func resourceColumns(width int) []table.Column {
	name := width - 16 - 12 - 8 - 10 - 8
	if name < 20 {
		name = 20
	}
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Namespace", Width: 16},
		{Title: "Status", Width: 12},
		{Title: "Ready", Width: 8},
		{Title: "Age", Width: 10},
	}
}

func resourceRows(resources []schema.ResourceSummary, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(resources))
	for _, res := range resources {
		rows = append(rows, table.Row{
			res.Ref.Name,
			res.Ref.Namespace,
			res.Status,
			res.Ready,
			formatAge(res.Created, now),
		})
	}
	return rows
}

func newResourceTable(theme Theme, width, height int) table.Model {
	t := table.New(
		table.WithColumns(resourceColumns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader
	styles.Selected = theme.TableSelected
	t.SetStyles(styles)
	return t
}

// formatAge renders a creation timestamp the way kubectl does: the largest
// unit only, no decimals.
func formatAge(created time.Time, now time.Time) string {
	if created.IsZero() {
		return "-"
	}
	age := now.Sub(created)
	if age < 0 {
		age = 0
	}
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours())/24)
	}
}
