package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"gopkg.in/yaml.v3"

	"pkt.systems/kubedeck/schema"
)

// detailPane shows one resource's full object as YAML in a scrollable view.
type detailPane struct {
	view    viewport.Model
	ref     schema.ResourceRef
	visible bool
}

func newDetailPane(width, height int) detailPane {
	return detailPane{view: viewport.New(width, height)}
}

func (d *detailPane) show(detail schema.ResourceDetail) {
	d.ref = detail.Ref
	d.view.SetContent(renderDetailYAML(detail))
	d.view.GotoTop()
	d.visible = true
}

func (d *detailPane) hide() {
	d.visible = false
}

func (d *detailPane) render(theme Theme) string {
	title := theme.Title.Render(fmt.Sprintf("%s/%s", d.ref.Kind, d.ref.Name))
	return title + "\n" + d.view.View()
}

func renderDetailYAML(detail schema.ResourceDetail) string {
	data, err := yaml.Marshal(detail.Object)
	if err != nil {
		return fmt.Sprintf("failed to render %s/%s: %v", detail.Ref.Kind, detail.Ref.Name, err)
	}
	return string(data)
}
