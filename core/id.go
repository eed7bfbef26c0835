package core

import (
	"crypto/rand"
	"encoding/hex"

	"pkt.systems/kubedeck/schema"
)

func newPanelID() schema.PanelID {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "panel-unknown"
	}
	return schema.PanelID(hex.EncodeToString(buf[:]))
}

// tabIDFor derives a tab id from its panel and context. Relocating a tab
// changes its id; two tabs in one panel bound to the same context share one.
func tabIDFor(panelID schema.PanelID, contextID schema.ContextID) schema.TabID {
	return schema.TabID(string(panelID) + ":" + string(contextID))
}
