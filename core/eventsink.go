package core

import "pkt.systems/kubedeck/schema"

// EventSink receives workspace events from the core service.
type EventSink interface {
	OnWorkspaceEvent(event schema.WorkspaceEvent)
}
