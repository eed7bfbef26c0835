package schema

// WorkspaceEventType describes workspace lifecycle changes.
type WorkspaceEventType string

const (
	// WorkspaceEventSelected indicates a context was selected or focused.
	WorkspaceEventSelected WorkspaceEventType = "selected"
	// WorkspaceEventClosed indicates a tab was closed.
	WorkspaceEventClosed WorkspaceEventType = "closed"
	// WorkspaceEventSplit indicates a panel was split.
	WorkspaceEventSplit WorkspaceEventType = "split"
	// WorkspaceEventReordered indicates tabs were reordered.
	WorkspaceEventReordered WorkspaceEventType = "reordered"
	// WorkspaceEventMoved indicates a tab moved across panels.
	WorkspaceEventMoved WorkspaceEventType = "moved"
)

// WorkspaceEvent is published after every workspace transition.
type WorkspaceEvent struct {
	Type      WorkspaceEventType
	Workspace WorkspaceSnapshot
}

// TerminalOutputEvent carries output read from a terminal session.
type TerminalOutputEvent struct {
	SessionID SessionID
	Data      string
}

// TerminalClosedEvent signals that a terminal session ended.
type TerminalClosedEvent struct {
	SessionID SessionID
}
