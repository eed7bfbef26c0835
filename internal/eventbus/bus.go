package eventbus

import (
	"context"
	"sync"

	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

// EventType identifies the event payload.
type EventType string

const (
	// EventWorkspace carries workspace layout changes.
	EventWorkspace EventType = "workspace"
	// EventWatch carries cluster resource watch updates.
	EventWatch EventType = "watch"
	// EventTerminalOutput carries terminal session output.
	EventTerminalOutput EventType = "terminal_output"
	// EventTerminalClosed signals a terminal session ended.
	EventTerminalClosed EventType = "terminal_closed"
)

// Event represents a UI-facing event emitted by the core service and its
// cluster and terminal collaborators.
type Event struct {
	Type           EventType
	Workspace      schema.WorkspaceEvent
	Watch          schema.WatchEvent
	TerminalOutput schema.TerminalOutputEvent
	TerminalClosed schema.TerminalClosedEvent
}

// Bus fans out events to subscribers. Slow subscribers drop events rather
// than block publishers.
type Bus struct {
	mu    sync.Mutex
	subs  map[chan Event]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[chan Event]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber and returns a channel + cancel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan Event, b.depth)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	if b.log != nil {
		b.log.Debug("eventbus subscribe", "subs", count)
	}
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
		if b.log != nil {
			b.log.Debug("eventbus unsubscribe")
		}
	}
}

// OnWorkspaceEvent publishes a workspace event.
func (b *Bus) OnWorkspaceEvent(event schema.WorkspaceEvent) {
	b.publish(Event{Type: EventWorkspace, Workspace: event})
}

// OnWatchEvent publishes a resource watch event.
func (b *Bus) OnWatchEvent(event schema.WatchEvent) {
	b.publish(Event{Type: EventWatch, Watch: event})
}

// OnTerminalOutput publishes terminal output.
func (b *Bus) OnTerminalOutput(event schema.TerminalOutputEvent) {
	b.publish(Event{Type: EventTerminalOutput, TerminalOutput: event})
}

// OnTerminalClosed publishes a terminal close.
func (b *Bus) OnTerminalClosed(event schema.TerminalClosedEvent) {
	b.publish(Event{Type: EventTerminalClosed, TerminalClosed: event})
}

func (b *Bus) publish(event Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := make([]chan Event, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 && b.log != nil {
		b.log.Warn("eventbus dropped events", "type", event.Type, "dropped", dropped)
	}
}
