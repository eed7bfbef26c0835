package core

import "pkt.systems/pslog"

// ServiceDeps captures the collaborators of the core service.
type ServiceDeps struct {
	Clients   ClusterProvider
	Watches   WatchProvider
	Terminals TerminalProvider
	EventSink EventSink
	Logger    pslog.Logger
}
