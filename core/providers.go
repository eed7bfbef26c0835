package core

import (
	"context"

	"pkt.systems/kubedeck/internal/kube"
	"pkt.systems/kubedeck/schema"
)

// ClusterProvider yields per-context cluster clients and the available
// kubeconfig contexts.
type ClusterProvider interface {
	ClientFor(contextID schema.ContextID) (kube.Client, error)
	Contexts() ([]schema.ClusterContext, error)
}

// WatchProvider runs resource watches and emits their events out of band.
type WatchProvider interface {
	Start(ctx context.Context, contextID schema.ContextID, kind schema.ResourceKind, namespace string) (schema.WatchID, error)
	Stop(watchID schema.WatchID) error
	StopAll()
}

// TerminalProvider owns interactive shell sessions pinned to contexts.
type TerminalProvider interface {
	Create(contextName schema.ContextName, shell string) (schema.SessionID, error)
	Write(id schema.SessionID, data string) error
	Resize(id schema.SessionID, rows, cols int) error
	Close(id schema.SessionID) error
	CloseAll()
}
