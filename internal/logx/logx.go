package logx

import (
	"context"

	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

type contextKey int

const (
	clusterKey contextKey = iota
	tabKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithCluster annotates the logger with the cluster context id if present.
func WithCluster(ctx context.Context, contextID schema.ContextID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if contextID != "" {
		if current, ok := ctx.Value(clusterKey).(schema.ContextID); ok && current == contextID {
			return log
		}
		log = log.With("context", contextID)
	}
	return log
}

// WithClusterTab annotates the logger with cluster and tab identifiers.
func WithClusterTab(ctx context.Context, contextID schema.ContextID, tabID schema.TabID) pslog.Logger {
	log := WithCluster(ctx, contextID)
	if tabID != "" {
		if current, ok := ctx.Value(tabKey).(schema.TabID); ok && current == tabID {
			return log
		}
		log = log.With("tab", tabID)
	}
	return log
}

// WithResource annotates the logger with a resource reference when available.
func WithResource(log pslog.Logger, ref schema.ResourceRef) pslog.Logger {
	if ref.Kind != "" {
		log = log.With("kind", ref.Kind)
	}
	if ref.Namespace != "" {
		log = log.With("namespace", ref.Namespace)
	}
	if ref.Name != "" {
		log = log.With("name", ref.Name)
	}
	return log
}

// WithSession annotates the logger with a terminal session id when available.
func WithSession(log pslog.Logger, sessionID schema.SessionID) pslog.Logger {
	if sessionID != "" {
		log = log.With("session", sessionID)
	}
	return log
}

// ContextWithCluster stores the cluster marker on the context for log de-duplication.
func ContextWithCluster(ctx context.Context, contextID schema.ContextID) context.Context {
	if ctx == nil || contextID == "" {
		return ctx
	}
	return context.WithValue(ctx, clusterKey, contextID)
}

// ContextWithTab stores the tab marker on the context for log de-duplication.
func ContextWithTab(ctx context.Context, tabID schema.TabID) context.Context {
	if ctx == nil || tabID == "" {
		return ctx
	}
	return context.WithValue(ctx, tabKey, tabID)
}

// ContextWithClusterLogger attaches the logger and cluster marker to the context.
func ContextWithClusterLogger(ctx context.Context, log pslog.Logger, contextID schema.ContextID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithCluster(ctx, contextID)
}
