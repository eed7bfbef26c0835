package kube

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

// WatchManager runs polling watches over the client pool. Each watch lists
// its kind on an interval and emits added/modified/deleted diffs against the
// previous poll. The first poll is the baseline and emits nothing.
type WatchManager struct {
	mu       sync.Mutex
	pool     *Pool
	interval time.Duration
	emit     func(schema.WatchEvent)
	watches  map[schema.WatchID]context.CancelFunc
	log      pslog.Logger
}

// NewWatchManager constructs a watch manager emitting into emit.
func NewWatchManager(pool *Pool, interval time.Duration, emit func(schema.WatchEvent), logger pslog.Logger) *WatchManager {
	if interval <= 0 {
		interval = schema.DefaultWatchInterval
	}
	if emit == nil {
		emit = func(schema.WatchEvent) {}
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &WatchManager{
		pool:     pool,
		interval: interval,
		emit:     emit,
		watches:  make(map[schema.WatchID]context.CancelFunc),
		log:      logger,
	}
}

// Start begins a watch and returns its id. The baseline poll completes
// before Start returns, so changes made after Start always surface as
// diffs. The watch runs until Stop, StopAll, or the parent context is
// canceled.
func (m *WatchManager) Start(ctx context.Context, contextID schema.ContextID, kind schema.ResourceKind, namespace string) (schema.WatchID, error) {
	if !kind.Known() {
		return "", schema.ErrUnsupportedKind
	}
	client, err := m.pool.ClientFor(contextID)
	if err != nil {
		return "", err
	}
	watchID := schema.WatchID(uuid.NewString())
	log := m.log.With("watch", watchID, "context", contextID, "kind", kind)

	baseline, err := m.poll(ctx, client, kind, namespace)
	if err != nil {
		log.Warn("watch baseline failed", "err", err)
		baseline = map[string]schema.ResourceSummary{}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.watches[watchID] = cancel
	m.mu.Unlock()

	log.Debug("watch started", "namespace", namespace, "interval", m.interval)
	go m.run(watchCtx, log, client, watchID, contextID, kind, namespace, baseline)
	return watchID, nil
}

// Stop cancels a running watch.
func (m *WatchManager) Stop(watchID schema.WatchID) error {
	m.mu.Lock()
	cancel, ok := m.watches[watchID]
	if ok {
		delete(m.watches, watchID)
	}
	m.mu.Unlock()
	if !ok {
		return schema.ErrWatchNotFound
	}
	cancel()
	m.log.Debug("watch stopped", "watch", watchID)
	return nil
}

// StopAll cancels every running watch.
func (m *WatchManager) StopAll() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.watches))
	for id, cancel := range m.watches {
		cancels = append(cancels, cancel)
		delete(m.watches, id)
	}
	m.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

func (m *WatchManager) run(ctx context.Context, log pslog.Logger, client Client, watchID schema.WatchID, contextID schema.ContextID, kind schema.ResourceKind, namespace string, previous map[string]schema.ResourceSummary) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		current, err := m.poll(ctx, client, kind, namespace)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("watch poll failed", "err", err)
			continue
		}
		for key, summary := range current {
			old, existed := previous[key]
			switch {
			case !existed:
				m.emit(schema.WatchEvent{WatchID: watchID, Context: contextID, Kind: kind, Type: schema.WatchAdded, Summary: summary})
			case !summariesEqual(old, summary):
				m.emit(schema.WatchEvent{WatchID: watchID, Context: contextID, Kind: kind, Type: schema.WatchModified, Summary: summary})
			}
		}
		for key, summary := range previous {
			if _, exists := current[key]; !exists {
				m.emit(schema.WatchEvent{WatchID: watchID, Context: contextID, Kind: kind, Type: schema.WatchDeleted, Summary: summary})
			}
		}
		previous = current
	}
}

func (m *WatchManager) poll(ctx context.Context, client Client, kind schema.ResourceKind, namespace string) (map[string]schema.ResourceSummary, error) {
	summaries, err := client.ListResources(ctx, kind, namespace)
	if err != nil {
		return nil, err
	}
	out := make(map[string]schema.ResourceSummary, len(summaries))
	for _, summary := range summaries {
		out[summary.Ref.Namespace+"/"+summary.Ref.Name] = summary
	}
	return out, nil
}

func summariesEqual(a, b schema.ResourceSummary) bool {
	return a.Status == b.Status &&
		a.Ready == b.Ready &&
		a.Created.Equal(b.Created) &&
		maps.Equal(a.Labels, b.Labels)
}
