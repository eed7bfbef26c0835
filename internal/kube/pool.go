package kube

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

type poolEntry struct {
	client  Client
	created time.Time
}

// Pool caches one cluster client per kubeconfig context. Entries expire
// after the configured TTL so credential rotation is picked up without a
// restart. In mock mode every context shares one fixture client.
type Pool struct {
	mu      sync.Mutex
	cfg     schema.ServiceConfig
	entries map[schema.ContextID]poolEntry
	factory func(contextName schema.ContextName, kubeconfigPath string) (Client, error)
	now     func() time.Time
	mock    *MockClient
	log     pslog.Logger
}

// NewPool constructs a client pool for the given config.
func NewPool(cfg schema.ServiceConfig, logger pslog.Logger) *Pool {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	p := &Pool{
		cfg:     cfg,
		entries: make(map[schema.ContextID]poolEntry),
		factory: NewClient,
		now:     time.Now,
		log:     logger,
	}
	if cfg.Mock {
		p.mock = NewMockClient()
	}
	return p
}

// ClientFor returns a cached client for the context, building one if the
// cache has no live entry. Contexts the kubeconfig does not declare fail
// with ErrContextNotFound.
func (p *Pool) ClientFor(contextID schema.ContextID) (Client, error) {
	if p.mock != nil {
		return p.mock, nil
	}
	p.mu.Lock()
	p.evictExpiredLocked()
	if entry, ok := p.entries[contextID]; ok {
		p.mu.Unlock()
		return entry.client, nil
	}
	p.mu.Unlock()

	if known, err := p.knownContext(contextID); err == nil && !known {
		p.log.Warn("context not in kubeconfig", "context", contextID)
		return nil, fmt.Errorf("%w: %s", schema.ErrContextNotFound, contextID)
	}

	client, err := p.factory(schema.ContextName(contextID), p.cfg.KubeconfigPath)
	if err != nil {
		p.log.Warn("cluster client build failed", "context", contextID, "err", err)
		return nil, err
	}
	p.mu.Lock()
	p.entries[contextID] = poolEntry{client: client, created: p.now()}
	size := len(p.entries)
	p.mu.Unlock()
	p.log.Debug("cluster client cached", "context", contextID, "pool_size", size)
	return client, nil
}

// Contexts lists the kubeconfig contexts this pool can serve.
func (p *Pool) Contexts() ([]schema.ClusterContext, error) {
	if p.mock != nil {
		return MockContexts(), nil
	}
	return Contexts(p.cfg.KubeconfigPath)
}

// knownContext reports whether the kubeconfig declares the context. An
// unreadable kubeconfig is left for the client factory to report.
func (p *Pool) knownContext(contextID schema.ContextID) (bool, error) {
	contexts, err := Contexts(p.cfg.KubeconfigPath)
	if err != nil {
		return false, err
	}
	for _, cc := range contexts {
		if cc.ID == contextID {
			return true, nil
		}
	}
	return false, nil
}

func (p *Pool) evictExpiredLocked() {
	cutoff := p.now().Add(-p.cfg.ClientTTL)
	for id, entry := range p.entries {
		if entry.created.Before(cutoff) {
			delete(p.entries, id)
		}
	}
}
