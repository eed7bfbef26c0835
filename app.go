package kubedeck

import (
	"context"

	"pkt.systems/kubedeck/core"
	"pkt.systems/kubedeck/internal/eventbus"
	"pkt.systems/kubedeck/internal/kube"
	"pkt.systems/kubedeck/internal/termsess"
	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

// App composes the cluster client pool, watch manager, terminal sessions,
// event bus, and the core service behind a single handle. The TUI and the
// CLI subcommands both drive the service through an App.
type App struct {
	Service core.Service
	Bus     *eventbus.Bus

	cfg       schema.ServiceConfig
	pool      *kube.Pool
	watches   *kube.WatchManager
	terminals *termsess.Manager
	logger    pslog.Logger
}

// New builds an App from the service configuration.
func New(cfg schema.ServiceConfig, logger pslog.Logger) (*App, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}

	bus := eventbus.New(logger)
	pool := kube.NewPool(cfg, logger)
	watches := kube.NewWatchManager(pool, cfg.WatchInterval, bus.OnWatchEvent, logger)
	terminals := termsess.NewManager(cfg, bus.OnTerminalOutput, bus.OnTerminalClosed, logger)

	service, err := core.NewService(cfg, core.ServiceDeps{
		Clients:   pool,
		Watches:   watches,
		Terminals: terminals,
		EventSink: bus,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("app ready", "mock", cfg.Mock, "kubeconfig", cfg.KubeconfigPath)
	return &App{
		Service:   service,
		Bus:       bus,
		cfg:       cfg,
		pool:      pool,
		watches:   watches,
		terminals: terminals,
		logger:    logger,
	}, nil
}

// Config returns the normalized service configuration the App runs with.
func (a *App) Config() schema.ServiceConfig {
	return a.cfg
}

// Close stops all watches and terminal sessions.
func (a *App) Close() {
	a.logger.Info("app shutting down")
	a.watches.StopAll()
	a.terminals.CloseAll()
}
