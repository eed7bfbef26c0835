package core

import (
	"context"
	"errors"
	"sync"

	"pkt.systems/kubedeck/internal/logx"
	"pkt.systems/kubedeck/internal/persist"
	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

// service implements the core service behavior. All workspace mutation runs
// under one mutex; the pure transition functions do the actual work and the
// service persists and publishes the resulting snapshot.
type service struct {
	cfg       schema.ServiceConfig
	clients   ClusterProvider
	watches   WatchProvider
	terminals TerminalProvider
	sink      EventSink
	store     *persist.Store
	logger    pslog.Logger
	mu        sync.Mutex
	ws        Workspace
}

// NewService constructs the core service implementation. A previously
// persisted workspace for the configured kubeconfig is restored when found.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) (Service, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	var store *persist.Store
	if cfg.StateDir != "" {
		store, err = persist.NewStoreWithLogger(cfg.StateDir, logger)
		if err != nil {
			return nil, err
		}
	}
	ws := NewWorkspace()
	if store != nil {
		snapshot, ok, err := store.Load(cfg.KubeconfigPath)
		if err != nil {
			logger.Warn("workspace restore failed", "err", err)
		} else if ok {
			ws = WorkspaceFromSnapshot(snapshot.Workspace)
			logger.Info("workspace restored", "panels", len(ws.Panels))
		}
	}
	return &service{
		cfg:       cfg,
		clients:   deps.Clients,
		watches:   deps.Watches,
		terminals: deps.Terminals,
		sink:      deps.EventSink,
		store:     store,
		logger:    logger,
		ws:        ws,
	}, nil
}

func (s *service) SelectContext(ctx context.Context, req schema.SelectContextRequest) (schema.SelectContextResponse, error) {
	if ctx == nil {
		return schema.SelectContextResponse{}, errors.New("missing context")
	}
	if req.Context.ID == "" {
		return schema.SelectContextResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context.ID)

	s.mu.Lock()
	s.ws = SelectContext(s.ws, req.Context)
	snapshot := s.ws.Snapshot()
	s.mu.Unlock()

	s.commit(log, snapshot, schema.WorkspaceEventSelected)
	log.Info("workspace context selected", "panels", len(snapshot.Panels))
	return schema.SelectContextResponse{Workspace: snapshot}, nil
}

func (s *service) CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error) {
	if ctx == nil {
		return schema.CloseTabResponse{}, errors.New("missing context")
	}
	log := pslog.Ctx(ctx).With("tab", req.TabID)

	s.mu.Lock()
	if pi, _ := s.ws.findTab(req.TabID); pi < 0 {
		s.mu.Unlock()
		log.Warn("workspace tab close failed", "err", schema.ErrTabNotFound)
		return schema.CloseTabResponse{}, schema.ErrTabNotFound
	}
	s.ws = CloseTab(s.ws, req.TabID)
	snapshot := s.ws.Snapshot()
	s.mu.Unlock()

	s.commit(log, snapshot, schema.WorkspaceEventClosed)
	log.Info("workspace tab closed", "panels", len(snapshot.Panels))
	return schema.CloseTabResponse{Workspace: snapshot}, nil
}

func (s *service) SplitRight(ctx context.Context, req schema.SplitRightRequest) (schema.SplitRightResponse, error) {
	if ctx == nil {
		return schema.SplitRightResponse{}, errors.New("missing context")
	}
	log := pslog.Ctx(ctx).With("tab", req.TabID)

	s.mu.Lock()
	next, newTab, ok := SplitRight(s.ws, req.TabID)
	if !ok {
		s.mu.Unlock()
		log.Warn("workspace split failed", "err", schema.ErrTabNotFound)
		return schema.SplitRightResponse{}, schema.ErrTabNotFound
	}
	s.ws = next
	snapshot := s.ws.Snapshot()
	s.mu.Unlock()

	s.commit(log, snapshot, schema.WorkspaceEventSplit)
	log.Info("workspace panel split", "new_tab", newTab.ID, "panels", len(snapshot.Panels))
	return schema.SplitRightResponse{
		Workspace: snapshot,
		NewTab:    schema.TabSnapshot{ID: newTab.ID, Context: newTab.Context, Active: true},
	}, nil
}

func (s *service) ReorderTabs(ctx context.Context, req schema.ReorderTabsRequest) (schema.ReorderTabsResponse, error) {
	if ctx == nil {
		return schema.ReorderTabsResponse{}, errors.New("missing context")
	}
	log := pslog.Ctx(ctx).With("panel", req.PanelID)

	s.mu.Lock()
	if s.ws.panelIndex(req.PanelID) < 0 {
		s.mu.Unlock()
		log.Warn("workspace reorder failed", "err", schema.ErrPanelNotFound)
		return schema.ReorderTabsResponse{}, schema.ErrPanelNotFound
	}
	s.ws = ReorderTabs(s.ws, req.PanelID, req.Order)
	snapshot := s.ws.Snapshot()
	s.mu.Unlock()

	s.commit(log, snapshot, schema.WorkspaceEventReordered)
	log.Info("workspace tabs reordered", "order", len(req.Order))
	return schema.ReorderTabsResponse{Workspace: snapshot}, nil
}

func (s *service) MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error) {
	if ctx == nil {
		return schema.MoveTabResponse{}, errors.New("missing context")
	}
	log := pslog.Ctx(ctx).With("tab", req.TabID, "dest_panel", req.DestPanel)

	s.mu.Lock()
	next, newID, oldID, err := MoveTab(s.ws, req.TabID, req.DestPanel, req.DestIndex)
	if err != nil {
		s.mu.Unlock()
		log.Warn("workspace tab move failed", "err", err)
		return schema.MoveTabResponse{}, err
	}
	s.ws = next
	snapshot := s.ws.Snapshot()
	s.mu.Unlock()

	s.commit(log, snapshot, schema.WorkspaceEventMoved)
	log.Info("workspace tab moved", "new_tab", newID)
	return schema.MoveTabResponse{Workspace: snapshot, OldTabID: oldID, NewTabID: newID}, nil
}

func (s *service) GetWorkspace(ctx context.Context, req schema.GetWorkspaceRequest) (schema.GetWorkspaceResponse, error) {
	if ctx == nil {
		return schema.GetWorkspaceResponse{}, errors.New("missing context")
	}
	s.mu.Lock()
	snapshot := s.ws.Snapshot()
	s.mu.Unlock()
	return schema.GetWorkspaceResponse{Workspace: snapshot}, nil
}

// commit persists the snapshot and publishes the workspace event. Persist
// failures are logged, not surfaced; the in-memory workspace is the truth.
func (s *service) commit(log pslog.Logger, snapshot schema.WorkspaceSnapshot, eventType schema.WorkspaceEventType) {
	if s.store != nil {
		state := persist.StateSnapshot{Workspace: snapshot, Theme: s.cfg.DefaultTheme}
		if err := s.store.Save(s.cfg.KubeconfigPath, state); err != nil {
			log.Warn("workspace persist failed", "err", err)
		}
	}
	if s.sink != nil {
		s.sink.OnWorkspaceEvent(schema.WorkspaceEvent{Type: eventType, Workspace: snapshot})
	}
}
