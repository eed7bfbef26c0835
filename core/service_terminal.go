package core

import (
	"context"
	"errors"

	"pkt.systems/kubedeck/internal/logx"
	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

func (s *service) CreateTerminal(ctx context.Context, req schema.CreateTerminalRequest) (schema.CreateTerminalResponse, error) {
	if ctx == nil {
		return schema.CreateTerminalResponse{}, errors.New("missing context")
	}
	log := logx.WithCluster(ctx, req.Context)
	sessionID, err := s.terminals.Create(schema.ContextName(req.Context), req.Shell)
	if err != nil {
		log.Warn("terminal create failed", "err", err)
		return schema.CreateTerminalResponse{}, err
	}
	logx.WithSession(log, sessionID).Info("terminal created")
	return schema.CreateTerminalResponse{SessionID: sessionID}, nil
}

func (s *service) WriteTerminal(ctx context.Context, req schema.WriteTerminalRequest) (schema.WriteTerminalResponse, error) {
	if ctx == nil {
		return schema.WriteTerminalResponse{}, errors.New("missing context")
	}
	if req.SessionID == "" {
		return schema.WriteTerminalResponse{}, schema.ErrInvalidRequest
	}
	if err := s.terminals.Write(req.SessionID, req.Data); err != nil {
		logx.WithSession(pslog.Ctx(ctx), req.SessionID).Warn("terminal write failed", "err", err)
		return schema.WriteTerminalResponse{}, err
	}
	return schema.WriteTerminalResponse{}, nil
}

func (s *service) ResizeTerminal(ctx context.Context, req schema.ResizeTerminalRequest) (schema.ResizeTerminalResponse, error) {
	if ctx == nil {
		return schema.ResizeTerminalResponse{}, errors.New("missing context")
	}
	if req.SessionID == "" || req.Rows <= 0 || req.Cols <= 0 {
		return schema.ResizeTerminalResponse{}, schema.ErrInvalidRequest
	}
	if err := s.terminals.Resize(req.SessionID, req.Rows, req.Cols); err != nil {
		logx.WithSession(pslog.Ctx(ctx), req.SessionID).Warn("terminal resize failed", "err", err)
		return schema.ResizeTerminalResponse{}, err
	}
	return schema.ResizeTerminalResponse{}, nil
}

func (s *service) CloseTerminal(ctx context.Context, req schema.CloseTerminalRequest) (schema.CloseTerminalResponse, error) {
	if ctx == nil {
		return schema.CloseTerminalResponse{}, errors.New("missing context")
	}
	if req.SessionID == "" {
		return schema.CloseTerminalResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithSession(pslog.Ctx(ctx), req.SessionID)
	if err := s.terminals.Close(req.SessionID); err != nil {
		log.Warn("terminal close failed", "err", err)
		return schema.CloseTerminalResponse{}, err
	}
	log.Info("terminal closed")
	return schema.CloseTerminalResponse{}, nil
}
