package core

import (
	"context"
	"errors"

	"pkt.systems/kubedeck/internal/kube"
	"pkt.systems/kubedeck/internal/logx"
	"pkt.systems/kubedeck/schema"
	"pkt.systems/pslog"
)

func (s *service) ListContexts(ctx context.Context, req schema.ListContextsRequest) (schema.ListContextsResponse, error) {
	if ctx == nil {
		return schema.ListContextsResponse{}, errors.New("missing context")
	}
	contexts, err := s.clients.Contexts()
	if err != nil {
		pslog.Ctx(ctx).Warn("context list failed", "err", err)
		return schema.ListContextsResponse{}, err
	}
	return schema.ListContextsResponse{Contexts: contexts}, nil
}

func (s *service) ListResources(ctx context.Context, req schema.ListResourcesRequest) (schema.ListResourcesResponse, error) {
	if ctx == nil {
		return schema.ListResourcesResponse{}, errors.New("missing context")
	}
	if req.Context == "" || !req.Kind.Known() {
		return schema.ListResourcesResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context).With("kind", req.Kind)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("resource list failed", "err", err)
		return schema.ListResourcesResponse{}, err
	}
	resources, err := client.ListResources(ctx, req.Kind, req.Namespace)
	if err != nil {
		log.Warn("resource list failed", "err", err)
		return schema.ListResourcesResponse{}, err
	}
	log.Debug("resources listed", "count", len(resources))
	return schema.ListResourcesResponse{Resources: resources}, nil
}

func (s *service) GetResourceDetail(ctx context.Context, req schema.GetResourceDetailRequest) (schema.GetResourceDetailResponse, error) {
	if ctx == nil {
		return schema.GetResourceDetailResponse{}, errors.New("missing context")
	}
	if req.Context == "" || req.Ref.Name == "" || !req.Ref.Kind.Known() {
		return schema.GetResourceDetailResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithResource(logx.WithCluster(ctx, req.Context), req.Ref)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("resource detail failed", "err", err)
		return schema.GetResourceDetailResponse{}, err
	}
	detail, err := client.GetResource(ctx, req.Ref)
	if err != nil {
		log.Warn("resource detail failed", "err", err)
		return schema.GetResourceDetailResponse{}, err
	}
	return schema.GetResourceDetailResponse{Detail: detail}, nil
}

func (s *service) ListCRDGroups(ctx context.Context, req schema.ListCRDGroupsRequest) (schema.ListCRDGroupsResponse, error) {
	if ctx == nil {
		return schema.ListCRDGroupsResponse{}, errors.New("missing context")
	}
	if req.Context == "" {
		return schema.ListCRDGroupsResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("crd group list failed", "err", err)
		return schema.ListCRDGroupsResponse{}, err
	}
	groups, err := client.ListCRDGroups(ctx)
	if err != nil {
		log.Warn("crd group list failed", "err", err)
		return schema.ListCRDGroupsResponse{}, err
	}
	log.Debug("crd groups listed", "count", len(groups))
	return schema.ListCRDGroupsResponse{Groups: groups}, nil
}

func (s *service) ListCustomResources(ctx context.Context, req schema.ListCustomResourcesRequest) (schema.ListCustomResourcesResponse, error) {
	if ctx == nil {
		return schema.ListCustomResourcesResponse{}, errors.New("missing context")
	}
	if req.Context == "" || req.CRD.Group == "" || req.CRD.Version == "" || req.CRD.Plural == "" {
		return schema.ListCustomResourcesResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context).With("crd", req.CRD.Plural+"."+req.CRD.Group)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("custom resource list failed", "err", err)
		return schema.ListCustomResourcesResponse{}, err
	}
	resources, err := client.ListCustomResources(ctx, req.CRD, req.Namespace)
	if err != nil {
		log.Warn("custom resource list failed", "err", err)
		return schema.ListCustomResourcesResponse{}, err
	}
	log.Debug("custom resources listed", "count", len(resources))
	return schema.ListCustomResourcesResponse{Resources: resources}, nil
}

func (s *service) GetCustomResource(ctx context.Context, req schema.GetCustomResourceRequest) (schema.GetCustomResourceResponse, error) {
	if ctx == nil {
		return schema.GetCustomResourceResponse{}, errors.New("missing context")
	}
	if req.Context == "" || req.Name == "" || req.CRD.Group == "" || req.CRD.Version == "" || req.CRD.Plural == "" {
		return schema.GetCustomResourceResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context).With("crd", req.CRD.Plural+"."+req.CRD.Group, "name", req.Name)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("custom resource detail failed", "err", err)
		return schema.GetCustomResourceResponse{}, err
	}
	detail, err := client.GetCustomResource(ctx, req.CRD, req.Name, req.Namespace)
	if err != nil {
		log.Warn("custom resource detail failed", "err", err)
		return schema.GetCustomResourceResponse{}, err
	}
	return schema.GetCustomResourceResponse{Detail: detail}, nil
}

func (s *service) ClusterOverview(ctx context.Context, req schema.ClusterOverviewRequest) (schema.ClusterOverviewResponse, error) {
	if ctx == nil {
		return schema.ClusterOverviewResponse{}, errors.New("missing context")
	}
	if req.Context == "" {
		return schema.ClusterOverviewResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("cluster overview failed", "err", err)
		return schema.ClusterOverviewResponse{}, err
	}
	overview, err := kube.Overview(ctx, client, req.Context)
	if err != nil {
		log.Warn("cluster overview failed", "err", err)
		return schema.ClusterOverviewResponse{}, err
	}
	return schema.ClusterOverviewResponse{Overview: overview}, nil
}

func (s *service) ClusterStats(ctx context.Context, req schema.ClusterStatsRequest) (schema.ClusterStatsResponse, error) {
	if ctx == nil {
		return schema.ClusterStatsResponse{}, errors.New("missing context")
	}
	if req.Context == "" {
		return schema.ClusterStatsResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("cluster stats failed", "err", err)
		return schema.ClusterStatsResponse{}, err
	}
	stats, err := kube.Stats(ctx, client)
	if err != nil {
		log.Warn("cluster stats failed", "err", err)
		return schema.ClusterStatsResponse{}, err
	}
	return schema.ClusterStatsResponse{Stats: stats}, nil
}

func (s *service) DeleteResource(ctx context.Context, req schema.DeleteResourceRequest) (schema.DeleteResourceResponse, error) {
	if ctx == nil {
		return schema.DeleteResourceResponse{}, errors.New("missing context")
	}
	if req.Context == "" || req.Ref.Name == "" || !req.Ref.Kind.Known() {
		return schema.DeleteResourceResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithResource(logx.WithCluster(ctx, req.Context), req.Ref)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("resource delete failed", "err", err)
		return schema.DeleteResourceResponse{}, err
	}
	if err := client.DeleteResource(ctx, req.Ref); err != nil {
		log.Warn("resource delete failed", "err", err)
		return schema.DeleteResourceResponse{}, err
	}
	log.Info("resource deleted")
	return schema.DeleteResourceResponse{}, nil
}

func (s *service) RolloutRestart(ctx context.Context, req schema.RolloutRestartRequest) (schema.RolloutRestartResponse, error) {
	if ctx == nil {
		return schema.RolloutRestartResponse{}, errors.New("missing context")
	}
	if req.Context == "" || req.Name == "" || req.Namespace == "" {
		return schema.RolloutRestartResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context).With("deployment", req.Name, "namespace", req.Namespace)
	client, err := s.clients.ClientFor(req.Context)
	if err != nil {
		log.Warn("rollout restart failed", "err", err)
		return schema.RolloutRestartResponse{}, err
	}
	if err := client.RolloutRestartDeployment(ctx, req.Name, req.Namespace); err != nil {
		log.Warn("rollout restart failed", "err", err)
		return schema.RolloutRestartResponse{}, err
	}
	log.Info("rollout restarted")
	return schema.RolloutRestartResponse{}, nil
}

func (s *service) StartWatch(ctx context.Context, req schema.StartWatchRequest) (schema.StartWatchResponse, error) {
	if ctx == nil {
		return schema.StartWatchResponse{}, errors.New("missing context")
	}
	if req.Context == "" || !req.Kind.Known() {
		return schema.StartWatchResponse{}, schema.ErrInvalidRequest
	}
	log := logx.WithCluster(ctx, req.Context).With("kind", req.Kind)
	watchID, err := s.watches.Start(ctx, req.Context, req.Kind, req.Namespace)
	if err != nil {
		log.Warn("watch start failed", "err", err)
		return schema.StartWatchResponse{}, err
	}
	log.Info("watch started", "watch", watchID)
	return schema.StartWatchResponse{WatchID: watchID}, nil
}

func (s *service) StopWatch(ctx context.Context, req schema.StopWatchRequest) (schema.StopWatchResponse, error) {
	if ctx == nil {
		return schema.StopWatchResponse{}, errors.New("missing context")
	}
	if req.WatchID == "" {
		return schema.StopWatchResponse{}, schema.ErrInvalidRequest
	}
	if err := s.watches.Stop(req.WatchID); err != nil {
		pslog.Ctx(ctx).Warn("watch stop failed", "watch", req.WatchID, "err", err)
		return schema.StopWatchResponse{}, err
	}
	return schema.StopWatchResponse{}, nil
}
