package services

import (
  "context"
  "encoding/json"
  "time"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

const publicRoadmapCacheTTL = 5 * time.Minute

type PublicRoadmapView struct {
  Roadmap    *types.PublicRoadmap `json:"roadmap"`
  Milestones []*types.Milestone   `json:"milestones"`
}

// PublicRoadmapService serves unauthenticated reads of shared roadmaps
// from the mirror, cache-aside. Cache unavailability degrades to direct
// reads, never to errors.
type PublicRoadmapService interface {
  Get(ctx context.Context, roadmapID uuid.UUID) (*PublicRoadmapView, error)
}

type publicRoadmapService struct {
  log        *logger.Logger
  publicRepo repos.PublicRoadmapRepo
  cache      PublicRoadmapCache
}

func NewPublicRoadmapService(baseLog *logger.Logger, publicRepo repos.PublicRoadmapRepo, cache PublicRoadmapCache) PublicRoadmapService {
  return &publicRoadmapService{
    log:        baseLog.With("service", "PublicRoadmapService"),
    publicRepo: publicRepo,
    cache:      cache,
  }
}

func (prs *publicRoadmapService) Get(ctx context.Context, roadmapID uuid.UUID) (*PublicRoadmapView, error) {
  key := publicRoadmapCacheKey(roadmapID)
  if prs.cache != nil {
    if raw, ok := prs.cache.Get(ctx, key); ok {
      var view PublicRoadmapView
      if err := json.Unmarshal(raw, &view); err == nil {
        return &view, nil
      }
    }
  }

  mirror, err := prs.publicRepo.Get(ctx, roadmapID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return nil, apperr.NotFound("roadmap not found or not public")
    }
    return nil, apperr.Internal(err)
  }
  milestones, err := prs.publicRepo.ListMilestones(ctx, roadmapID)
  if err != nil {
    return nil, apperr.Internal(err)
  }

  view := &PublicRoadmapView{Roadmap: mirror, Milestones: milestones}
  if prs.cache != nil {
    if raw, err := json.Marshal(view); err == nil {
      prs.cache.Set(ctx, key, raw, publicRoadmapCacheTTL)
    }
  }
  return view, nil
}
