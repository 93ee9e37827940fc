package services

import (
  "context"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

// PublicMirrorService keeps the denormalized publicRoadmaps tree in step
// with each roadmap's is_public flag. It runs after the owner-side write
// commits, never inside it, so the mirror is eventually consistent with
// the roadmap.
type PublicMirrorService interface {
  // RoadmapWritten inspects the before/after images of a roadmap write and
  // creates, refreshes or tears down the mirror. before is nil on create.
  RoadmapWritten(ctx context.Context, userID uuid.UUID, before, after *types.Roadmap) error
  // RoadmapDeleted tears down whatever mirror the roadmap had.
  RoadmapDeleted(ctx context.Context, roadmapID uuid.UUID) error
}

type publicMirrorService struct {
  store         docstore.Store
  log           *logger.Logger
  milestoneRepo repos.MilestoneRepo
  publicRepo    repos.PublicRoadmapRepo
  cache         PublicRoadmapCache
}

func NewPublicMirrorService(
  store docstore.Store,
  baseLog *logger.Logger,
  milestoneRepo repos.MilestoneRepo,
  publicRepo repos.PublicRoadmapRepo,
  cache PublicRoadmapCache,
) PublicMirrorService {
  return &publicMirrorService{
    store:         store,
    log:           baseLog.With("service", "PublicMirrorService"),
    milestoneRepo: milestoneRepo,
    publicRepo:    publicRepo,
    cache:         cache,
  }
}

func (pms *publicMirrorService) RoadmapWritten(ctx context.Context, userID uuid.UUID, before, after *types.Roadmap) error {
  if after == nil {
    return nil
  }
  wasPublic := before != nil && before.IsPublic

  switch {
  case after.IsPublic && !wasPublic:
    return pms.copyMirror(ctx, userID, after, true)
  case after.IsPublic && wasPublic:
    // Still public: refresh the filtered root fields only.
    return pms.copyMirror(ctx, userID, after, false)
  case !after.IsPublic && wasPublic:
    return pms.RoadmapDeleted(ctx, after.ID)
  }
  return nil
}

func (pms *publicMirrorService) copyMirror(ctx context.Context, userID uuid.UUID, roadmap *types.Roadmap, withMilestones bool) error {
  batch := pms.store.NewBatch()
  pms.publicRepo.Put(batch, types.MirrorOf(userID, roadmap))

  if withMilestones {
    milestones, err := pms.milestoneRepo.ListByRoadmap(ctx, userID, roadmap.ID)
    if err != nil {
      return err
    }
    for _, m := range milestones {
      pms.publicRepo.PutMilestone(batch, roadmap.ID, m)
    }
  }

  if err := pms.store.Commit(ctx, batch); err != nil {
    return err
  }
  pms.invalidate(ctx, roadmap.ID)
  pms.log.Info("public mirror updated", "roadmap_id", roadmap.ID, "with_milestones", withMilestones)
  return nil
}

func (pms *publicMirrorService) RoadmapDeleted(ctx context.Context, roadmapID uuid.UUID) error {
  if _, err := pms.store.DeleteTree(ctx, repos.PublicMilestonesCollection(roadmapID.String()), docstore.DefaultDeleteBatchSize); err != nil {
    return err
  }
  if err := pms.store.Delete(ctx, repos.PublicRoadmapPath(roadmapID.String())); err != nil {
    return err
  }
  pms.invalidate(ctx, roadmapID)
  pms.log.Info("public mirror removed", "roadmap_id", roadmapID)
  return nil
}

func (pms *publicMirrorService) invalidate(ctx context.Context, roadmapID uuid.UUID) {
  if pms.cache == nil {
    return
  }
  pms.cache.Delete(ctx, publicRoadmapCacheKey(roadmapID))
}

func publicRoadmapCacheKey(roadmapID uuid.UUID) string {
  return "public_roadmap:" + roadmapID.String()
}
