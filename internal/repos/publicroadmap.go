package repos

import (
  "context"
  "sort"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type PublicRoadmapRepo interface {
  Get(ctx context.Context, roadmapID uuid.UUID) (*types.PublicRoadmap, error)
  ListMilestones(ctx context.Context, roadmapID uuid.UUID) ([]*types.Milestone, error)
  Put(batch *docstore.WriteBatch, mirror *types.PublicRoadmap)
  PutMilestone(batch *docstore.WriteBatch, roadmapID uuid.UUID, milestone *types.Milestone)
}

type publicRoadmapRepo struct {
  store docstore.Store
  log   *logger.Logger
}

func NewPublicRoadmapRepo(store docstore.Store, baseLog *logger.Logger) PublicRoadmapRepo {
  return &publicRoadmapRepo{store: store, log: baseLog.With("repo", "PublicRoadmapRepo")}
}

func (pr *publicRoadmapRepo) Get(ctx context.Context, roadmapID uuid.UUID) (*types.PublicRoadmap, error) {
  doc, err := pr.store.Get(ctx, PublicRoadmapPath(roadmapID.String()))
  if err != nil {
    return nil, err
  }
  var mirror types.PublicRoadmap
  if err := doc.DataTo(&mirror); err != nil {
    return nil, err
  }
  return &mirror, nil
}

func (pr *publicRoadmapRepo) ListMilestones(ctx context.Context, roadmapID uuid.UUID) ([]*types.Milestone, error) {
  collection := PublicMilestonesCollection(roadmapID.String())
  var results []*types.Milestone
  after := ""
  for {
    page, err := pr.store.List(ctx, collection, listPageSize, after)
    if err != nil {
      return nil, err
    }
    for _, doc := range page {
      var milestone types.Milestone
      if err := doc.DataTo(&milestone); err != nil {
        return nil, err
      }
      results = append(results, &milestone)
    }
    if len(page) < listPageSize {
      break
    }
    after = page[len(page)-1].DocID
  }
  sort.Slice(results, func(i, j int) bool { return results[i].Week < results[j].Week })
  return results, nil
}

func (pr *publicRoadmapRepo) Put(batch *docstore.WriteBatch, mirror *types.PublicRoadmap) {
  batch.Set(PublicRoadmapPath(mirror.ID.String()), mirror)
}

func (pr *publicRoadmapRepo) PutMilestone(batch *docstore.WriteBatch, roadmapID uuid.UUID, milestone *types.Milestone) {
  batch.Set(PublicMilestonePath(roadmapID.String(), milestone.ID), milestone)
}
