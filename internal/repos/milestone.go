package repos

import (
  "context"
  "sort"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type MilestoneRepo interface {
  Get(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID string) (*types.Milestone, error)
  // ListByRoadmap returns the roadmap's milestones ordered by week.
  ListByRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) ([]*types.Milestone, error)
  Put(batch *docstore.WriteBatch, userID, roadmapID uuid.UUID, milestone *types.Milestone)
}

type milestoneRepo struct {
  store docstore.Store
  log   *logger.Logger
}

func NewMilestoneRepo(store docstore.Store, baseLog *logger.Logger) MilestoneRepo {
  return &milestoneRepo{store: store, log: baseLog.With("repo", "MilestoneRepo")}
}

func (mr *milestoneRepo) Get(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID string) (*types.Milestone, error) {
  doc, err := mr.store.Get(ctx, MilestonePath(userID.String(), roadmapID.String(), milestoneID))
  if err != nil {
    return nil, err
  }
  var milestone types.Milestone
  if err := doc.DataTo(&milestone); err != nil {
    return nil, err
  }
  return &milestone, nil
}

func (mr *milestoneRepo) ListByRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) ([]*types.Milestone, error) {
  collection := MilestonesCollection(userID.String(), roadmapID.String())
  var results []*types.Milestone
  after := ""
  for {
    page, err := mr.store.List(ctx, collection, listPageSize, after)
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

func (mr *milestoneRepo) Put(batch *docstore.WriteBatch, userID, roadmapID uuid.UUID, milestone *types.Milestone) {
  batch.Set(MilestonePath(userID.String(), roadmapID.String(), milestone.ID), milestone)
}
