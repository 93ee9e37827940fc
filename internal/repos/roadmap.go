package repos

import (
  "context"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

const listPageSize = 100

type RoadmapRepo interface {
  GetByID(ctx context.Context, userID, roadmapID uuid.UUID) (*types.Roadmap, error)
  ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error)
  Put(batch *docstore.WriteBatch, userID uuid.UUID, roadmap *types.Roadmap)
}

type roadmapRepo struct {
  store docstore.Store
  log   *logger.Logger
}

func NewRoadmapRepo(store docstore.Store, baseLog *logger.Logger) RoadmapRepo {
  return &roadmapRepo{store: store, log: baseLog.With("repo", "RoadmapRepo")}
}

func (rr *roadmapRepo) GetByID(ctx context.Context, userID, roadmapID uuid.UUID) (*types.Roadmap, error) {
  doc, err := rr.store.Get(ctx, RoadmapPath(userID.String(), roadmapID.String()))
  if err != nil {
    return nil, err
  }
  var roadmap types.Roadmap
  if err := doc.DataTo(&roadmap); err != nil {
    return nil, err
  }
  return &roadmap, nil
}

func (rr *roadmapRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error) {
  collection := RoadmapsCollection(userID.String())
  var results []*types.Roadmap
  after := ""
  for {
    page, err := rr.store.List(ctx, collection, listPageSize, after)
    if err != nil {
      return nil, err
    }
    for _, doc := range page {
      var roadmap types.Roadmap
      if err := doc.DataTo(&roadmap); err != nil {
        return nil, err
      }
      results = append(results, &roadmap)
    }
    if len(page) < listPageSize {
      return results, nil
    }
    after = page[len(page)-1].DocID
  }
}

func (rr *roadmapRepo) Put(batch *docstore.WriteBatch, userID uuid.UUID, roadmap *types.Roadmap) {
  batch.Set(RoadmapPath(userID.String(), roadmap.ID.String()), roadmap)
}
