package services

import (
  "context"
  "time"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type RoadmapView struct {
  Roadmap    *types.Roadmap     `json:"roadmap"`
  Milestones []*types.Milestone `json:"milestones"`
}

// RoadmapPatch carries the caller-editable roadmap fields. Nil means
// "leave unchanged".
type RoadmapPatch struct {
  Title       *string              `json:"title,omitempty"`
  Description *string              `json:"description,omitempty"`
  Status      *types.RoadmapStatus `json:"status,omitempty"`
  IsPublic    *bool                `json:"is_public,omitempty"`
}

// MilestonePatch toggles one task's or course's completed flag and/or
// records time spent, in minutes. These are the only milestone fields user
// interaction may touch after generation.
type MilestonePatch struct {
  TaskID    string `json:"task_id,omitempty"`
  CourseID  string `json:"course_id,omitempty"`
  Completed *bool  `json:"completed,omitempty"`
  TimeSpent *int   `json:"time_spent,omitempty"`
}

type RoadmapService interface {
  Get(ctx context.Context, userID, roadmapID uuid.UUID) (*RoadmapView, error)
  List(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error)
  Update(ctx context.Context, userID, roadmapID uuid.UUID, patch *RoadmapPatch) (*types.Roadmap, error)
  UpdateMilestone(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID string, patch *MilestonePatch) (*types.Milestone, error)
  // Delete removes the roadmap root, its milestone and quiz-result
  // subcollections, and any public mirror.
  Delete(ctx context.Context, userID, roadmapID uuid.UUID) error
}

type roadmapService struct {
  store         docstore.Store
  log           *logger.Logger
  roadmapRepo   repos.RoadmapRepo
  milestoneRepo repos.MilestoneRepo
  mirror        PublicMirrorService
  now           func() time.Time
}

func NewRoadmapService(
  store docstore.Store,
  baseLog *logger.Logger,
  roadmapRepo repos.RoadmapRepo,
  milestoneRepo repos.MilestoneRepo,
  mirror PublicMirrorService,
) RoadmapService {
  return &roadmapService{
    store:         store,
    log:           baseLog.With("service", "RoadmapService"),
    roadmapRepo:   roadmapRepo,
    milestoneRepo: milestoneRepo,
    mirror:        mirror,
    now:           time.Now,
  }
}

func (rs *roadmapService) Get(ctx context.Context, userID, roadmapID uuid.UUID) (*RoadmapView, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to view roadmaps")
  }
  roadmap, err := rs.roadmapRepo.GetByID(ctx, userID, roadmapID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return nil, apperr.NotFound("roadmap not found")
    }
    return nil, apperr.Internal(err)
  }
  milestones, err := rs.milestoneRepo.ListByRoadmap(ctx, userID, roadmapID)
  if err != nil {
    return nil, apperr.Internal(err)
  }
  return &RoadmapView{Roadmap: roadmap, Milestones: milestones}, nil
}

func (rs *roadmapService) List(ctx context.Context, userID uuid.UUID) ([]*types.Roadmap, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to view roadmaps")
  }
  roadmaps, err := rs.roadmapRepo.ListByUser(ctx, userID)
  if err != nil {
    return nil, apperr.Internal(err)
  }
  return roadmaps, nil
}

func (rs *roadmapService) Update(ctx context.Context, userID, roadmapID uuid.UUID, patch *RoadmapPatch) (*types.Roadmap, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to edit roadmaps")
  }
  if patch == nil {
    return nil, apperr.InvalidArgument("empty patch")
  }
  if patch.Status != nil && !patch.Status.Valid() {
    return nil, apperr.InvalidArgument("invalid status")
  }

  roadmap, err := rs.roadmapRepo.GetByID(ctx, userID, roadmapID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return nil, apperr.NotFound("roadmap not found")
    }
    return nil, apperr.Internal(err)
  }
  before := *roadmap

  if patch.Title != nil {
    roadmap.Title = *patch.Title
  }
  if patch.Description != nil {
    roadmap.Description = *patch.Description
  }
  if patch.Status != nil {
    roadmap.Status = *patch.Status
  }
  if patch.IsPublic != nil {
    roadmap.IsPublic = *patch.IsPublic
  }
  roadmap.UpdatedAt = rs.now()

  batch := rs.store.NewBatch()
  rs.roadmapRepo.Put(batch, userID, roadmap)
  if err := rs.store.Commit(ctx, batch); err != nil {
    return nil, apperr.Internal(err)
  }

  // Mirror sync runs after the owner write commits; a failure here leaves
  // the mirror stale until the next write, not the roadmap inconsistent.
  if err := rs.mirror.RoadmapWritten(ctx, userID, &before, roadmap); err != nil {
    rs.log.Error("public mirror sync failed", "roadmap_id", roadmapID, "error", err)
  }
  return roadmap, nil
}

func (rs *roadmapService) UpdateMilestone(ctx context.Context, userID, roadmapID uuid.UUID, milestoneID string, patch *MilestonePatch) (*types.Milestone, error) {
  if userID == uuid.Nil {
    return nil, apperr.Unauthenticated("sign in to edit roadmaps")
  }
  if patch == nil || (patch.TaskID == "" && patch.CourseID == "" && patch.TimeSpent == nil) {
    return nil, apperr.InvalidArgument("empty patch")
  }

  milestone, err := rs.milestoneRepo.Get(ctx, userID, roadmapID, milestoneID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return nil, apperr.NotFound("milestone not found")
    }
    return nil, apperr.Internal(err)
  }

  if patch.TaskID != "" && patch.Completed != nil {
    found := false
    for i := range milestone.Tasks {
      if milestone.Tasks[i].ID == patch.TaskID {
        milestone.Tasks[i].Completed = *patch.Completed
        found = true
        break
      }
    }
    if !found {
      return nil, apperr.NotFound("task not found")
    }
  }
  if patch.CourseID != "" && patch.Completed != nil {
    found := false
    for i := range milestone.Courses {
      if milestone.Courses[i].ID == patch.CourseID {
        milestone.Courses[i].Completed = *patch.Completed
        found = true
        break
      }
    }
    if !found {
      return nil, apperr.NotFound("course not found")
    }
  }
  if patch.TimeSpent != nil {
    milestone.TimeSpent = *patch.TimeSpent
  }

  batch := rs.store.NewBatch()
  rs.milestoneRepo.Put(batch, userID, roadmapID, milestone)
  if err := rs.store.Commit(ctx, batch); err != nil {
    return nil, apperr.Internal(err)
  }
  return milestone, nil
}

func (rs *roadmapService) Delete(ctx context.Context, userID, roadmapID uuid.UUID) error {
  if userID == uuid.Nil {
    return apperr.Unauthenticated("sign in to delete roadmaps")
  }

  rootPath := repos.RoadmapPath(userID.String(), roadmapID.String())
  subs, err := rs.store.Subcollections(ctx, rootPath)
  if err != nil {
    return apperr.Internal(err)
  }
  for _, sub := range subs {
    if _, err := rs.store.DeleteTree(ctx, sub, docstore.DefaultDeleteBatchSize); err != nil {
      return apperr.Internal(err)
    }
  }
  if err := rs.store.Delete(ctx, rootPath); err != nil {
    return apperr.Internal(err)
  }

  if err := rs.mirror.RoadmapDeleted(ctx, roadmapID); err != nil {
    rs.log.Error("public mirror teardown failed", "roadmap_id", roadmapID, "error", err)
  }
  rs.log.Info("roadmap deleted", "user_id", userID, "roadmap_id", roadmapID)
  return nil
}
