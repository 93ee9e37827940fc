package services

import (
  "context"
  "testing"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

func TestUpdateRoadmapStatus(t *testing.T) {
  e := newTestEnv(t)
  user := e.seedUser(t, nil)
  roadmap := seedOwnedRoadmap(t, e, user.ID)
  _, svc := newMirrorFixture(e, nil)
  ctx := context.Background()

  status := types.StatusCompleted
  updated, err := svc.Update(ctx, user.ID, roadmap.ID, &RoadmapPatch{Status: &status})
  if err != nil {
    t.Fatalf("update status: %v", err)
  }
  if updated.Status != types.StatusCompleted {
    t.Fatalf("status=%s, want completed", updated.Status)
  }

  bogus := types.RoadmapStatus("paused")
  if _, err := svc.Update(ctx, user.ID, roadmap.ID, &RoadmapPatch{Status: &bogus}); apperr.CodeOf(err) != apperr.CodeInvalidArgument {
    t.Fatalf("bogus status got %v, want invalid-argument", err)
  }
}

func TestUpdateMilestoneProgress(t *testing.T) {
  e := newTestEnv(t)
  user := e.seedUser(t, nil)
  _, svc := newMirrorFixture(e, nil)
  ctx := context.Background()

  roadmapID, milestoneID, _ := seedQuizMilestone(t, e, user.ID)

  // Give the milestone a task and a course to toggle.
  milestone, err := e.milestoneRepo.Get(ctx, user.ID, roadmapID, milestoneID)
  if err != nil {
    t.Fatalf("load milestone: %v", err)
  }
  milestone.Tasks = []types.Task{{ID: "t1", Title: "Read"}}
  milestone.Courses = []types.Course{{ID: "c1", Title: "Watch"}}
  batch := e.store.NewBatch()
  e.milestoneRepo.Put(batch, user.ID, roadmapID, milestone)
  if err := e.store.Commit(ctx, batch); err != nil {
    t.Fatalf("reseed milestone: %v", err)
  }

  done := true
  updated, err := svc.UpdateMilestone(ctx, user.ID, roadmapID, milestoneID, &MilestonePatch{TaskID: "t1", Completed: &done})
  if err != nil {
    t.Fatalf("toggle task: %v", err)
  }
  if !updated.Tasks[0].Completed {
    t.Fatal("task not marked completed")
  }

  minutes := 45
  updated, err = svc.UpdateMilestone(ctx, user.ID, roadmapID, milestoneID, &MilestonePatch{CourseID: "c1", Completed: &done, TimeSpent: &minutes})
  if err != nil {
    t.Fatalf("toggle course: %v", err)
  }
  if !updated.Courses[0].Completed || updated.TimeSpent != 45 {
    t.Fatalf("got completed=%v time=%d, want true/45", updated.Courses[0].Completed, updated.TimeSpent)
  }

  // The toggle survives a reload.
  reloaded, err := e.milestoneRepo.Get(ctx, user.ID, roadmapID, milestoneID)
  if err != nil {
    t.Fatalf("reload: %v", err)
  }
  if !reloaded.Tasks[0].Completed || !reloaded.Courses[0].Completed {
    t.Fatal("progress not persisted")
  }

  if _, err := svc.UpdateMilestone(ctx, user.ID, roadmapID, milestoneID, &MilestonePatch{TaskID: "t-missing", Completed: &done}); apperr.CodeOf(err) != apperr.CodeNotFound {
    t.Fatalf("unknown task got %v, want not-found", err)
  }
  if _, err := svc.UpdateMilestone(ctx, user.ID, roadmapID, milestoneID, &MilestonePatch{}); apperr.CodeOf(err) != apperr.CodeInvalidArgument {
    t.Fatalf("empty patch got %v, want invalid-argument", err)
  }
}

func TestRoadmapOwnershipIsolation(t *testing.T) {
  e := newTestEnv(t)
  owner := e.seedUser(t, nil)
  other := e.seedUser(t, func(p *types.UserProfile) { p.Email = "other@example.com" })
  roadmap := seedOwnedRoadmap(t, e, owner.ID)
  _, svc := newMirrorFixture(e, nil)
  ctx := context.Background()

  // Paths are keyed by owner, so another user simply cannot see the doc.
  if _, err := svc.Get(ctx, other.ID, roadmap.ID); apperr.CodeOf(err) != apperr.CodeNotFound {
    t.Fatalf("cross-user get got %v, want not-found", err)
  }
  roadmaps, err := svc.List(ctx, other.ID)
  if err != nil || len(roadmaps) != 0 {
    t.Fatalf("cross-user list: %v len=%d", err, len(roadmaps))
  }
}
