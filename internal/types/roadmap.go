package types

import (
  "time"

  "github.com/google/uuid"
)

type RoadmapStatus string

const (
  StatusInProgress RoadmapStatus = "in-progress"
  StatusCompleted  RoadmapStatus = "completed"
  StatusPending    RoadmapStatus = "pending"
  StatusArchived   RoadmapStatus = "archived"
)

func (s RoadmapStatus) Valid() bool {
  switch s {
  case StatusInProgress, StatusCompleted, StatusPending, StatusArchived:
    return true
  }
  return false
}

// Roadmap is the root document at tracks/{userId}/roadmaps/{id}. Milestones
// live in its milestones subcollection, quiz results in quizResults.
type Roadmap struct {
  ID                  uuid.UUID     `json:"id"`
  Title               string        `json:"title"`
  Description         string        `json:"description"`
  Track               string        `json:"track"`
  Level               string        `json:"level"`
  TotalHours          int           `json:"total_hours"`
  EstimatedCompletion string        `json:"estimated_completion"`
  Status              RoadmapStatus `json:"status"`
  IsPublic            bool          `json:"is_public"`
  CreatedAt           time.Time     `json:"created_at"`
  UpdatedAt           time.Time     `json:"updated_at"`
}

type Milestone struct {
  ID              string   `json:"id"`
  Week            int      `json:"week"`
  Title           string   `json:"title"`
  Description     string   `json:"description"`
  DurationHours   int      `json:"duration_hours"`
  Tasks           []Task   `json:"tasks"`
  Courses         []Course `json:"courses"`
  Quizzes         []Quiz   `json:"quizzes"`
  SuccessCriteria []string `json:"success_criteria"`
  TimeSpent       int      `json:"time_spent,omitempty"` // minutes
}

// Task and Course carry model-supplied ids, unique within their milestone.
// Completed is mutated by user interaction only, never by generation.
type Task struct {
  ID        string `json:"id"`
  Title     string `json:"title"`
  Completed bool   `json:"completed"`
}

type Course struct {
  ID        string `json:"id"`
  Title     string `json:"title"`
  Platform  string `json:"platform"`
  URL       string `json:"url"`
  Completed bool   `json:"completed"`
}

// PublicRoadmap is the denormalized mirror at publicRoadmaps/{id}: the
// roadmap minus status and timestamps. It exists iff the source roadmap is
// currently public.
type PublicRoadmap struct {
  ID                  uuid.UUID `json:"id"`
  OwnerID             uuid.UUID `json:"owner_id"`
  Title               string    `json:"title"`
  Description         string    `json:"description"`
  Track               string    `json:"track"`
  Level               string    `json:"level"`
  TotalHours          int       `json:"total_hours"`
  EstimatedCompletion string    `json:"estimated_completion"`
}

// MirrorOf builds the filtered public copy of a roadmap.
func MirrorOf(ownerID uuid.UUID, r *Roadmap) *PublicRoadmap {
  return &PublicRoadmap{
    ID:                  r.ID,
    OwnerID:             ownerID,
    Title:               r.Title,
    Description:         r.Description,
    Track:               r.Track,
    Level:               r.Level,
    TotalHours:          r.TotalHours,
    EstimatedCompletion: r.EstimatedCompletion,
  }
}
