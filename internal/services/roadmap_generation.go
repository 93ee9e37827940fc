package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

// milestoneWeeks is the fixed week layout of every generated roadmap.
var milestoneWeeks = []int{1, 4, 7, 10}

const quotaMessage = "the free plan includes one roadmap per month — upgrade to Pro for unlimited roadmaps"

type RoadmapGenerationService interface {
  // Generate runs the full generation job for the caller and returns the
  // new roadmap's id. The roadmap root, its milestones and the caller's
  // profile quota stamp commit in one atomic batch; no partial roadmap is
  // ever visible.
  Generate(ctx context.Context, userID uuid.UUID, prefs *types.UserPreferences) (uuid.UUID, error)
}

type roadmapGenerationService struct {
  store         docstore.Store
  log           *logger.Logger
  userRepo      repos.UserRepo
  roadmapRepo   repos.RoadmapRepo
  milestoneRepo repos.MilestoneRepo
  ai            OpenAIClient
  now           func() time.Time
}

func NewRoadmapGenerationService(
  store docstore.Store,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  roadmapRepo repos.RoadmapRepo,
  milestoneRepo repos.MilestoneRepo,
  ai OpenAIClient,
) RoadmapGenerationService {
  return &roadmapGenerationService{
    store:         store,
    log:           baseLog.With("service", "RoadmapGenerationService"),
    userRepo:      userRepo,
    roadmapRepo:   roadmapRepo,
    milestoneRepo: milestoneRepo,
    ai:            ai,
    now:           time.Now,
  }
}

func (rgs *roadmapGenerationService) Generate(ctx context.Context, userID uuid.UUID, prefs *types.UserPreferences) (uuid.UUID, error) {
  if userID == uuid.Nil {
    return uuid.Nil, apperr.Unauthenticated("sign in to generate a roadmap")
  }
  if err := prefs.Validate(); err != nil {
    return uuid.Nil, apperr.InvalidArgument(err.Error())
  }

  profile, err := rgs.userRepo.GetByID(ctx, userID)
  if err != nil {
    if err == docstore.ErrNotFound {
      return uuid.Nil, apperr.Unauthenticated("unknown user")
    }
    return uuid.Nil, apperr.Internal(err)
  }

  // Quota gate runs before any AI budget is spent. The check is a plain
  // read; the stamp update rides in the final batch, so two concurrent
  // requests can both pass here (known race, accepted).
  now := rgs.now()
  if profile.EffectiveRole(now) == types.RoleFree && profile.LastRoadmapGeneratedAt != nil {
    oneMonthAgo := now.AddDate(0, -1, 0)
    if profile.LastRoadmapGeneratedAt.After(oneMonthAgo) {
      return uuid.Nil, apperr.PermissionDenied(quotaMessage)
    }
  }

  weeklyHours := *prefs.WeeklyHours
  totalHours := weeklyHours * 12
  durationHours := weeklyHours * 3

  userPrompt, err := buildRoadmapPrompt(roadmapPromptInput{
    CareerTrack:        prefs.CareerTrack,
    ExperienceLevel:    prefs.ExperienceLevel,
    WeeklyHours:        weeklyHours,
    LearningStyles:     strings.Join(prefs.LearningStyles, ", "),
    ResourcePreference: prefs.ResourcePreference,
    TotalHours:         totalHours,
    DurationHours:      durationHours,
  })
  if err != nil {
    return uuid.Nil, apperr.Internal(err)
  }

  raw, err := rgs.ai.GenerateText(ctx, roadmapSystemPrompt, userPrompt, true)
  if err != nil {
    rgs.log.Error("roadmap generation call failed", "user_id", userID, "error", err)
    return uuid.Nil, apperr.Internal(err)
  }

  payload, err := decodeRoadmapPayload(raw)
  if err != nil {
    rgs.log.Error("roadmap response unparseable", "user_id", userID, "error", err)
    return uuid.Nil, apperr.Internal(err)
  }
  if err := validateRoadmapPayload(payload); err != nil {
    rgs.log.Error("roadmap response failed validation", "user_id", userID, "error", err)
    return uuid.Nil, apperr.Internal(err)
  }

  roadmapID := uuid.New()
  roadmap := &types.Roadmap{
    ID:                  roadmapID,
    Title:               payload.Title,
    Description:         payload.Description,
    Track:               prefs.CareerTrack, // caller input, never the model echo
    Level:               prefs.ExperienceLevel,
    TotalHours:          totalHours,
    EstimatedCompletion: payload.EstimatedCompletion,
    Status:              types.StatusInProgress,
    IsPublic:            false,
    CreatedAt:           now,
    UpdatedAt:           now,
  }

  milestones := sanitizeMilestones(payload.Milestones, durationHours)

  profile.LastRoadmapGeneratedAt = &now
  profile.Preferences = prefs
  profile.UpdatedAt = now

  batch := rgs.store.NewBatch()
  rgs.roadmapRepo.Put(batch, userID, roadmap)
  for _, m := range milestones {
    rgs.milestoneRepo.Put(batch, userID, roadmapID, m)
  }
  rgs.userRepo.Put(batch, profile)
  if err := rgs.store.Commit(ctx, batch); err != nil {
    return uuid.Nil, apperr.Internal(err)
  }

  rgs.log.Info("roadmap generated", "user_id", userID, "roadmap_id", roadmapID, "total_hours", totalHours)
  return roadmapID, nil
}

// roadmapPayload is the shape the model is instructed to return.
type roadmapPayload struct {
  Title               string             `json:"title"`
  Description         string             `json:"description"`
  TotalHours          int                `json:"total_hours"`
  EstimatedCompletion string             `json:"estimated_completion"`
  Milestones          []milestonePayload `json:"milestones"`
}

type milestonePayload struct {
  Week            int           `json:"week"`
  Title           string        `json:"title"`
  Description     string        `json:"description"`
  DurationHours   int           `json:"duration_hours"`
  Tasks           []types.Task  `json:"tasks"`
  Courses         []types.Course `json:"courses"`
  Quizzes         []types.Quiz  `json:"quizzes"`
  SuccessCriteria []string      `json:"success_criteria"`
}

// extractJSON slices the first '{' through the last '}' out of raw,
// tolerating surrounding prose or code-fence markers the model may emit
// despite instructions.
func extractJSON(raw string) (string, error) {
  start := strings.Index(raw, "{")
  end := strings.LastIndex(raw, "}")
  if start < 0 || end < 0 || end < start {
    return "", fmt.Errorf("no JSON object found in model response")
  }
  return raw[start : end+1], nil
}

func decodeRoadmapPayload(raw string) (*roadmapPayload, error) {
  sliced, err := extractJSON(raw)
  if err != nil {
    return nil, err
  }
  var payload roadmapPayload
  if err := json.Unmarshal([]byte(sliced), &payload); err != nil {
    return nil, fmt.Errorf("model response is not valid JSON: %w", err)
  }
  return &payload, nil
}

func validateRoadmapPayload(p *roadmapPayload) error {
  if strings.TrimSpace(p.Title) == "" {
    return fmt.Errorf("missing roadmap title")
  }
  if len(p.Milestones) != len(milestoneWeeks) {
    return fmt.Errorf("expected %d milestones, got %d", len(milestoneWeeks), len(p.Milestones))
  }
  for i, m := range p.Milestones {
    if m.Week != milestoneWeeks[i] {
      return fmt.Errorf("milestone %d at week %d, expected week %d", i, m.Week, milestoneWeeks[i])
    }
    if strings.TrimSpace(m.Title) == "" {
      return fmt.Errorf("milestone %d has no title", i)
    }
    for _, q := range m.Quizzes {
      if len(q.Questions) == 0 {
        return fmt.Errorf("quiz %q has no questions", q.ID)
      }
      for _, question := range q.Questions {
        switch question.Type {
        case types.QuestionMultipleChoice:
          if len(question.Options) != 4 {
            return fmt.Errorf("question %q has %d options, expected 4", question.ID, len(question.Options))
          }
        case types.QuestionShortAnswer:
        default:
          return fmt.Errorf("question %q has unknown type %q", question.ID, question.Type)
        }
      }
    }
  }
  return nil
}

// sanitizeMilestones normalizes model output before persistence: every
// task and course starts uncompleted no matter what the model returned,
// durations are stamped from the caller's weekly hours, and milestone ids
// are assigned server-side so the documents order by week.
func sanitizeMilestones(payloads []milestonePayload, durationHours int) []*types.Milestone {
  out := make([]*types.Milestone, 0, len(payloads))
  for _, p := range payloads {
    m := &types.Milestone{
      ID:              fmt.Sprintf("week-%02d", p.Week),
      Week:            p.Week,
      Title:           p.Title,
      Description:     p.Description,
      DurationHours:   durationHours,
      Tasks:           p.Tasks,
      Courses:         p.Courses,
      Quizzes:         p.Quizzes,
      SuccessCriteria: p.SuccessCriteria,
    }
    for i := range m.Tasks {
      m.Tasks[i].Completed = false
    }
    for i := range m.Courses {
      m.Courses[i].Completed = false
    }
    out = append(out, m)
  }
  return out
}
