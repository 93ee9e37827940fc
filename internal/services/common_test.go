package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

// testEnv wires the full storage stack over an in-memory database so
// service tests exercise real batches, queries and tree deletions.
type testEnv struct {
  store          docstore.Store
  log            *logger.Logger
  userRepo       repos.UserRepo
  roadmapRepo    repos.RoadmapRepo
  milestoneRepo  repos.MilestoneRepo
  quizResultRepo repos.QuizResultRepo
  publicRepo     repos.PublicRoadmapRepo
}

func newTestEnv(t *testing.T) *testEnv {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  sqlDB, err := db.DB()
  if err != nil {
    t.Fatalf("underlying db: %v", err)
  }
  sqlDB.SetMaxOpenConns(1)
  if err := db.AutoMigrate(&docstore.Document{}); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  log := logger.NewNop()
  store := docstore.New(db, log)
  return &testEnv{
    store:          store,
    log:            log,
    userRepo:       repos.NewUserRepo(store, log),
    roadmapRepo:    repos.NewRoadmapRepo(store, log),
    milestoneRepo:  repos.NewMilestoneRepo(store, log),
    quizResultRepo: repos.NewQuizResultRepo(store, log),
    publicRepo:     repos.NewPublicRoadmapRepo(store, log),
  }
}

func (e *testEnv) seedUser(t *testing.T, mutate func(*types.UserProfile)) *types.UserProfile {
  t.Helper()
  now := time.Now()
  profile := &types.UserProfile{
    ID:               uuid.New(),
    Email:            "learner@example.com",
    DisplayName:      "Learner",
    PasswordHash:     "x",
    SubscriptionRole: types.RoleFree,
    CreatedAt:        now,
    UpdatedAt:        now,
  }
  if mutate != nil {
    mutate(profile)
  }
  if err := e.userRepo.Create(context.Background(), profile); err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return profile
}

func testPrefs(hours int) *types.UserPreferences {
  return &types.UserPreferences{
    CareerTrack:        "frontend",
    ExperienceLevel:    "beginner",
    WeeklyHours:        &hours,
    LearningStyles:     []string{"video", "reading"},
    ResourcePreference: "free",
  }
}

// fakeOpenAI satisfies OpenAIClient with canned behavior per test.
type fakeOpenAI struct {
  generateText func(ctx context.Context, system, user string, webSearch bool) (string, error)
  generateJSON func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error)
}

func (f *fakeOpenAI) GenerateText(ctx context.Context, system, user string, webSearch bool) (string, error) {
  return f.generateText(ctx, system, user, webSearch)
}

func (f *fakeOpenAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
  return f.generateJSON(ctx, system, user, schemaName, schema)
}

// fakeGrading satisfies GradingService for quiz submission tests.
type fakeGrading struct {
  grade func(ctx context.Context, userID uuid.UUID, question *types.Question, userAnswer string) (*GradeVerdict, error)
}

func (f *fakeGrading) Grade(ctx context.Context, userID uuid.UUID, question *types.Question, userAnswer string) (*GradeVerdict, error) {
  return f.grade(ctx, userID, question, userAnswer)
}
