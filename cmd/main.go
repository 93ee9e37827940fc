package main

import (
  "fmt"
  "os"
  "time"

  "github.com/joho/godotenv"

  "github.com/shyftcut/shyftcut-backend/internal/clients/redis"
  "github.com/shyftcut/shyftcut-backend/internal/db"
  "github.com/shyftcut/shyftcut-backend/internal/docstore"
  "github.com/shyftcut/shyftcut-backend/internal/handlers"
  "github.com/shyftcut/shyftcut-backend/internal/logger"
  "github.com/shyftcut/shyftcut-backend/internal/middleware"
  "github.com/shyftcut/shyftcut-backend/internal/repos"
  "github.com/shyftcut/shyftcut-backend/internal/server"
  "github.com/shyftcut/shyftcut-backend/internal/services"
  "github.com/shyftcut/shyftcut-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  port := utils.GetEnv("PORT", "8080", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }

  // Document store
  store := docstore.New(postgresService.DB(), log)

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(store, log)
  roadmapRepo := repos.NewRoadmapRepo(store, log)
  milestoneRepo := repos.NewMilestoneRepo(store, log)
  quizResultRepo := repos.NewQuizResultRepo(store, log)
  publicRoadmapRepo := repos.NewPublicRoadmapRepo(store, log)

  // Redis cache (optional)
  redisClient, err := redis.New(log)
  if err != nil {
    log.Warn("Redis init failed, public reads go uncached", "error", err)
    redisClient = nil
  }
  publicCache := services.NewPublicRoadmapCache(redisClient, log)

  // Services
  log.Info("Setting up Services from main...")
  openaiClient, err := services.NewOpenAIClient(log)
  if err != nil {
    log.Error("Could not init OpenAIClient", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  mirrorService := services.NewPublicMirrorService(store, log, milestoneRepo, publicRoadmapRepo, publicCache)
  userService := services.NewUserService(store, log, userRepo, roadmapRepo, mirrorService)
  generationService := services.NewRoadmapGenerationService(store, log, userRepo, roadmapRepo, milestoneRepo, openaiClient)
  roadmapService := services.NewRoadmapService(store, log, roadmapRepo, milestoneRepo, mirrorService)
  gradingService := services.NewGradingService(log, openaiClient)
  quizService := services.NewQuizService(store, log, milestoneRepo, quizResultRepo, gradingService)
  publicRoadmapService := services.NewPublicRoadmapService(log, publicRoadmapRepo, publicCache)

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  roadmapHandler := handlers.NewRoadmapHandler(generationService, roadmapService, publicRoadmapService)
  quizHandler := handlers.NewQuizHandler(quizService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    authHandler,
    AuthMiddleware: authMiddleware,
    UserHandler:    userHandler,
    RoadmapHandler: roadmapHandler,
    QuizHandler:    quizHandler,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server exited", "error", err)
    os.Exit(1)
  }
}
