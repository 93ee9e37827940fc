package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/shyftcut/shyftcut-backend/internal/handlers"
  "github.com/shyftcut/shyftcut-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler    *handlers.AuthHandler
  AuthMiddleware *middleware.AuthMiddleware
  UserHandler    *handlers.UserHandler
  RoadmapHandler *handlers.RoadmapHandler
  QuizHandler    *handlers.QuizHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/api/register", cfg.AuthHandler.Register)
  router.POST("/api/login", cfg.AuthHandler.Login)
  router.GET("/public/roadmaps/:id", cfg.RoadmapHandler.GetPublic)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/user", cfg.UserHandler.GetProfile)
  protected.PUT("/user/preferences", cfg.UserHandler.UpdatePreferences)
  protected.POST("/user/trial", cfg.UserHandler.ActivateTrial)
  protected.DELETE("/user", cfg.UserHandler.DeleteAccount)
  // Roadmaps
  protected.POST("/roadmaps/generate", cfg.RoadmapHandler.Generate)
  protected.GET("/roadmaps", cfg.RoadmapHandler.List)
  protected.GET("/roadmaps/:id", cfg.RoadmapHandler.Get)
  protected.PATCH("/roadmaps/:id", cfg.RoadmapHandler.Update)
  protected.DELETE("/roadmaps/:id", cfg.RoadmapHandler.Delete)
  protected.PATCH("/roadmaps/:id/milestones/:mid", cfg.RoadmapHandler.UpdateMilestone)
  // Quizzes
  protected.POST("/quiz/grade", cfg.QuizHandler.GradeAnswer)
  protected.POST("/roadmaps/:id/milestones/:mid/quizzes/:qid/submit", cfg.QuizHandler.Submit)
  protected.GET("/roadmaps/:id/milestones/:mid/quizzes/:qid/results", cfg.QuizHandler.ListResults)

  return router
}
