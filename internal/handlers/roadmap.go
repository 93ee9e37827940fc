package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shyftcut/shyftcut-backend/internal/requestdata"
  "github.com/shyftcut/shyftcut-backend/internal/services"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type RoadmapHandler struct {
  generationService services.RoadmapGenerationService
  roadmapService    services.RoadmapService
  publicService     services.PublicRoadmapService
}

func NewRoadmapHandler(
  generationService services.RoadmapGenerationService,
  roadmapService services.RoadmapService,
  publicService services.PublicRoadmapService,
) *RoadmapHandler {
  return &RoadmapHandler{
    generationService: generationService,
    roadmapService:    roadmapService,
    publicService:     publicService,
  }
}

func (rh *RoadmapHandler) Generate(c *gin.Context) {
  var req types.UserPreferences
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  roadmapID, err := rh.generationService.Generate(c.Request.Context(), userID, &req)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  view, err := rh.roadmapService.Get(c.Request.Context(), userID, roadmapID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, view)
}

func (rh *RoadmapHandler) List(c *gin.Context) {
  userID := requestdata.UserID(c.Request.Context())
  roadmaps, err := rh.roadmapService.List(c.Request.Context(), userID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"roadmaps": roadmaps})
}

func (rh *RoadmapHandler) Get(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  view, err := rh.roadmapService.Get(c.Request.Context(), userID, roadmapID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, view)
}

func (rh *RoadmapHandler) Update(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var patch services.RoadmapPatch
  if err := c.ShouldBindJSON(&patch); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  roadmap, err := rh.roadmapService.Update(c.Request.Context(), userID, roadmapID, &patch)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"roadmap": roadmap})
}

func (rh *RoadmapHandler) UpdateMilestone(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var patch services.MilestonePatch
  if err := c.ShouldBindJSON(&patch); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  milestone, err := rh.roadmapService.UpdateMilestone(c.Request.Context(), userID, roadmapID, c.Param("mid"), &patch)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"milestone": milestone})
}

func (rh *RoadmapHandler) Delete(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  if err := rh.roadmapService.Delete(c.Request.Context(), userID, roadmapID); err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}

func (rh *RoadmapHandler) GetPublic(c *gin.Context) {
  roadmapID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  view, err := rh.publicService.Get(c.Request.Context(), roadmapID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, view)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
    return uuid.Nil, false
  }
  return id, true
}
