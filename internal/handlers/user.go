package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/shyftcut/shyftcut-backend/internal/requestdata"
  "github.com/shyftcut/shyftcut-backend/internal/services"
  "github.com/shyftcut/shyftcut-backend/internal/types"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
  userID := requestdata.UserID(c.Request.Context())
  profile, err := uh.userService.GetProfile(c.Request.Context(), userID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": profile.PublicView()})
}

func (uh *UserHandler) UpdatePreferences(c *gin.Context) {
  var req types.UserPreferences
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := requestdata.UserID(c.Request.Context())
  profile, err := uh.userService.UpdatePreferences(c.Request.Context(), userID, &req)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": profile.PublicView()})
}

func (uh *UserHandler) ActivateTrial(c *gin.Context) {
  userID := requestdata.UserID(c.Request.Context())
  profile, err := uh.userService.ActivateTrial(c.Request.Context(), userID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": profile.PublicView()})
}

func (uh *UserHandler) DeleteAccount(c *gin.Context) {
  userID := requestdata.UserID(c.Request.Context())
  if err := uh.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": "true"})
}
