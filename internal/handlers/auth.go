package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/shyftcut/shyftcut-backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email       string `json:"email"`
    DisplayName string `json:"display_name"`
    Password    string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  profile, err := ah.authService.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": profile.PublicView()})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  accessToken, profile, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  RespondOK(c, gin.H{
    "access_token": accessToken,
    "expires_in":   expiresIn,
    "user":         profile.PublicView(),
  })
}
