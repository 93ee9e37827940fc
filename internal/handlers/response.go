package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/shyftcut/shyftcut-backend/internal/apperr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondAppError maps a service error onto its HTTP status and public
// message. Internal causes never reach the wire.
func RespondAppError(c *gin.Context, err error) {
  code := apperr.CodeOf(err)
  c.JSON(apperr.HTTPStatus(code), ErrorEnvelope{
    Error: APIError{
      Message: apperr.PublicMessage(err),
      Code:    string(code),
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
