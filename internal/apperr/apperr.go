// Package apperr defines the error taxonomy surfaced to API callers.
package apperr

import (
  "errors"
  "fmt"
  "net/http"
)

type Code string

const (
  CodeUnauthenticated  Code = "unauthenticated"
  CodeInvalidArgument  Code = "invalid-argument"
  CodePermissionDenied Code = "permission-denied"
  CodeNotFound         Code = "not-found"
  CodeInternal         Code = "internal"
)

// Error carries a stable code, a caller-safe message, and the wrapped cause.
// Internal causes are logged server-side and never sent to the caller.
type Error struct {
  Code    Code
  Message string
  Err     error
}

func (e *Error) Error() string {
  if e.Err != nil {
    return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
  }
  return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, message string) *Error {
  return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
  return &Error{Code: code, Message: message, Err: err}
}

func Unauthenticated(message string) *Error {
  return New(CodeUnauthenticated, message)
}

func InvalidArgument(message string) *Error {
  return New(CodeInvalidArgument, message)
}

func PermissionDenied(message string) *Error {
  return New(CodePermissionDenied, message)
}

func NotFound(message string) *Error {
  return New(CodeNotFound, message)
}

// Internal wraps err behind a generic retriable message. The cause stays
// attached for server-side logging only.
func Internal(err error) *Error {
  return &Error{Code: CodeInternal, Message: "something went wrong, please try again later", Err: err}
}

// CodeOf returns the taxonomy code of err, or CodeInternal for anything
// that is not an *Error.
func CodeOf(err error) Code {
  var ae *Error
  if errors.As(err, &ae) {
    return ae.Code
  }
  return CodeInternal
}

// PublicMessage returns the caller-safe message for err.
func PublicMessage(err error) string {
  var ae *Error
  if errors.As(err, &ae) {
    return ae.Message
  }
  return "something went wrong, please try again later"
}

func HTTPStatus(code Code) int {
  switch code {
  case CodeUnauthenticated:
    return http.StatusUnauthorized
  case CodeInvalidArgument:
    return http.StatusBadRequest
  case CodePermissionDenied:
    return http.StatusForbidden
  case CodeNotFound:
    return http.StatusNotFound
  default:
    return http.StatusInternalServerError
  }
}
