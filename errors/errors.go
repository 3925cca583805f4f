package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the api error type carried from services up to handlers.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	InActiveUserError      = errors.New("user inactive")
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error: message: %s", e.Message)
}

// GetUniqueContraintError maps a database unique-constraint violation to a
// friendly conflict response, falling back to a plain bad request.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("user already exists with this email", http.StatusConflict)
	case strings.Contains(msg, "duplicate"), strings.Contains(msg, "unique"):
		return New("record already exists", http.StatusConflict)
	default:
		return New(msg, http.StatusBadRequest)
	}
}

// ErrorHandler responds to rate-limited requests for gin-rate-limit.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error": "too many requests, try again in " + time.Until(info.ResetTime).String(),
	})
}
