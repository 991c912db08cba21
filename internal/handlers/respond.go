package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/middleware"
)

// envelope is the uniform response body: {success, message, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// respondBindError reports a malformed or invalid request body/query.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request: " + err.Error()})
}

// respondError maps service errors to HTTP statuses. Business-rule gate
// failures (ErrConflict) use 400 with the gate's specific message; unknown
// errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, envelope{Success: false, Message: err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Message: "Internal server error"})
	}
}

// actorID extracts the authenticated user ID or aborts with 401.
func actorID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}
