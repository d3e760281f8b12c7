package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/smartstock_backend/internal/apperrors"
	"github.com/smartstock/smartstock_backend/internal/middleware"
)

const queryDateLayout = "2006-01-02"

// requestIdentity pulls the authenticated company and user ids from the
// request context, aborting with 401 when either is missing.
func requestIdentity(c *gin.Context) (companyID, userID string, ok bool) {
	companyID, ok = middleware.GetCompanyIDFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	userID, ok = middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return companyID, userID, true
}

// respondError maps service errors to HTTP statuses. Internal details are
// logged but never leaked on 500s.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		logger.Warn("Insufficient stock", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error("Internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// parseDateRange reads from/to query params as YYYY-MM-DD. Both dates are
// inclusive whole days; the range defaults to the last thirty days when
// omitted.
func parseDateRange(c *gin.Context) (from, to time.Time, err error) {
	now := time.Now().UTC()
	from = now.AddDate(0, 0, -30)
	to = now

	if fromStr := c.Query("from"); fromStr != "" {
		from, err = time.Parse(queryDateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err = time.Parse(queryDateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
	}
	return from, to, nil
}
