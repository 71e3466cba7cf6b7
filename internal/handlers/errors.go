package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// respondError translates service errors into HTTP responses. Sentinel
// matches map to their status; anything else is a 500 with a generic message
// so internals never leak to callers.
func respondError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": logMsg})
	}
}

// requestActor fetches the authenticated actor, falling back to the system
// actor when the route ran without the auth middleware. Internal callers
// (scheduled jobs, gateway callbacks mounted without auth) still get their
// writes attributed that way.
func requestActor(c *gin.Context) domain.Actor {
	actor, found := middleware.GetActorFromContext(c)
	if !found {
		middleware.GetLoggerFromCtx(c.Request.Context()).Debug("No actor in context, attributing to system")
		return domain.SystemActor()
	}
	return actor
}
