package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/api/shared"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/service/stats"
)

// LevelHandler handles level catalog HTTP requests
type LevelHandler struct {
	statsService *stats.Service
	logger       *slog.Logger
}

// NewLevelHandler creates a new LevelHandler
func NewLevelHandler(statsService *stats.Service, logger *slog.Logger) *LevelHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LevelHandler")
	}

	return &LevelHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "level_handler")),
	}
}

// ListLevels handles GET /levels requests. Each level is annotated with
// the authenticated user's unlock state and mastery progress.
func (h *LevelHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	levels, err := h.statsService.Levels(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list levels"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, levels)
}
