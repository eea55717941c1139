// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/readquill/readquill-api/internal/api/shared"
	"github.com/readquill/readquill-api/internal/domain"
	"github.com/readquill/readquill-api/internal/platform/logger"
	"github.com/readquill/readquill-api/internal/redact"
	"github.com/readquill/readquill-api/internal/service/review"
)

// CardResponse represents the response data for a card selected for study.
type CardResponse struct {
	ID          string `json:"id"`
	LevelID     int    `json:"level_id"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	ImageURL    string `json:"image_url,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
	IsNew       bool   `json:"is_new"`
}

// ProgressResponse represents the response data for a card's memory state
// after a review.
type ProgressResponse struct {
	CardID        string     `json:"card_id"`
	Stage         string     `json:"stage"`
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	Due           time.Time  `json:"due"`
	Mastered      bool       `json:"mastered"`
	MasteredAt    *time.Time `json:"mastered_at,omitempty"`
	LastReviewAt  time.Time  `json:"last_review_at"`
	ScheduledDays float64    `json:"scheduled_days"`
}

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(reviewService review.Service, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "card_handler")),
	}
}

// GetNextCard handles GET /cards/next requests.
// It retrieves the card the authenticated user should study next.
// Responds 204 when the session is complete for the day.
func (h *CardHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	log.Debug("getting next card", slog.String("user_id", userID.String()))

	selection, err := h.reviewService.NextCard(r.Context(), userID, time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get next card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	// Session complete: nothing due and no new card may be introduced.
	if selection == nil {
		log.Debug("session complete", slog.String("user_id", userID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log.Debug("selected next card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", selection.Card.ID),
		slog.Bool("is_new", selection.IsNew))
	shared.RespondWithJSON(w, r, http.StatusOK, selectionToResponse(selection))
}

// SubmitReviewRequest represents the request body for submitting a review.
// The rating accepts both the string name and the numeric ordinal.
type SubmitReviewRequest struct {
	Rating domain.Rating `json:"rating"`
}

// SubmitReview handles POST /cards/{id}/review requests.
// It records a rating for the card and reschedules it.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		log.Warn("card ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	progress, err := h.reviewService.SubmitReview(
		r.Context(),
		userID,
		cardID,
		req.Rating,
		time.Now().UTC(),
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("successfully submitted review",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID),
		slog.String("rating", req.Rating.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}

// selectionToResponse converts a review.Selection to a CardResponse
func selectionToResponse(sel *review.Selection) CardResponse {
	return CardResponse{
		ID:          sel.Card.ID,
		LevelID:     sel.Card.LevelID,
		Content:     sel.Card.Content,
		ContentType: string(sel.Card.ContentType),
		ImageURL:    sel.Card.ImageURL,
		AudioURL:    sel.Card.AudioURL,
		IsNew:       sel.IsNew,
	}
}

// progressToResponse converts a domain.CardProgress to a ProgressResponse
func progressToResponse(p *domain.CardProgress) ProgressResponse {
	return ProgressResponse{
		CardID:        p.CardID,
		Stage:         p.Stage.String(),
		Stability:     p.Stability,
		Difficulty:    p.Difficulty,
		Reps:          p.Reps,
		Lapses:        p.Lapses,
		Due:           p.Due,
		Mastered:      p.Mastered(),
		MasteredAt:    p.MasteredAt,
		LastReviewAt:  p.LastReviewAt,
		ScheduledDays: p.ScheduledDays,
	}
}
