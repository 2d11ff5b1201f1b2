package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// SessionHandler handles study-session API requests.
type SessionHandler struct {
	sessionStore store.StudySessionStore
	validator    *validator.Validate
	timeFunc     func() time.Time // Injectable for testing
}

// NewSessionHandler creates a new SessionHandler with the given dependencies.
func NewSessionHandler(sessionStore store.StudySessionStore) *SessionHandler {
	return &SessionHandler{
		sessionStore: sessionStore,
		validator:    validator.New(),
		timeFunc:     time.Now,
	}
}

// Create handles POST /api/study-sessions, starting a session now.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	session, err := domain.NewStudySession(
		userID,
		req.DurationMinutes,
		domain.SessionType(req.SessionType),
		req.Subject,
		req.Notes,
	)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid session data: "+err.Error())
		return
	}

	if err := h.sessionStore.Create(r.Context(), session); err != nil {
		HandleAPIError(w, r, err, "Failed to create study session")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, session)
}

// List handles GET /api/study-sessions with skip/limit query parameters.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", store.ListLimitDefault)

	sessions, err := h.sessionStore.List(r.Context(), userID, store.SessionFilter{}, skip, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list study sessions")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, sessions)
}

// Stats handles GET /api/study-sessions/stats?days=, aggregating the
// user's completed sessions over the trailing window.
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	days := intQuery(r, "days", store.StatsWindowDefault)
	if days < 1 {
		days = store.StatsWindowDefault
	}
	if days > store.StatsWindowMax {
		days = store.StatsWindowMax
	}

	since := h.timeFunc().UTC().AddDate(0, 0, -days)

	stats, err := h.sessionStore.Stats(r.Context(), userID, since)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute session statistics")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		TotalSessions:  stats.TotalSessions,
		TotalMinutes:   stats.TotalMinutes,
		SessionsByType: stats.SessionsByType,
		PeriodDays:     days,
	})
}

// Get handles GET /api/study-sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessionStore.GetByID(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, session)
}

// Update handles PUT /api/study-sessions/{id}.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := store.SessionPatch{
		DurationMinutes: req.DurationMinutes,
		Subject:         req.Subject,
		Notes:           req.Notes,
	}
	if req.SessionType != nil {
		sessionType := domain.SessionType(*req.SessionType)
		patch.SessionType = &sessionType
	}

	session, err := h.sessionStore.Update(r.Context(), userID, sessionID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, session)
}

// Delete handles DELETE /api/study-sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.sessionStore.Delete(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete study session")
		return
	}
	if !deleted {
		HandleAPIError(w, r, store.ErrSessionNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete handles PATCH /api/study-sessions/{id}/complete. Completing an
// already-completed session returns it unchanged.
func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessionStore.Complete(r.Context(), userID, sessionID, h.timeFunc().UTC())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, session)
}
