package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// FlashcardHandler handles flashcard API requests, including the review
// flow that drives mastery progression.
type FlashcardHandler struct {
	flashcardStore store.FlashcardStore
	validator      *validator.Validate
}

// NewFlashcardHandler creates a new FlashcardHandler with the given dependencies.
func NewFlashcardHandler(flashcardStore store.FlashcardStore) *FlashcardHandler {
	return &FlashcardHandler{
		flashcardStore: flashcardStore,
		validator:      validator.New(),
	}
}

// Create handles POST /api/flashcards.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateFlashcardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := domain.NewFlashcard(userID, req.Question, req.Answer, req.Category, domain.Difficulty(req.Difficulty))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard data: "+err.Error())
		return
	}

	if err := h.flashcardStore.Create(r.Context(), card); err != nil {
		HandleAPIError(w, r, err, "Failed to create flashcard")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, card)
}

// List handles GET /api/flashcards with category/skip/limit query parameters.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var filter store.FlashcardFilter
	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}
	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", store.ListLimitDefault)

	cards, err := h.flashcardStore.List(r.Context(), userID, filter, skip, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcards")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, cards)
}

// Due handles GET /api/flashcards/review?limit=, returning the cards most
// in need of review.
func (h *FlashcardHandler) Due(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := intQuery(r, "limit", store.ReviewLimitDefault)

	cards, err := h.flashcardStore.DueForReview(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load review queue")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, cards)
}

// Get handles GET /api/flashcards/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	card, err := h.flashcardStore.GetByID(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// Update handles PUT /api/flashcards/{id}. Mastery level, review counter,
// and last-reviewed time are unreachable through this endpoint.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := store.FlashcardPatch{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
	}
	if req.Difficulty != nil {
		difficulty := domain.Difficulty(*req.Difficulty)
		patch.Difficulty = &difficulty
	}

	card, err := h.flashcardStore.Update(r.Context(), userID, cardID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// Delete handles DELETE /api/flashcards/{id}.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.flashcardStore.Delete(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard")
		return
	}
	if !deleted {
		HandleAPIError(w, r, store.ErrFlashcardNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Review handles POST /api/flashcards/{id}/review, applying a review
// outcome to the card's mastery progression.
func (h *FlashcardHandler) Review(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.flashcardStore.RecordReview(r.Context(), userID, cardID, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}
