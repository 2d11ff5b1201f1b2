package api

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// NoteHandler handles note API requests. Every operation is scoped to the
// authenticated user.
type NoteHandler struct {
	noteStore store.NoteStore
	validator *validator.Validate
}

// NewNoteHandler creates a new NoteHandler with the given dependencies.
func NewNoteHandler(noteStore store.NoteStore) *NoteHandler {
	return &NoteHandler{
		noteStore: noteStore,
		validator: validator.New(),
	}
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	note, err := domain.NewNote(userID, req.Title, req.Content, req.Tags, req.Category)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid note data: "+err.Error())
		return
	}

	if err := h.noteStore.Create(r.Context(), note); err != nil {
		HandleAPIError(w, r, err, "Failed to create note")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, note)
}

// List handles GET /api/notes with archived/skip/limit query parameters.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := store.NoteFilter{Archived: boolQuery(r, "archived", false)}
	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", store.ListLimitDefault)

	notes, err := h.noteStore.List(r.Context(), userID, filter, skip, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notes")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, notes)
}

// Search handles GET /api/notes/search?q=.
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Search query is required")
		return
	}

	notes, err := h.noteStore.Search(r.Context(), userID, query)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search notes")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, notes)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	note, err := h.noteStore.GetByID(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, note)
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	note, err := h.noteStore.Update(r.Context(), userID, noteID, store.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Category: req.Category,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, note)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.noteStore.Delete(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete note")
		return
	}
	if !deleted {
		HandleAPIError(w, r, store.ErrNoteNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Archive handles PATCH /api/notes/{id}/archive?archived=.
func (h *NoteHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	archived := boolQuery(r, "archived", true)

	note, err := h.noteStore.SetArchived(r.Context(), userID, noteID, archived)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, note)
}
