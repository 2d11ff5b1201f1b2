package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/redact"
	"github.com/studybuddy/studybuddy-api/internal/service/auth"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// AuthHandler handles authentication and profile API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// tokenPair generates an access and refresh token for the user, writing a
// 500 response and returning false on failure.
func (h *AuthHandler) tokenPair(w http.ResponseWriter, r *http.Request, user *domain.User) (AuthResponse, bool) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate access token", "error", redact.Error(err), "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return AuthResponse{}, false
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", redact.Error(err), "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return AuthResponse{}, false
	}

	return AuthResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, true
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	hashedPassword, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := domain.NewUser(req.Email, req.Username, hashedPassword)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}
	user.FullName = req.FullName

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to create user", "error", redact.Error(err))
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	resp, ok := h.tokenPair(w, r, user)
	if !ok {
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login. The identifier matches either the
// username or the email address.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByIdentifier(r.Context(), req.Identifier)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Same response as a bad password so probing for registered
			// identifiers learns nothing.
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to look up user for login", "error", redact.Error(err))
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if !h.passwordVerifier.Compare(user.HashedPassword, req.Password) {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		HandleAPIError(w, r, auth.ErrAccountInactive, "")
		return
	}

	resp, ok := h.tokenPair(w, r, user)
	if !ok {
		return
	}
	RespondWithJSON(w, r, http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh, exchanging a valid refresh
// token for a fresh access/refresh pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The subject must still be a live account at refresh time.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		slog.Error("failed to load user for token refresh", "error", redact.Error(err))
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}
	if !user.IsActive {
		HandleAPIError(w, r, auth.ErrAccountInactive, "")
		return
	}

	resp, ok := h.tokenPair(w, r, user)
	if !ok {
		return
	}
	RespondWithJSON(w, r, http.StatusOK, resp)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateProfile handles PUT /api/auth/me.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.Update(r.Context(), userID, store.UserPatch{
		Email:     req.Email,
		Username:  req.Username,
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// ListFriends handles GET /api/auth/me/friends.
func (h *AuthHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.userStore.ListFriends(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, FriendsResponse{Friends: friends})
}

// AddFriend handles POST /api/auth/me/friends/{id}. Adding an existing
// friend is a no-op.
func (h *AuthHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if friendID == userID {
		RespondWithError(w, r, http.StatusBadRequest, "Cannot add yourself as a friend")
		return
	}

	// The friend must be a real user; the FK would catch this anyway but
	// a lookup gives the client a clean 404.
	if _, err := h.userStore.GetByID(r.Context(), friendID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if _, err := h.userStore.AddFriend(r.Context(), userID, friendID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFriend handles DELETE /api/auth/me/friends/{id}. Removing an
// absent friend is a no-op.
func (h *AuthHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.userStore.RemoveFriend(r.Context(), userID, friendID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
