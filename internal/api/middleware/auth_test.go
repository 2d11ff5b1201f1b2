package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/mocks"
	"github.com/studybuddy/studybuddy-api/internal/service/auth"
)

func activeUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("alice@example.com", "alice", "$2a$10$hash")
	require.NoError(t, err)
	return user
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user := activeUser(t)

	userStore := mocks.NewMockUserStore()
	userStore.AddUser(user)

	jwtService := auth.MustCreateTestJWTService()
	mw := NewAuthMiddleware(jwtService, userStore)

	protected := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		require.True(t, ok)
		assert.Equal(t, user.ID, userID)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes through", func(t *testing.T) {
		t.Parallel()

		header, err := auth.GenerateAuthHeaderForTesting(user.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", "Token abc123")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization format")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		t.Parallel()

		token, err := auth.GenerateExpiredTokenForTesting(user.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("not yet valid token is rejected as a client fault", func(t *testing.T) {
		t.Parallel()

		token, err := auth.GenerateNotYetValidTokenForTesting(user.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("refresh token is rejected on protected routes", func(t *testing.T) {
		t.Parallel()

		svc := auth.MustCreateTestJWTService()
		refresh, err := svc.GenerateRefreshToken(httptest.NewRequest(http.MethodGet, "/", nil).Context(), user.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", "Bearer "+refresh)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown subject is rejected", func(t *testing.T) {
		t.Parallel()

		header, err := auth.GenerateAuthHeaderForTesting(uuid.New())
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	t.Parallel()

	user := activeUser(t)
	user.IsActive = false

	userStore := mocks.NewMockUserStore()
	userStore.AddUser(user)

	mw := NewAuthMiddleware(auth.MustCreateTestJWTService(), userStore)
	protected := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for inactive accounts")
	}))

	header, err := auth.GenerateAuthHeaderForTesting(user.ID)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	r.Header.Set("Authorization", header)
	w := httptest.NewRecorder()

	protected.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Account is inactive")
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	userID, ok := GetUserID(r)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, userID)
}
