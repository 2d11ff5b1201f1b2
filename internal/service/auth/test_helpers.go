package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/config"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
// This is the single source of truth for JWT test config.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long", // At least 32 chars
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

// NewTestJWTService creates a JWT service with default configuration for testing.
// This is the recommended way to create a JWT service for tests.
func NewTestJWTService() (JWTService, error) {
	return NewJWTService(DefaultJWTConfig())
}

// MustCreateTestJWTService creates a test JWT service and panics if it fails.
// Useful for test setup where error handling would be verbose.
func MustCreateTestJWTService() JWTService {
	service, err := NewTestJWTService()
	if err != nil {
		panic(fmt.Sprintf("failed to create test JWT service: %v", err))
	}
	return service
}

// GenerateTokenForTesting creates a JWT access token for the specified user ID
// without the caller having to instantiate a JWT service.
func GenerateTokenForTesting(userID uuid.UUID) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	return svc.GenerateToken(context.Background(), userID)
}

// GenerateAuthHeaderForTesting creates an Authorization header value with Bearer prefix
// containing a valid JWT token for the specified user ID.
func GenerateAuthHeaderForTesting(userID uuid.UUID) (string, error) {
	token, err := GenerateTokenForTesting(userID)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// GenerateExpiredTokenForTesting creates an already-expired access token for
// exercising expiry handling.
func GenerateExpiredTokenForTesting(userID uuid.UUID) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}

	impl := svc.(*hmacJWTService)
	issued := time.Now().Add(-24 * time.Hour)
	impl.timeFunc = func() time.Time { return issued }
	return impl.GenerateToken(context.Background(), userID)
}

// GenerateNotYetValidTokenForTesting creates an access token whose nbf claim
// lies in the future, beyond the validation clock skew, for exercising the
// not-yet-valid handling. The service's own tokens never carry nbf, so this
// signs the claims directly the way a misbehaving client would.
func GenerateNotYetValidTokenForTesting(userID uuid.UUID) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}

	impl := svc.(*hmacJWTService)
	now := time.Now()
	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(impl.signingKey)
}

// GenerateExpiredRefreshTokenForTesting creates an expired refresh token for testing.
func GenerateExpiredRefreshTokenForTesting(userID uuid.UUID) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}

	impl := svc.(*hmacJWTService)
	expiry := time.Now().Add(-1 * time.Hour)
	return impl.GenerateRefreshTokenWithExpiry(context.Background(), userID, expiry)
}
