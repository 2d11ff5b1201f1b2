package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds enforced before hashing. The upper bound keeps
// input under bcrypt's 72-byte truncation limit.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

// ErrPasswordLength indicates the plaintext password is outside the allowed length range.
var ErrPasswordLength = fmt.Errorf(
	"password must be between %d and %d characters",
	PasswordMinLength,
	PasswordMaxLength,
)

// PasswordHasher defines the interface for hashing plaintext passwords.
type PasswordHasher interface {
	// Hash returns the hashed form of the given plaintext password.
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns true on a match. A malformed or truncated stored hash is treated
	// as a mismatch, not an error, so login failure modes stay uniform.
	Compare(hashedPassword, password string) bool
}

// BcryptHasher implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new BcryptHasher with the given cost. Costs
// outside bcrypt's supported range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

var (
	_ PasswordHasher   = (*BcryptHasher)(nil)
	_ PasswordVerifier = (*BcryptHasher)(nil)
)

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return "", ErrPasswordLength
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements the PasswordVerifier interface using bcrypt.
// A corrupt or non-bcrypt stored digest reports false just like a wrong
// password; callers never see a distinct failure mode.
func (h *BcryptHasher) Compare(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
