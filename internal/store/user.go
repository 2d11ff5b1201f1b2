package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
)

// UserPatch describes a partial update of a user's mutable profile fields.
// Nil fields are left untouched. Identity (ID) and authentication state are
// not reachable through this path.
type UserPatch struct {
	Email     *string
	Username  *string
	FullName  *string
	Bio       *string
	AvatarURL *string
}

// UserStore defines the interface for user data persistence.
// Users are the owning identity for all other resources and are not
// themselves owner-scoped.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists or ErrUsernameExists when the corresponding
	// unique constraint is violated.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIdentifier retrieves a user by username or email, whichever
	// matches. Used by login, where the client supplies a single field.
	// Returns ErrUserNotFound if neither matches.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// Update applies the non-nil fields of patch and stamps the update time.
	// Returns ErrUserNotFound if the user does not exist, and
	// ErrEmailExists/ErrUsernameExists when updating into a taken value.
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*domain.User, error)

	// AddFriend records friendID in the user's friend list. Adding an
	// existing friend is a no-op (set semantics). Returns true iff the
	// list changed.
	AddFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error)

	// RemoveFriend removes friendID from the user's friend list.
	// Returns true iff the list changed.
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error)

	// ListFriends returns the IDs in the user's friend list.
	ListFriends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
