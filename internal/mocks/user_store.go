package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn          func(ctx context.Context, user *domain.User) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	GetByIdentifierFn func(ctx context.Context, identifier string) (*domain.User, error)
	UpdateFn          func(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*domain.User, error)
	AddFriendFn       func(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	RemoveFriendFn    func(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	ListFriendsFn     func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// Users backs the default behavior, keyed by user ID.
	Users map[uuid.UUID]*domain.User
	// Friends backs the default friend-list behavior.
	Friends map[uuid.UUID]map[uuid.UUID]bool
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:   make(map[uuid.UUID]*domain.User),
		Friends: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

// AddUser seeds the default in-memory state with a user.
func (m *MockUserStore) AddUser(user *domain.User) {
	m.Users[user.ID] = user
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	m.Users[user.ID] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByIdentifier implements the UserStore interface
func (m *MockUserStore) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if m.GetByIdentifierFn != nil {
		return m.GetByIdentifierFn(ctx, identifier)
	}

	for _, user := range m.Users {
		if user.Email == identifier || user.Username == identifier {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	return user, nil
}

// AddFriend implements the UserStore interface
func (m *MockUserStore) AddFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	if m.AddFriendFn != nil {
		return m.AddFriendFn(ctx, userID, friendID)
	}

	if m.Friends[userID] == nil {
		m.Friends[userID] = make(map[uuid.UUID]bool)
	}
	if m.Friends[userID][friendID] {
		return false, nil
	}
	m.Friends[userID][friendID] = true
	return true, nil
}

// RemoveFriend implements the UserStore interface
func (m *MockUserStore) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	if m.RemoveFriendFn != nil {
		return m.RemoveFriendFn(ctx, userID, friendID)
	}

	if !m.Friends[userID][friendID] {
		return false, nil
	}
	delete(m.Friends[userID], friendID)
	return true, nil
}

// ListFriends implements the UserStore interface
func (m *MockUserStore) ListFriends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.ListFriendsFn != nil {
		return m.ListFriendsFn(ctx, userID)
	}

	ids := make([]uuid.UUID, 0, len(m.Friends[userID]))
	for id := range m.Friends[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}
