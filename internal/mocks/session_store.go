package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// MockStudySessionStore implements store.StudySessionStore for testing
type MockStudySessionStore struct {
	CreateFn   func(ctx context.Context, session *domain.StudySession) error
	ListFn     func(ctx context.Context, ownerID uuid.UUID, filter store.SessionFilter, skip, limit int) ([]*domain.StudySession, error)
	GetByIDFn  func(ctx context.Context, ownerID, id uuid.UUID) (*domain.StudySession, error)
	UpdateFn   func(ctx context.Context, ownerID, id uuid.UUID, patch store.SessionPatch) (*domain.StudySession, error)
	DeleteFn   func(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	CompleteFn func(ctx context.Context, ownerID, id uuid.UUID, endTime time.Time) (*domain.StudySession, error)
	StatsFn    func(ctx context.Context, ownerID uuid.UUID, since time.Time) (*domain.SessionStats, error)
}

var _ store.StudySessionStore = (*MockStudySessionStore)(nil)

func (m *MockStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, session)
	}
	return nil
}

func (m *MockStudySessionStore) List(ctx context.Context, ownerID uuid.UUID, filter store.SessionFilter, skip, limit int) ([]*domain.StudySession, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter, skip, limit)
	}
	return []*domain.StudySession{}, nil
}

func (m *MockStudySessionStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.StudySession, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, id)
	}
	return nil, store.ErrSessionNotFound
}

func (m *MockStudySessionStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch store.SessionPatch) (*domain.StudySession, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, patch)
	}
	return nil, store.ErrSessionNotFound
}

func (m *MockStudySessionStore) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return false, nil
}

func (m *MockStudySessionStore) Complete(ctx context.Context, ownerID, id uuid.UUID, endTime time.Time) (*domain.StudySession, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, ownerID, id, endTime)
	}
	return nil, store.ErrSessionNotFound
}

func (m *MockStudySessionStore) Stats(ctx context.Context, ownerID uuid.UUID, since time.Time) (*domain.SessionStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, ownerID, since)
	}
	return &domain.SessionStats{SessionsByType: map[string]int{}}, nil
}
