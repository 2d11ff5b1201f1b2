package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// MockNoteStore implements store.NoteStore for testing
type MockNoteStore struct {
	CreateFn      func(ctx context.Context, note *domain.Note) error
	ListFn        func(ctx context.Context, ownerID uuid.UUID, filter store.NoteFilter, skip, limit int) ([]*domain.Note, error)
	GetByIDFn     func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Note, error)
	UpdateFn      func(ctx context.Context, ownerID, id uuid.UUID, patch store.NotePatch) (*domain.Note, error)
	DeleteFn      func(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	SearchFn      func(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Note, error)
	SetArchivedFn func(ctx context.Context, ownerID, id uuid.UUID, archived bool) (*domain.Note, error)
}

var _ store.NoteStore = (*MockNoteStore)(nil)

func (m *MockNoteStore) Create(ctx context.Context, note *domain.Note) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, note)
	}
	return nil
}

func (m *MockNoteStore) List(ctx context.Context, ownerID uuid.UUID, filter store.NoteFilter, skip, limit int) ([]*domain.Note, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter, skip, limit)
	}
	return []*domain.Note{}, nil
}

func (m *MockNoteStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Note, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, id)
	}
	return nil, store.ErrNoteNotFound
}

func (m *MockNoteStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch store.NotePatch) (*domain.Note, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, patch)
	}
	return nil, store.ErrNoteNotFound
}

func (m *MockNoteStore) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return false, nil
}

func (m *MockNoteStore) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Note, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, ownerID, query)
	}
	return []*domain.Note{}, nil
}

func (m *MockNoteStore) SetArchived(ctx context.Context, ownerID, id uuid.UUID, archived bool) (*domain.Note, error) {
	if m.SetArchivedFn != nil {
		return m.SetArchivedFn(ctx, ownerID, id, archived)
	}
	return nil, store.ErrNoteNotFound
}
