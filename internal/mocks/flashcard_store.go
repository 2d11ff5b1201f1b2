package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

// MockFlashcardStore implements store.FlashcardStore for testing
type MockFlashcardStore struct {
	CreateFn       func(ctx context.Context, card *domain.Flashcard) error
	ListFn         func(ctx context.Context, ownerID uuid.UUID, filter store.FlashcardFilter, skip, limit int) ([]*domain.Flashcard, error)
	GetByIDFn      func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Flashcard, error)
	UpdateFn       func(ctx context.Context, ownerID, id uuid.UUID, patch store.FlashcardPatch) (*domain.Flashcard, error)
	DeleteFn       func(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	RecordReviewFn func(ctx context.Context, ownerID, id uuid.UUID, correct bool) (*domain.Flashcard, error)
	DueForReviewFn func(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Flashcard, error)
}

var _ store.FlashcardStore = (*MockFlashcardStore)(nil)

func (m *MockFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	return nil
}

func (m *MockFlashcardStore) List(ctx context.Context, ownerID uuid.UUID, filter store.FlashcardFilter, skip, limit int) ([]*domain.Flashcard, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter, skip, limit)
	}
	return []*domain.Flashcard{}, nil
}

func (m *MockFlashcardStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Flashcard, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, id)
	}
	return nil, store.ErrFlashcardNotFound
}

func (m *MockFlashcardStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch store.FlashcardPatch) (*domain.Flashcard, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, patch)
	}
	return nil, store.ErrFlashcardNotFound
}

func (m *MockFlashcardStore) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return false, nil
}

func (m *MockFlashcardStore) RecordReview(ctx context.Context, ownerID, id uuid.UUID, correct bool) (*domain.Flashcard, error) {
	if m.RecordReviewFn != nil {
		return m.RecordReviewFn(ctx, ownerID, id, correct)
	}
	return nil, store.ErrFlashcardNotFound
}

func (m *MockFlashcardStore) DueForReview(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Flashcard, error) {
	if m.DueForReviewFn != nil {
		return m.DueForReviewFn(ctx, ownerID, limit)
	}
	return []*domain.Flashcard{}, nil
}
