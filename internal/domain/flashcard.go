package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	ErrFlashcardIDEmpty       = errors.New("flashcard ID cannot be empty")
	ErrFlashcardUserIDEmpty   = errors.New("flashcard user ID cannot be empty")
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")
	ErrFlashcardAnswerEmpty   = errors.New("flashcard answer cannot be empty")
	ErrInvalidDifficulty      = errors.New("invalid flashcard difficulty")
	ErrInvalidMasteryLevel    = errors.New("mastery level must be between 0 and 5")
)

// Difficulty is the self-assessed difficulty of a flashcard.
type Difficulty string

// Valid difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulties.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Mastery level bounds. Review outcomes move the level one step at a time
// and the level is always clamped to this range.
const (
	MasteryLevelMin = 0
	MasteryLevelMax = 5
)

// Flashcard represents a question/answer card owned by a single user,
// together with its spaced-repetition bookkeeping. MasteryLevel and
// TimesReviewed are mutated only through the review operation, never
// through general field updates.
type Flashcard struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Question      string     `json:"question"`
	Answer        string     `json:"answer"`
	Category      *string    `json:"category,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	TimesReviewed int        `json:"times_reviewed"`
	LastReviewed  *time.Time `json:"last_reviewed,omitempty"`
	MasteryLevel  int        `json:"mastery_level"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard owned by the given user.
// Difficulty defaults to medium when empty. The card starts unreviewed
// with mastery level zero. Returns an error if validation fails.
func NewFlashcard(userID uuid.UUID, question, answer string, category *string, difficulty Difficulty) (*Flashcard, error) {
	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	now := time.Now().UTC()
	card := &Flashcard{
		ID:         uuid.New(),
		UserID:     userID,
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrFlashcardUserIDEmpty
	}

	if c.Question == "" {
		return ErrFlashcardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrFlashcardAnswerEmpty
	}

	if !c.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	if c.MasteryLevel < MasteryLevelMin || c.MasteryLevel > MasteryLevelMax {
		return ErrInvalidMasteryLevel
	}

	return nil
}

// NextMasteryLevel returns the mastery level after a review outcome,
// clamped to [MasteryLevelMin, MasteryLevelMax]. A correct answer moves
// the level up one step, an incorrect answer moves it down one step.
func NextMasteryLevel(current int, correct bool) int {
	if correct {
		if current >= MasteryLevelMax {
			return MasteryLevelMax
		}
		return current + 1
	}
	if current <= MasteryLevelMin {
		return MasteryLevelMin
	}
	return current - 1
}

// ApplyReview records a review outcome on the card: the mastery level is
// stepped and clamped, the review counter incremented, and the review
// timestamps stamped. The persisted form of this transition is a single
// atomic conditional update; this method exists for in-memory callers
// and tests.
func (c *Flashcard) ApplyReview(correct bool, now time.Time) {
	c.MasteryLevel = NextMasteryLevel(c.MasteryLevel, correct)
	c.TimesReviewed++
	reviewed := now.UTC()
	c.LastReviewed = &reviewed
	c.UpdatedAt = reviewed
}
