package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
// Identifier accepts either the username or the email address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse is the public projection of a user. The hashed password
// never appears here.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUserResponse projects a domain user into its public representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		FullName:   user.FullName,
		Bio:        user.Bio,
		AvatarURL:  user.AvatarURL,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// UpdateProfileRequest defines the payload for profile updates. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty"      validate:"omitempty,email"`
	Username  *string `json:"username,omitempty"   validate:"omitempty,min=3,max=50"`
	FullName  *string `json:"full_name,omitempty"  validate:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty"        validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// FriendsResponse lists the IDs in a user's friend list.
type FriendsResponse struct {
	Friends []uuid.UUID `json:"friends"`
}

// CreateNoteRequest defines the payload for note creation.
type CreateNoteRequest struct {
	Title    string   `json:"title"    validate:"required,max=200"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
	Category *string  `json:"category,omitempty"`
}

// UpdateNoteRequest defines the payload for partial note updates.
type UpdateNoteRequest struct {
	Title    *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string  `json:"content,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Category *string  `json:"category,omitempty"`
}

// CreateFlashcardRequest defines the payload for flashcard creation.
// Difficulty defaults to medium when absent.
type CreateFlashcardRequest struct {
	Question   string  `json:"question" validate:"required"`
	Answer     string  `json:"answer"   validate:"required"`
	Category   *string `json:"category,omitempty"`
	Difficulty string  `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// UpdateFlashcardRequest defines the payload for partial flashcard
// updates. Mastery bookkeeping is not expressible here.
type UpdateFlashcardRequest struct {
	Question   *string `json:"question,omitempty" validate:"omitempty,min=1"`
	Answer     *string `json:"answer,omitempty"   validate:"omitempty,min=1"`
	Category   *string `json:"category,omitempty"`
	Difficulty *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// ReviewRequest defines the payload for submitting a flashcard review.
// Correct is a pointer so an absent field fails validation instead of
// silently reading as an incorrect answer.
type ReviewRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// CreateSessionRequest defines the payload for starting a study session.
type CreateSessionRequest struct {
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=120"`
	SessionType     string  `json:"session_type"     validate:"required,oneof=pomodoro short_break long_break custom"`
	Subject         *string `json:"subject,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateSessionRequest defines the payload for partial session updates.
// Completion has its own endpoint.
type UpdateSessionRequest struct {
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=120"`
	SessionType     *string `json:"session_type,omitempty"     validate:"omitempty,oneof=pomodoro short_break long_break custom"`
	Subject         *string `json:"subject,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// StatsResponse wraps the windowed session statistics.
type StatsResponse struct {
	TotalSessions  int            `json:"total_sessions"`
	TotalMinutes   int            `json:"total_minutes"`
	SessionsByType map[string]int `json:"sessions_by_type"`
	PeriodDays     int            `json:"period_days"`
}
