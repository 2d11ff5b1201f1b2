package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/platform/logger"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

const userColumns = `id, email, username, full_name, bio, avatar_url,
	hashed_password, is_active, is_verified, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. The database handle should be initialized and
// managed by the caller. If logger is nil, the default logger is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FullName,
		&user.Bio,
		&user.AvatarURL,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists or store.ErrUsernameExists when the
// corresponding unique constraint is violated.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Username,
		user.FullName,
		user.Bio,
		user.AvatarURL,
		user.HashedPassword,
		user.IsActive,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate identity during user creation",
				slog.String("user_id", user.ID.String()))
			return mapped
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return mapped
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return user, nil
}

// GetByIdentifier implements store.UserStore.GetByIdentifier
// It matches either username or email, as supplied by login.
func (s *PostgresUserStore) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return user, nil
}

// Update implements store.UserStore.Update
// It applies only the non-nil fields of the patch and stamps updated_at.
func (s *PostgresUserStore) Update(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var set setClause
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.Username != nil {
		set.add("username", *patch.Username)
	}
	if patch.FullName != nil {
		set.add("full_name", *patch.FullName)
	}
	if patch.Bio != nil {
		set.add("bio", *patch.Bio)
	}
	if patch.AvatarURL != nil {
		set.add("avatar_url", *patch.AvatarURL)
	}
	set.add("updated_at", time.Now().UTC())

	query := `UPDATE users SET ` + set.join() +
		` WHERE id = ` + set.next(id) +
		` RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.String("user_id", id.String()))
		}
		return nil, mapped
	}

	return user, nil
}

// AddFriend implements store.UserStore.AddFriend
// Adding an existing friend is a no-op; the insert is atomic set-add.
func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO user_friends (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return false, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RemoveFriend implements store.UserStore.RemoveFriend
func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	query := `DELETE FROM user_friends WHERE user_id = $1 AND friend_id = $2`

	result, err := s.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return false, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListFriends implements store.UserStore.ListFriends
func (s *PostgresUserStore) ListFriends(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT friend_id FROM user_friends
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	friends := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		friends = append(friends, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return friends, nil
}
