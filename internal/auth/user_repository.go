package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	"github.com/nerrad567/shiperd/internal/query"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// SQLUserRepository implements UserRepository using database/sql.
type SQLUserRepository struct {
	db *sql.DB
	ph query.Placeholder
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *sql.DB, ph query.Placeholder) *SQLUserRepository {
	return &SQLUserRepository{db: db, ph: ph}
}

const selectUsers = `SELECT id, username, email, password_hash, created_at FROM users`

// Create inserts a new account and sets its ID and CreatedAt.
// A taken username or email yields ErrUsernameExists or ErrEmailExists.
func (r *SQLUserRepository) Create(ctx context.Context, user *User) error {
	now := time.Now().UTC().Truncate(time.Second)

	var id int64
	err := r.db.QueryRowContext(ctx,
		r.ph.Rebind(`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`),
		user.Username, user.Email, user.PasswordHash, now.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return r.conflict(ctx, user)
		}
		return fmt.Errorf("creating user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

// conflict works out which unique column rejected user.
func (r *SQLUserRepository) conflict(ctx context.Context, user *User) error {
	taken, err := r.UsernameExists(ctx, user.Username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameExists
	}
	return ErrEmailExists
}

// GetByID retrieves a user by ID.
func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getUser(ctx, selectUsers+" WHERE id = ?", id)
}

// GetByUsername retrieves a user by username.
func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx, selectUsers+" WHERE username = ?", username)
}

// UsernameExists reports whether username is taken.
func (r *SQLUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", username)
}

// EmailExists reports whether email is taken.
func (r *SQLUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", email)
}

func (r *SQLUserRepository) exists(ctx context.Context, stmt string, arg any) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, r.ph.Rebind(stmt), arg).Scan(&count); err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return count > 0, nil
}

func (r *SQLUserRepository) getUser(ctx context.Context, stmt string, arg any) (*User, error) {
	var (
		u         User
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, r.ph.Rebind(stmt), arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	return &u, nil
}
