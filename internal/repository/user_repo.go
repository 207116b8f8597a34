package repository

import (
	"app/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByUID(ctx context.Context, uid string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, uid string, displayName, photoURL *string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, uid string, at time.Time) error
	DeleteUser(ctx context.Context, uid string) error
	Count(ctx context.Context) (int, error)
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	query := `INSERT INTO users (uid, email, display_name, photo_url, password_hash)
              VALUES ($1, $2, $3, $4, $5) RETURNING created_at, last_login`
	err := r.db.QueryRowContext(ctx, query, u.UID, u.Email, u.DisplayName, u.PhotoURL, u.PasswordHash).
		Scan(&u.CreatedAt, &u.LastLogin)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("creating user %s: %w", u.UID, err)
	}
	return nil
}

func (r *userRepo) GetUserByUID(ctx context.Context, uid string) (*model.User, error) {
	query := `SELECT uid, email, display_name, photo_url, password_hash, created_at, last_login
              FROM users WHERE uid = $1`
	return r.getUser(ctx, query, uid)
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT uid, email, display_name, photo_url, password_hash, created_at, last_login
              FROM users WHERE email = $1`
	return r.getUser(ctx, query, email)
}

func (r *userRepo) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	row := r.db.QueryRowContext(ctx, query, arg)
	err := row.Scan(&u.UID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.PasswordHash, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}

// UpdateProfile updates only the fields whose pointers are non-nil and
// returns the stored user.
func (r *userRepo) UpdateProfile(ctx context.Context, uid string, displayName, photoURL *string) (*model.User, error) {
	query := `UPDATE users
              SET display_name = COALESCE($2, display_name),
                  photo_url    = COALESCE($3, photo_url)
              WHERE uid = $1
              RETURNING uid, email, display_name, photo_url, password_hash, created_at, last_login`
	var u model.User
	err := r.db.QueryRowContext(ctx, query, uid, displayName, photoURL).
		Scan(&u.UID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.PasswordHash, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating user %s: %w", uid, err)
	}
	return &u, nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE uid = $1`
	if _, err := r.db.ExecContext(ctx, query, uid, at); err != nil {
		return fmt.Errorf("updating last login for user %s: %w", uid, err)
	}
	return nil
}

func (r *userRepo) DeleteUser(ctx context.Context, uid string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("deleting user %s: %w", uid, err)
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
