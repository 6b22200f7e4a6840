package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/core"
)

const userColumns = "id, name, email, password_hash, created_at"

// CreateUser persists a new user and returns the stored record. A duplicate
// email fails with ErrEmailTaken; the unique index is the authority, so two
// racing registrations cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		name, email, passwordHash, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return core.User{}, fmt.Errorf("create user: %w", core.ErrEmailTaken)
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("create user: last insert id: %w", err)
	}
	return core.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// GetUserByID looks up a user by primary key.
func (s *Store) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)

	var u core.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return core.User{}, notFoundErr(err, "get user by id")
	}
	return u, nil
}

// GetUserByEmail looks up a user by its unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)

	var u core.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return core.User{}, notFoundErr(err, "get user by email")
	}
	return u, nil
}

// UpdateUserProfile stores a new display name and email for the user.
func (s *Store) UpdateUserProfile(ctx context.Context, id int64, name, email string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ? WHERE id = ?", name, email, id)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update user profile: %w", core.ErrNotFound)
	}
	return nil
}

// UpdateUserPassword stores a new password hash for the user.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update user password: %w", core.ErrNotFound)
	}
	return nil
}

// DeleteUser removes the user; owned accounts, categories, and transactions
// cascade at the schema level.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	return nil
}
