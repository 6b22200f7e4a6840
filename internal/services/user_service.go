package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type UserService struct {
	store  UserStore
	hasher PasswordHasher
}

func NewUserService(store UserStore, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// GetProfile returns the user record; ErrNotFound for an unknown id.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (core.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// UpdateProfile stores a new display name and email.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name, email string) (core.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return core.User{}, err
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return core.User{}, core.ErrEmptyEmail
	}

	if err := s.store.UpdateUserProfile(ctx, userID, name, email); err != nil {
		return core.User{}, fmt.Errorf("update profile: %w", err)
	}

	user.Name = name
	user.Email = email
	slog.InfoContext(ctx, "Profile updated", log.FieldUserID, userID)
	return user, nil
}

// ChangePassword verifies oldPassword against the stored hash before storing
// the hash of newPassword. A mismatch fails with ErrInvalidCredentials and
// leaves the stored hash untouched.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return fmt.Errorf("old password incorrect: %w", core.ErrInvalidCredentials)
	}
	if newPassword == "" {
		return core.ErrEmptyPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	slog.InfoContext(ctx, "Password changed", log.FieldUserID, userID)
	return nil
}

// Delete removes the user and, through schema-level cascades, all owned
// accounts, categories, and transactions.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "User deleted", log.FieldUserID, userID)
	return nil
}
