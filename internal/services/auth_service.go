package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// UserStore is the persistence capability for user records.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error)
	GetUserByID(ctx context.Context, id int64) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	UpdateUserProfile(ctx context.Context, id int64, name, email string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
}

// PasswordHasher hashes and verifies credentials. Verification must be
// constant-time; the bcrypt-backed implementation in internal/auth is.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	UserID int64
	Email  string
	Token  string
}

type AuthService struct {
	store  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(store UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens}
}

// Register creates a user with a hashed password and issues a bearer token.
// A duplicate email fails with ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AuthResult{}, core.ErrEmptyEmail
	}
	if password == "" {
		return AuthResult{}, core.ErrEmptyPassword
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return AuthResult{}, core.ErrEmailTaken
	}
	if !errors.Is(err, core.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("register: %w", err)
	}

	user, err := s.store.CreateUser(ctx, "", email, hash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "User registered", log.FieldUserID, user.ID)
	return AuthResult{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// Login verifies credentials and issues a fresh bearer token. An unknown
// email and a wrong password fail with the same ErrInvalidCredentials so the
// response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return AuthResult{}, core.ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("login: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, core.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "User logged in", log.FieldUserID, user.ID)
	return AuthResult{UserID: user.ID, Email: user.Email, Token: token}, nil
}
