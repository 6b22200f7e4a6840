// Package services holds the per-entity business rules: ownership
// enforcement, uniqueness checks, credential verification, and aggregate
// computation. Every service takes its storage dependency at construction
// time; there is no ambient lookup.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// AccountStore is the owner-scoped persistence capability accounts need.
// Lookups and deletes always carry the requesting user id; a mismatch reads
// as absence.
type AccountStore interface {
	CreateAccount(ctx context.Context, name string, userID int64) (core.Account, error)
	GetAccountForOwner(ctx context.Context, id, userID int64) (core.Account, error)
	ListAccountsForOwner(ctx context.Context, userID int64) ([]core.Account, error)
	DeleteAccountForOwner(ctx context.Context, id, userID int64) error
}

type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// List returns all accounts owned by userID; an empty result is not an error.
func (s *AccountService) List(ctx context.Context, userID int64) ([]core.Account, error) {
	accounts, err := s.store.ListAccountsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Get returns the account if it exists and is owned by userID.
func (s *AccountService) Get(ctx context.Context, id, userID int64) (core.Account, error) {
	return s.store.GetAccountForOwner(ctx, id, userID)
}

// Create persists a new account for userID.
func (s *AccountService) Create(ctx context.Context, name string, userID int64) (core.Account, error) {
	a := core.Account{Name: strings.TrimSpace(name), UserID: userID}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	created, err := s.store.CreateAccount(ctx, a.Name, userID)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	slog.InfoContext(ctx, "Account created", log.FieldAccountID, created.ID, log.FieldUserID, userID)
	return created, nil
}

// Delete verifies ownership with the same owner-scoped lookup as Get, then
// permanently removes the account.
func (s *AccountService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.store.GetAccountForOwner(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.DeleteAccountForOwner(ctx, id, userID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Account deleted", log.FieldAccountID, id, log.FieldUserID, userID)
	return nil
}
