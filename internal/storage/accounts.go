package storage

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// CreateAccount persists a new account with the current timestamp.
func (s *Store) CreateAccount(ctx context.Context, name string, userID int64) (core.Account, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (name, user_id, created_at) VALUES (?, ?, ?)",
		name, userID, now,
	)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: last insert id: %w", err)
	}
	return core.Account{ID: id, Name: name, UserID: userID, CreatedAt: now}, nil
}

// GetAccountForOwner returns the account only when it exists and is owned by
// userID.
func (s *Store) GetAccountForOwner(ctx context.Context, id, userID int64) (core.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, user_id, created_at FROM accounts WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var a core.Account
	if err := row.Scan(&a.ID, &a.Name, &a.UserID, &a.CreatedAt); err != nil {
		return core.Account{}, notFoundErr(err, "get account")
	}
	return a, nil
}

// ListAccountsForOwner returns all accounts owned by userID in storage order.
func (s *Store) ListAccountsForOwner(ctx context.Context, userID int64) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, user_id, created_at FROM accounts WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("list accounts: scan: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// DeleteAccountForOwner removes the account if owned by userID.
func (s *Store) DeleteAccountForOwner(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM accounts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}
	return nil
}
