package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// TransactionStore is the persistence capability transactions need,
// including the owner-scoped account/category lookups used to verify
// referential integrity before insert.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	GetTransactionForOwner(ctx context.Context, id, userID int64) (core.Transaction, error)
	DeleteTransactionForOwner(ctx context.Context, id, userID int64) error
	ListTransactions(ctx context.Context, f storage.TransactionFilter, req core.PageRequest) ([]core.Transaction, int64, error)
	AccountBalance(ctx context.Context, accountID, userID int64) (int64, error)
	TotalByType(ctx context.Context, userID int64, txnType core.TransactionType) (int64, error)
	MonthlyExpenseTrend(ctx context.Context, userID int64) ([]core.MonthlyTotal, error)
	ExpenseByCategory(ctx context.Context, userID int64) ([]core.CategoryTotal, error)

	GetAccountForOwner(ctx context.Context, id, userID int64) (core.Account, error)
	GetCategoryForOwner(ctx context.Context, id, userID int64) (core.Category, error)
}

// CreateTransactionInput carries the caller-supplied fields for a new
// transaction. Date may be zero; the service assigns the current time.
type CreateTransactionInput struct {
	UserID      int64
	AccountID   int64
	CategoryID  *int64
	AmountCents int64
	Description string
	Type        core.TransactionType
	Date        time.Time
}

type TransactionService struct {
	store TransactionStore
}

func NewTransactionService(store TransactionStore) *TransactionService {
	return &TransactionService{store: store}
}

// Create validates and persists a new transaction. The referenced account,
// and category when given, must be owned by the requesting user; a violation
// surfaces as ErrNotFound just like any other owner-scoped miss.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (core.Transaction, error) {
	now := time.Now().UTC()
	t := core.Transaction{
		Amount:      core.Money{Cents: in.AmountCents},
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		UserID:      in.UserID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Date:        in.Date,
		CreatedAt:   now,
	}
	if t.Date.IsZero() {
		t.Date = now
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if _, err := s.store.GetAccountForOwner(ctx, t.AccountID, t.UserID); err != nil {
		return core.Transaction{}, fmt.Errorf("verify account: %w", err)
	}
	if t.CategoryID != nil {
		if _, err := s.store.GetCategoryForOwner(ctx, *t.CategoryID, t.UserID); err != nil {
			return core.Transaction{}, fmt.Errorf("verify category: %w", err)
		}
	}

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction created",
		log.FieldTxnID, created.ID,
		log.FieldUserID, created.UserID,
		log.FieldAccountID, created.AccountID,
		log.FieldTxnType, string(created.Type),
		log.FieldAmountCents, created.Amount.Cents)
	return created, nil
}

// Get returns the transaction if it exists and is owned by userID.
func (s *TransactionService) Get(ctx context.Context, id, userID int64) (core.Transaction, error) {
	return s.store.GetTransactionForOwner(ctx, id, userID)
}

// Delete removes the transaction after the owner-scoped lookup.
func (s *TransactionService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.store.GetTransactionForOwner(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.DeleteTransactionForOwner(ctx, id, userID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", log.FieldTxnID, id, log.FieldUserID, userID)
	return nil
}

// ListByUser returns one page of the user's transactions.
func (s *TransactionService) ListByUser(ctx context.Context, userID int64, req core.PageRequest) (core.Page[core.Transaction], error) {
	return s.list(ctx, storage.TransactionFilter{UserID: userID}, req)
}

// ListByAccount returns one page of the user's transactions for one account.
func (s *TransactionService) ListByAccount(ctx context.Context, userID, accountID int64, req core.PageRequest) (core.Page[core.Transaction], error) {
	return s.list(ctx, storage.TransactionFilter{UserID: userID, AccountID: &accountID}, req)
}

// ListByCategory returns one page of the user's transactions for one category.
func (s *TransactionService) ListByCategory(ctx context.Context, userID, categoryID int64, req core.PageRequest) (core.Page[core.Transaction], error) {
	return s.list(ctx, storage.TransactionFilter{UserID: userID, CategoryID: &categoryID}, req)
}

func (s *TransactionService) list(ctx context.Context, f storage.TransactionFilter, req core.PageRequest) (core.Page[core.Transaction], error) {
	txns, total, err := s.store.ListTransactions(ctx, f, req)
	if err != nil {
		return core.Page[core.Transaction]{}, fmt.Errorf("list transactions: %w", err)
	}
	return core.NewPage(txns, total, req), nil
}

// AccountBalance sums signed amounts for the account; zero when no
// transactions exist. The account itself must exist and be owned by userID.
func (s *TransactionService) AccountBalance(ctx context.Context, accountID, userID int64) (core.Money, error) {
	if _, err := s.store.GetAccountForOwner(ctx, accountID, userID); err != nil {
		return core.Money{}, err
	}
	cents, err := s.store.AccountBalance(ctx, accountID, userID)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

// Summary returns the user's total income and total expense, each zero when
// no matching transactions exist.
func (s *TransactionService) Summary(ctx context.Context, userID int64) (core.Summary, error) {
	income, err := s.store.TotalByType(ctx, userID, core.Income)
	if err != nil {
		return core.Summary{}, err
	}
	expense, err := s.store.TotalByType(ctx, userID, core.Expense)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summary{
		TotalIncome:  core.Money{Cents: income},
		TotalExpense: core.Money{Cents: expense},
	}, nil
}

// MonthlyExpenseTrend returns the user's expense totals bucketed by calendar
// month, oldest first.
func (s *TransactionService) MonthlyExpenseTrend(ctx context.Context, userID int64) ([]core.MonthlyTotal, error) {
	return s.store.MonthlyExpenseTrend(ctx, userID)
}

// ExpenseByCategory returns the user's expense totals grouped by category id.
func (s *TransactionService) ExpenseByCategory(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	return s.store.ExpenseByCategory(ctx, userID)
}
