package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	// TransactionType is the closed INCOME/EXPENSE enum.
	TransactionType string

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Name         string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}

	Account struct {
		ID        int64
		Name      string
		UserID    int64
		CreatedAt time.Time
	}

	Category struct {
		ID     int64
		Name   string
		UserID int64
	}

	Transaction struct {
		ID          int64
		Amount      Money
		Description string
		Type        TransactionType
		UserID      int64
		AccountID   int64
		CategoryID  *int64 // optional classifier
		Date        time.Time
		CreatedAt   time.Time
	}
)

var (
	// ErrValidation is the base of every malformed-input failure; the HTTP
	// layer maps anything wrapping it to a 400.
	ErrValidation = errors.New("validation failed")

	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("invalid amount: %w", ErrValidation)
	ErrInvalidType        = fmt.Errorf("invalid transaction type: %w", ErrValidation)
	ErrEmptyName          = fmt.Errorf("empty name: %w", ErrValidation)
	ErrEmptyEmail         = fmt.Errorf("empty email: %w", ErrValidation)
	ErrEmptyPassword      = fmt.Errorf("empty password: %w", ErrValidation)
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Signed returns the amount with income positive and expense negative,
// which is how account balances are accumulated.
func (t Transaction) Signed() int64 {
	if t.Type == Expense {
		return -t.Amount.Cents
	}
	return t.Amount.Cents
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return fmt.Errorf("name too long (max 100 characters): %w", ErrValidation)
	}
	if a.UserID <= 0 {
		return fmt.Errorf("missing user id: %w", ErrValidation)
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return fmt.Errorf("name too long (max 100 characters): %w", ErrValidation)
	}
	if c.UserID <= 0 {
		return fmt.Errorf("missing user id: %w", ErrValidation)
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.UserID <= 0 {
		return fmt.Errorf("missing user id: %w", ErrValidation)
	}
	if t.AccountID <= 0 {
		return fmt.Errorf("missing account id: %w", ErrValidation)
	}
	if len(t.Description) > 500 {
		return fmt.Errorf("description too long (max 500 characters): %w", ErrValidation)
	}
	return nil
}
