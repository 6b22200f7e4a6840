package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, Income.Valid())
	assert.True(t, Expense.Valid())
	assert.False(t, TransactionType("TRANSFER").Valid())
	assert.False(t, TransactionType("income").Valid())
	assert.False(t, TransactionType("").Valid())
}

func TestTransactionSigned(t *testing.T) {
	income := Transaction{Amount: Money{Cents: 500}, Type: Income}
	expense := Transaction{Amount: Money{Cents: 500}, Type: Expense}
	assert.Equal(t, int64(500), income.Signed())
	assert.Equal(t, int64(-500), expense.Signed())
}

func TestAccountValidate(t *testing.T) {
	assert.NoError(t, Account{Name: "Checking", UserID: 1}.Validate())
	assert.ErrorIs(t, Account{Name: "  ", UserID: 1}.Validate(), ErrEmptyName)
	assert.ErrorIs(t, Account{Name: strings.Repeat("x", 101), UserID: 1}.Validate(), ErrValidation)
	assert.ErrorIs(t, Account{Name: "Checking"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Account{Name: "Checking", UserID: -1}.Validate(), ErrValidation)
}

func TestCategoryValidate(t *testing.T) {
	assert.NoError(t, Category{Name: "Groceries", UserID: 1}.Validate())
	assert.ErrorIs(t, Category{Name: "", UserID: 1}.Validate(), ErrEmptyName)
	assert.ErrorIs(t, Category{Name: strings.Repeat("x", 101), UserID: 1}.Validate(), ErrValidation)
	assert.ErrorIs(t, Category{Name: "Groceries"}.Validate(), ErrValidation)
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Amount:    Money{Cents: 1234},
		Type:      Expense,
		UserID:    1,
		AccountID: 1,
	}
	assert.NoError(t, valid.Validate())

	zeroAmount := valid
	zeroAmount.Amount = Money{}
	assert.ErrorIs(t, zeroAmount.Validate(), ErrInvalidAmount)

	badType := valid
	badType.Type = "TRANSFER"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidType)

	noUser := valid
	noUser.UserID = 0
	assert.ErrorIs(t, noUser.Validate(), ErrValidation)

	noAccount := valid
	noAccount.AccountID = 0
	assert.ErrorIs(t, noAccount.Validate(), ErrValidation)

	longDescription := valid
	longDescription.Description = strings.Repeat("x", 501)
	assert.ErrorIs(t, longDescription.Validate(), ErrValidation)
}
