package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fintrack/internal/core"
)

// StoreTestSuite runs every storage test against a fresh in-memory database.
type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	store, err := Open(":memory:")
	require.NoError(s.T(), err, "failed to open test database")
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) createUser(email string) core.User {
	user, err := s.store.CreateUser(s.ctx, "Test User", email, "hash")
	require.NoError(s.T(), err)
	return user
}

func (s *StoreTestSuite) createAccount(userID int64, name string) core.Account {
	account, err := s.store.CreateAccount(s.ctx, name, userID)
	require.NoError(s.T(), err)
	return account
}

func (s *StoreTestSuite) createTxn(userID, accountID int64, categoryID *int64, cents int64, txnType core.TransactionType, date time.Time) core.Transaction {
	txn, err := s.store.CreateTransaction(s.ctx, core.Transaction{
		Amount:     core.Money{Cents: cents},
		Type:       txnType,
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Date:       date,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(s.T(), err)
	return txn
}

func (s *StoreTestSuite) TestCreateAndGetUser() {
	user := s.createUser("alice@example.com")
	assert.Positive(s.T(), user.ID)

	got, err := s.store.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice@example.com", got.Email)
	assert.Equal(s.T(), "hash", got.PasswordHash)

	byEmail, err := s.store.GetUserByEmail(s.ctx, "alice@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, byEmail.ID)
}

func (s *StoreTestSuite) TestGetUserNotFound() {
	_, err := s.store.GetUserByID(s.ctx, 999)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)

	_, err = s.store.GetUserByEmail(s.ctx, "nobody@example.com")
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *StoreTestSuite) TestDuplicateEmailFails() {
	s.createUser("alice@example.com")
	// The unique index catches duplicates even when a racing registration
	// slipped past the service-level existence check.
	_, err := s.store.CreateUser(s.ctx, "Other", "alice@example.com", "hash2")
	assert.ErrorIs(s.T(), err, core.ErrEmailTaken)
}

func (s *StoreTestSuite) TestUpdateUserProfile() {
	user := s.createUser("alice@example.com")

	err := s.store.UpdateUserProfile(s.ctx, user.ID, "Alice B", "alice.b@example.com")
	require.NoError(s.T(), err)

	got, err := s.store.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Alice B", got.Name)
	assert.Equal(s.T(), "alice.b@example.com", got.Email)

	err = s.store.UpdateUserProfile(s.ctx, 999, "X", "x@example.com")
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *StoreTestSuite) TestUpdateUserPassword() {
	user := s.createUser("alice@example.com")

	err := s.store.UpdateUserPassword(s.ctx, user.ID, "newhash")
	require.NoError(s.T(), err)

	got, err := s.store.GetUserByID(s.ctx, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "newhash", got.PasswordHash)
}

func (s *StoreTestSuite) TestDeleteUserCascades() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")
	category, err := s.store.CreateCategory(s.ctx, "Food", user.ID)
	require.NoError(s.T(), err)
	txn := s.createTxn(user.ID, account.ID, &category.ID, 1000, core.Expense, time.Now().UTC())

	require.NoError(s.T(), s.store.DeleteUser(s.ctx, user.ID))

	_, err = s.store.GetUserByID(s.ctx, user.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
	_, err = s.store.GetAccountForOwner(s.ctx, account.ID, user.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
	_, err = s.store.GetCategoryForOwner(s.ctx, category.ID, user.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
	_, err = s.store.GetTransactionForOwner(s.ctx, txn.ID, user.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *StoreTestSuite) TestAccountOwnerScoping() {
	alice := s.createUser("alice@example.com")
	bob := s.createUser("bob@example.com")
	account := s.createAccount(alice.ID, "Checking")

	got, err := s.store.GetAccountForOwner(s.ctx, account.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Checking", got.Name)

	// Someone else's account reads as absent.
	_, err = s.store.GetAccountForOwner(s.ctx, account.ID, bob.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)

	err = s.store.DeleteAccountForOwner(s.ctx, account.ID, bob.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)
}

func (s *StoreTestSuite) TestListAccountsForOwner() {
	alice := s.createUser("alice@example.com")
	bob := s.createUser("bob@example.com")
	s.createAccount(alice.ID, "Checking")
	s.createAccount(alice.ID, "Savings")
	s.createAccount(bob.ID, "Other")

	accounts, err := s.store.ListAccountsForOwner(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), accounts, 2)
	assert.Equal(s.T(), "Checking", accounts[0].Name)
	assert.Equal(s.T(), "Savings", accounts[1].Name)
}

func (s *StoreTestSuite) TestListCategoriesSortedByName() {
	user := s.createUser("alice@example.com")
	for _, name := range []string{"Travel", "Food", "Bills"} {
		_, err := s.store.CreateCategory(s.ctx, name, user.ID)
		require.NoError(s.T(), err)
	}

	categories, err := s.store.ListCategoriesForOwner(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), categories, 3)
	assert.Equal(s.T(), "Bills", categories[0].Name)
	assert.Equal(s.T(), "Food", categories[1].Name)
	assert.Equal(s.T(), "Travel", categories[2].Name)
}

func (s *StoreTestSuite) TestTransactionRoundtrip() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")
	category, err := s.store.CreateCategory(s.ctx, "Food", user.ID)
	require.NoError(s.T(), err)

	date := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	created := s.createTxn(user.ID, account.ID, &category.ID, 1234, core.Expense, date)
	assert.Positive(s.T(), created.ID)

	got, err := s.store.GetTransactionForOwner(s.ctx, created.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1234), got.Amount.Cents)
	assert.Equal(s.T(), core.Expense, got.Type)
	require.NotNil(s.T(), got.CategoryID)
	assert.Equal(s.T(), category.ID, *got.CategoryID)
	assert.True(s.T(), got.Date.Equal(date))
}

func (s *StoreTestSuite) TestTransactionWithoutCategory() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")

	created := s.createTxn(user.ID, account.ID, nil, 500, core.Income, time.Now().UTC())

	got, err := s.store.GetTransactionForOwner(s.ctx, created.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got.CategoryID)
}

func (s *StoreTestSuite) TestTransactionOwnerScoping() {
	alice := s.createUser("alice@example.com")
	bob := s.createUser("bob@example.com")
	account := s.createAccount(alice.ID, "Checking")
	txn := s.createTxn(alice.ID, account.ID, nil, 500, core.Income, time.Now().UTC())

	_, err := s.store.GetTransactionForOwner(s.ctx, txn.ID, bob.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)

	err = s.store.DeleteTransactionForOwner(s.ctx, txn.ID, bob.ID)
	assert.ErrorIs(s.T(), err, core.ErrNotFound)

	// Still there for the owner.
	_, err = s.store.GetTransactionForOwner(s.ctx, txn.ID, alice.ID)
	assert.NoError(s.T(), err)
}

func (s *StoreTestSuite) TestListTransactionsPagination() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.createTxn(user.ID, account.ID, nil, int64(100*(i+1)), core.Expense, base.AddDate(0, 0, i))
	}

	req := core.PageRequest{Page: 0, Size: 2, SortBy: "txnDate", Desc: true}
	txns, total, err := s.store.ListTransactions(s.ctx, TransactionFilter{UserID: user.ID}, req)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(5), total)
	require.Len(s.T(), txns, 2)
	// Newest first.
	assert.Equal(s.T(), int64(500), txns[0].Amount.Cents)
	assert.Equal(s.T(), int64(400), txns[1].Amount.Cents)

	req.Page = 2
	txns, _, err = s.store.ListTransactions(s.ctx, TransactionFilter{UserID: user.ID}, req)
	require.NoError(s.T(), err)
	require.Len(s.T(), txns, 1)
	assert.Equal(s.T(), int64(100), txns[0].Amount.Cents)
}

func (s *StoreTestSuite) TestListTransactionsFilters() {
	user := s.createUser("alice@example.com")
	checking := s.createAccount(user.ID, "Checking")
	savings := s.createAccount(user.ID, "Savings")
	category, err := s.store.CreateCategory(s.ctx, "Food", user.ID)
	require.NoError(s.T(), err)

	s.createTxn(user.ID, checking.ID, &category.ID, 100, core.Expense, time.Now().UTC())
	s.createTxn(user.ID, checking.ID, nil, 200, core.Expense, time.Now().UTC())
	s.createTxn(user.ID, savings.ID, nil, 300, core.Income, time.Now().UTC())

	req := core.PageRequest{Page: 0, Size: 10}

	_, total, err := s.store.ListTransactions(s.ctx,
		TransactionFilter{UserID: user.ID, AccountID: &checking.ID}, req)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), total)

	_, total, err = s.store.ListTransactions(s.ctx,
		TransactionFilter{UserID: user.ID, CategoryID: &category.ID}, req)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), total)
}

func (s *StoreTestSuite) TestListTransactionsSortByAmount() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")
	now := time.Now().UTC()
	s.createTxn(user.ID, account.ID, nil, 300, core.Expense, now)
	s.createTxn(user.ID, account.ID, nil, 100, core.Expense, now)
	s.createTxn(user.ID, account.ID, nil, 200, core.Expense, now)

	req := core.PageRequest{Page: 0, Size: 10, SortBy: "amount", Desc: false}
	txns, _, err := s.store.ListTransactions(s.ctx, TransactionFilter{UserID: user.ID}, req)
	require.NoError(s.T(), err)
	require.Len(s.T(), txns, 3)
	assert.Equal(s.T(), int64(100), txns[0].Amount.Cents)
	assert.Equal(s.T(), int64(300), txns[2].Amount.Cents)
}

func (s *StoreTestSuite) TestAccountBalance() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")
	now := time.Now().UTC()

	balance, err := s.store.AccountBalance(s.ctx, account.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), balance)

	s.createTxn(user.ID, account.ID, nil, 10000, core.Income, now)
	s.createTxn(user.ID, account.ID, nil, 2500, core.Expense, now)
	s.createTxn(user.ID, account.ID, nil, 500, core.Expense, now)

	balance, err = s.store.AccountBalance(s.ctx, account.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(7000), balance)
}

func (s *StoreTestSuite) TestTotalByType() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")
	now := time.Now().UTC()

	s.createTxn(user.ID, account.ID, nil, 10000, core.Income, now)
	s.createTxn(user.ID, account.ID, nil, 2500, core.Expense, now)
	s.createTxn(user.ID, account.ID, nil, 1500, core.Expense, now)

	income, err := s.store.TotalByType(s.ctx, user.ID, core.Income)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(10000), income)

	expense, err := s.store.TotalByType(s.ctx, user.ID, core.Expense)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(4000), expense)
}

func (s *StoreTestSuite) TestMonthlyExpenseTrend() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")

	january := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	february := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	s.createTxn(user.ID, account.ID, nil, 15000, core.Expense, january)
	s.createTxn(user.ID, account.ID, nil, 5000, core.Expense, january.AddDate(0, 0, 10))
	s.createTxn(user.ID, account.ID, nil, 30000, core.Expense, february)
	// Income is not part of the trend.
	s.createTxn(user.ID, account.ID, nil, 99999, core.Income, february)

	trend, err := s.store.MonthlyExpenseTrend(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), trend, 2)
	assert.Equal(s.T(), "2026-01", trend[0].Month)
	assert.Equal(s.T(), int64(20000), trend[0].Total.Cents)
	assert.Equal(s.T(), "2026-02", trend[1].Month)
	assert.Equal(s.T(), int64(30000), trend[1].Total.Cents)
}

func (s *StoreTestSuite) TestExpenseByCategory() {
	user := s.createUser("alice@example.com")
	account := s.createAccount(user.ID, "Checking")
	food, err := s.store.CreateCategory(s.ctx, "Food", user.ID)
	require.NoError(s.T(), err)
	now := time.Now().UTC()

	s.createTxn(user.ID, account.ID, &food.ID, 1000, core.Expense, now)
	s.createTxn(user.ID, account.ID, &food.ID, 500, core.Expense, now)
	s.createTxn(user.ID, account.ID, nil, 200, core.Expense, now)

	totals, err := s.store.ExpenseByCategory(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), totals, 2)

	byCategory := make(map[int64]int64)
	var uncategorized int64
	for _, ct := range totals {
		if ct.CategoryID == nil {
			uncategorized = ct.Total.Cents
		} else {
			byCategory[*ct.CategoryID] = ct.Total.Cents
		}
	}
	assert.Equal(s.T(), int64(1500), byCategory[food.ID])
	assert.Equal(s.T(), int64(200), uncategorized)
}
