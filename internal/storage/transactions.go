package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fintrack/internal/core"
)

const txnColumns = "id, amount_cents, description, txn_type, user_id, account_id, category_id, txn_date, created_at"

// TransactionFilter narrows paginated transaction queries. UserID is always
// required; AccountID and CategoryID are optional extra scopes.
type TransactionFilter struct {
	UserID     int64
	AccountID  *int64
	CategoryID *int64
}

// sortColumns whitelists the externally addressable sort keys. Anything else
// falls back to the transaction date.
var sortColumns = map[string]string{
	"txnDate":   "txn_date",
	"amount":    "amount_cents",
	"createdAt": "created_at",
	"id":        "id",
}

func orderClause(req core.PageRequest) string {
	col, ok := sortColumns[req.SortBy]
	if !ok {
		col = "txn_date"
	}
	dir := "ASC"
	if req.Desc {
		dir = "DESC"
	}
	// Secondary id sort keeps pages stable across identical dates.
	return fmt.Sprintf("ORDER BY %s %s, id %s", col, dir, dir)
}

// CreateTransaction persists t and returns the stored record with its
// assigned id. Timestamps must already be set by the caller.
func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions
		 (amount_cents, description, txn_type, user_id, account_id, category_id, txn_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Amount.Cents, t.Description, string(t.Type), t.UserID, t.AccountID,
		nullableID(t.CategoryID), t.Date.UTC(), t.CreatedAt.UTC(),
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: last insert id: %w", err)
	}
	t.ID = id
	return t, nil
}

// GetTransactionForOwner returns the transaction only when it exists and is
// owned by userID.
func (s *Store) GetTransactionForOwner(ctx context.Context, id, userID int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+txnColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, notFoundErr(err, "get transaction")
	}
	return t, nil
}

// DeleteTransactionForOwner removes the transaction if owned by userID.
func (s *Store) DeleteTransactionForOwner(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete transaction: %w", core.ErrNotFound)
	}
	return nil
}

// ListTransactions returns one page of transactions matching the filter plus
// the total match count.
func (s *Store) ListTransactions(ctx context.Context, f TransactionFilter, req core.PageRequest) ([]core.Transaction, int64, error) {
	where := "WHERE user_id = ?"
	args := []any{f.UserID}
	if f.AccountID != nil {
		where += " AND account_id = ?"
		args = append(args, *f.AccountID)
	}
	if f.CategoryID != nil {
		where += " AND category_id = ?"
		args = append(args, *f.CategoryID)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := "SELECT " + txnColumns + " FROM transactions " + where + " " +
		orderClause(req) + " LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list transactions: scan: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, total, rows.Err()
}

// AccountBalance sums signed transaction amounts (income positive, expense
// negative) for the account, scoped to its owner. No transactions yields
// zero, not an error.
func (s *Store) AccountBalance(ctx context.Context, accountID, userID int64) (int64, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN txn_type = 'INCOME' THEN amount_cents ELSE -amount_cents END), 0)
		 FROM transactions WHERE account_id = ? AND user_id = ?`,
		accountID, userID,
	).Scan(&cents)
	if err != nil {
		return 0, fmt.Errorf("account balance: %w", err)
	}
	return cents, nil
}

// TotalByType sums amounts of the given type for the user, zero when no rows
// match.
func (s *Store) TotalByType(ctx context.Context, userID int64, txnType core.TransactionType) (int64, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE user_id = ? AND txn_type = ?`,
		userID, string(txnType),
	).Scan(&cents)
	if err != nil {
		return 0, fmt.Errorf("total by type: %w", err)
	}
	return cents, nil
}

// MonthlyExpenseTrend groups the user's expenses by calendar month of the
// transaction date, in chronological order. Timestamps are stored in a
// lexicographic text format, so the leading "YYYY-MM" is the month key.
func (s *Store) MonthlyExpenseTrend(ctx context.Context, userID int64) ([]core.MonthlyTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT substr(txn_date, 1, 7) AS month, SUM(amount_cents)
		 FROM transactions
		 WHERE user_id = ? AND txn_type = 'EXPENSE'
		 GROUP BY month
		 ORDER BY month`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("monthly expense trend: %w", err)
	}
	defer rows.Close()

	var trend []core.MonthlyTotal
	for rows.Next() {
		var mt core.MonthlyTotal
		if err := rows.Scan(&mt.Month, &mt.Total.Cents); err != nil {
			return nil, fmt.Errorf("monthly expense trend: scan: %w", err)
		}
		trend = append(trend, mt)
	}
	return trend, rows.Err()
}

// ExpenseByCategory sums the user's expenses per category id. Uncategorized
// transactions appear under a nil category id.
func (s *Store) ExpenseByCategory(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id, SUM(amount_cents)
		 FROM transactions
		 WHERE user_id = ? AND txn_type = 'EXPENSE'
		 GROUP BY category_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("expense by category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		var catID sql.NullInt64
		if err := rows.Scan(&catID, &ct.Total.Cents); err != nil {
			return nil, fmt.Errorf("expense by category: scan: %w", err)
		}
		if catID.Valid {
			id := catID.Int64
			ct.CategoryID = &id
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var txnType string
	var catID sql.NullInt64
	var date, created time.Time
	err := row.Scan(&t.ID, &t.Amount.Cents, &t.Description, &txnType,
		&t.UserID, &t.AccountID, &catID, &date, &created)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(txnType)
	if catID.Valid {
		id := catID.Int64
		t.CategoryID = &id
	}
	t.Date = date
	t.CreatedAt = created
	return t, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
