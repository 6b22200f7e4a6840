package core

// MonthlyTotal is one bucket of the monthly expense trend, keyed by calendar
// month ("2025-03") of the transaction date.
type MonthlyTotal struct {
	Month string
	Total Money
}

// CategoryTotal is the expense sum for a single category. CategoryID is nil
// for transactions recorded without a category.
type CategoryTotal struct {
	CategoryID *int64
	Total      Money
}

// Summary carries the per-user income and expense totals.
type Summary struct {
	TotalIncome  Money
	TotalExpense Money
}
