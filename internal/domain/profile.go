package domain

import "github.com/shopspring/decimal"

// FinancialProfile is derived from the last three months of transaction
// history plus the monthly payments of currently approved loans. It is
// recomputed on every request and never persisted.
type FinancialProfile struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	ExistingDebts   decimal.Decimal
}
