package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction rows are owned by the bookkeeping subsystem; the credit engine
// only reads aggregates over them.
type Transaction struct {
	ID     int64
	Login  string
	Type   TransactionType
	Amount decimal.Decimal
	Date   time.Time
}
