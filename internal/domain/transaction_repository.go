package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	// AverageAmount returns the average transaction amount of the given type
	// for the user since the given instant, zero when no rows match.
	AverageAmount(ctx context.Context, login string, txType TransactionType, since time.Time) (decimal.Decimal, error)
}
