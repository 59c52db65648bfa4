package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type LoanRepository interface {
	// Create inserts one decision record and returns its id.
	Create(ctx context.Context, record LoanRecord) (int64, error)
	// CreateWithNotification inserts the record and its notification row in
	// a single transaction; a failure of either leaves no trace of both.
	CreateWithNotification(ctx context.Context, record LoanRecord, notification Notification) (int64, error)
	// SumMonthlyPayments totals monthly_payment over the user's loans in the
	// given status, zero when there are none.
	SumMonthlyPayments(ctx context.Context, login string, status LoanStatus) (decimal.Decimal, error)
}
