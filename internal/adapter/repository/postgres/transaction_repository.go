package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/domain"
	"github.com/inekruz/MoneyNote/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) AverageAmount(ctx context.Context, login string, txType domain.TransactionType, since time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(AVG(amount), 0)
FROM transactions
WHERE ulogin = $1
  AND type = $2
  AND date >= $3`

	var average decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, login, string(txType), since).Scan(&average); err != nil {
		logger.Error("transaction repository average amount failed", err, logger.Fields{
			"login": login,
			"type":  string(txType),
		})
		return decimal.Zero, fmt.Errorf("average %s amount: %w", txType, err)
	}

	return average, nil
}
