package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/domain"
	"github.com/inekruz/MoneyNote/internal/logger"
)

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

const insertLoanQuery = `
INSERT INTO loans (
	ulogin,
	requested_amount,
	approved_amount,
	term_months,
	annual_rate,
	monthly_payment,
	total_payment,
	status,
	decision_reason,
	income,
	expenses,
	credit_score,
	debt_to_income,
	alternative_data,
	processed_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW()
)
RETURNING id`

func (r *LoanRepository) Create(ctx context.Context, record domain.LoanRecord) (int64, error) {
	logger.Info("loan repository create", logger.Fields{
		"login":  record.Login,
		"status": string(record.Status),
	})

	var id int64
	if err := r.db.QueryRowContext(ctx, insertLoanQuery, loanInsertArgs(record)...).Scan(&id); err != nil {
		logger.Error("loan repository create failed", err, logger.Fields{
			"login":  record.Login,
			"status": string(record.Status),
		})
		return 0, fmt.Errorf("insert loan record: %w", err)
	}

	logger.Info("loan repository create success", logger.Fields{
		"login":  record.Login,
		"loanId": id,
	})

	return id, nil
}

// CreateWithNotification inserts the loan record and its notification row in
// one transaction so a mid-sequence failure leaves no orphaned notification.
func (r *LoanRepository) CreateWithNotification(ctx context.Context, record domain.LoanRecord, notification domain.Notification) (int64, error) {
	logger.Info("loan repository create with notification", logger.Fields{
		"login":  record.Login,
		"status": string(record.Status),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin loan acceptance tx: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, insertLoanQuery, loanInsertArgs(record)...).Scan(&id); err != nil {
		_ = tx.Rollback()
		logger.Error("loan repository create with notification insert failed", err, logger.Fields{
			"login": record.Login,
		})
		return 0, fmt.Errorf("insert loan record: %w", err)
	}

	const notificationQuery = `
INSERT INTO notification (ulogin, title, description)
VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctx, notificationQuery, notification.Login, notification.Title, notification.Description); err != nil {
		_ = tx.Rollback()
		logger.Error("loan repository create with notification notify insert failed", err, logger.Fields{
			"login": record.Login,
		})
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit loan acceptance tx: %w", err)
	}

	logger.Info("loan repository create with notification success", logger.Fields{
		"login":  record.Login,
		"loanId": id,
	})

	return id, nil
}

func (r *LoanRepository) SumMonthlyPayments(ctx context.Context, login string, status domain.LoanStatus) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(monthly_payment), 0)
FROM loans
WHERE ulogin = $1
  AND status = $2`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, login, string(status)).Scan(&total); err != nil {
		logger.Error("loan repository sum monthly payments failed", err, logger.Fields{
			"login":  login,
			"status": string(status),
		})
		return decimal.Zero, fmt.Errorf("sum monthly payments: %w", err)
	}

	return total, nil
}

func loanInsertArgs(record domain.LoanRecord) []any {
	alternativeData := sql.NullString{}
	if record.AlternativeData != "" {
		alternativeData = sql.NullString{String: record.AlternativeData, Valid: true}
	}

	return []any{
		record.Login,
		record.RequestedAmount,
		record.ApprovedAmount,
		record.TermMonths,
		record.AnnualRate,
		record.MonthlyPayment,
		record.TotalPayment,
		string(record.Status),
		record.DecisionReason,
		record.Income,
		record.Expenses,
		record.CreditScore,
		record.DebtToIncome,
		alternativeData,
	}
}
