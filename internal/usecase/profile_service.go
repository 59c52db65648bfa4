package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/inekruz/MoneyNote/internal/domain"
	"github.com/inekruz/MoneyNote/internal/logger"
)

const profileWindowMonths = 3

type ProfileService struct {
	transactionRepo domain.TransactionRepository
	loanRepo        domain.LoanRepository
}

func NewProfileService(transactionRepo domain.TransactionRepository, loanRepo domain.LoanRepository) *ProfileService {
	return &ProfileService{transactionRepo: transactionRepo, loanRepo: loanRepo}
}

// GetFinancialProfile derives the user's profile from the last three months
// of transactions plus the monthly payments of approved loans. The three
// aggregate reads touch disjoint data and run concurrently; any failure
// surfaces as a retrieval failure with no partial result.
func (s *ProfileService) GetFinancialProfile(ctx context.Context, login string) (domain.FinancialProfile, error) {
	since := time.Now().AddDate(0, -profileWindowMonths, 0)

	var income, expenses, debts decimal.Decimal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.transactionRepo.AverageAmount(gctx, login, domain.TransactionIncome, since)
		if err != nil {
			return fmt.Errorf("average income: %w", err)
		}
		income = v
		return nil
	})
	g.Go(func() error {
		v, err := s.transactionRepo.AverageAmount(gctx, login, domain.TransactionExpense, since)
		if err != nil {
			return fmt.Errorf("average expenses: %w", err)
		}
		expenses = v
		return nil
	})
	g.Go(func() error {
		v, err := s.loanRepo.SumMonthlyPayments(gctx, login, domain.LoanStatusApproved)
		if err != nil {
			return fmt.Errorf("sum existing debts: %w", err)
		}
		debts = v
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("profile service aggregation failed", err, logger.Fields{
			"login": login,
		})
		return domain.FinancialProfile{}, fmt.Errorf("get financial profile: %w", err)
	}

	return domain.FinancialProfile{
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		ExistingDebts:   debts,
	}, nil
}
