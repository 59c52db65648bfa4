package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/domain"
)

const (
	minCreditScore = 300
	maxCreditScore = 850
)

var (
	baseScore        = decimal.NewFromInt(500)
	incomeFactorUnit = decimal.NewFromInt(10000)
	incomeFactorCap  = decimal.NewFromInt(30)
	ratioTight       = decimal.NewFromFloat(0.3)
	ratioModerate    = decimal.NewFromFloat(0.5)
	ratioLoose       = decimal.NewFromFloat(0.7)

	amountLargeTier = decimal.NewFromInt(500_000)
	amountSmallTier = decimal.NewFromInt(50_000)
	minAnnualRate   = decimal.NewFromInt(5)
	maxAnnualRate   = decimal.NewFromInt(35)
)

// CreditScore maps a financial profile to a FICO-like score in [300, 850].
// A deterministic heuristic, not a statistically fit model: income adds up
// to 300 points, a low expense ratio up to 200, and any existing debt costs
// a flat 100 regardless of magnitude.
func CreditScore(profile domain.FinancialProfile) int {
	score := baseScore

	incomeFactor := decimal.Min(profile.MonthlyIncome.Div(incomeFactorUnit), incomeFactorCap).
		Mul(decimal.NewFromInt(10))
	score = score.Add(incomeFactor)

	if profile.MonthlyIncome.IsPositive() {
		ratio := profile.MonthlyExpenses.Div(profile.MonthlyIncome)
		switch {
		case ratio.LessThan(ratioTight):
			score = score.Add(decimal.NewFromInt(200))
		case ratio.LessThan(ratioModerate):
			score = score.Add(decimal.NewFromInt(100))
		case ratio.LessThan(ratioLoose):
			score = score.Add(decimal.NewFromInt(50))
		}
	}

	if profile.ExistingDebts.IsPositive() {
		score = score.Sub(decimal.NewFromInt(100))
	}

	result := score.Round(0).IntPart()
	if result < minCreditScore {
		return minCreditScore
	}
	if result > maxCreditScore {
		return maxCreditScore
	}
	return int(result)
}

// IndividualRate prices an annual percentage rate in [5, 35] from the score,
// term and amount tiers. Amount zero means "quote without a concrete amount"
// and lands in the small-amount tier; the max-offer search relies on that
// rate being the same for every term it probes, so relative ordering between
// terms is unaffected.
func IndividualRate(creditScore int, termMonths int, amount decimal.Decimal) decimal.Decimal {
	rate := int64(15)

	switch {
	case creditScore >= 750:
		rate -= 6
	case creditScore >= 650:
		rate -= 3
	case creditScore >= 550:
	case creditScore >= 450:
		rate += 5
	default:
		rate += 10
	}

	switch {
	case termMonths <= 12:
		rate -= 2
	case termMonths <= 36:
	default:
		rate += 3
	}

	switch {
	case amount.GreaterThan(amountLargeTier):
		rate--
	case amount.LessThan(amountSmallTier):
		rate += 2
	}

	priced := decimal.NewFromInt(rate)
	if priced.LessThan(minAnnualRate) {
		return minAnnualRate
	}
	if priced.GreaterThan(maxAnnualRate) {
		return maxAnnualRate
	}
	return priced
}
