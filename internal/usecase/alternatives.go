package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/domain"
)

const specialOfferScoreFloor = 500

var (
	affordabilityShare = decimal.NewFromFloat(0.4)
	specialOfferSlack  = decimal.NewFromFloat(1.1)
	dtiLimit           = decimal.NewFromInt(40)
	hundred            = decimal.NewFromInt(100)
	thousand           = decimal.NewFromInt(1000)
)

// GenerateAlternatives searches a small fixed space of loan variants when
// the base request fails underwriting. The three candidates are evaluated
// independently and returned in fixed order: less_amount, longer_term,
// special_offer.
func GenerateAlternatives(profile domain.FinancialProfile, requestedAmount decimal.Decimal, requestedTerm int, baseRate decimal.Decimal, creditScore int) []domain.LoanOffer {
	offers := make([]domain.LoanOffer, 0, 3)
	ceiling := affordablePayment(profile)

	// Lower amount at the same term and rate.
	if ceiling.IsPositive() {
		affordable := MaxPrincipal(ceiling, baseRate, requestedTerm)
		if affordable.GreaterThanOrEqual(thousand) && affordable.LessThan(requestedAmount) {
			altAmount := decimal.Min(requestedAmount, affordable.Div(thousand).Floor().Mul(thousand))
			altPayment := AnnuityPayment(altAmount, baseRate, requestedTerm)
			if altAmount.IsPositive() && altPayment.LessThanOrEqual(ceiling) {
				offers = append(offers, newOffer(domain.OfferLessAmount, requestedAmount, altAmount, requestedTerm, baseRate, altPayment, profile, creditScore))
			}
		}
	}

	// Longer term at a one-point surcharge; first fitting term wins.
	extendedRate := decimal.Min(baseRate.Add(decimal.NewFromInt(1)), maxAnnualRate)
	for _, extendedTerm := range []int{requestedTerm * 2, 60} {
		if extendedTerm <= requestedTerm || extendedTerm > 60 {
			continue
		}
		extendedPayment := AnnuityPayment(requestedAmount, extendedRate, extendedTerm)
		if extendedPayment.LessThanOrEqual(ceiling) {
			offers = append(offers, newOffer(domain.OfferLongerTerm, requestedAmount, requestedAmount, extendedTerm, extendedRate, extendedPayment, profile, creditScore))
			break
		}
	}

	// Premium rate with a deliberately looser affordability bound.
	if creditScore >= specialOfferScoreFloor {
		specialRate := decimal.Min(baseRate.Add(decimal.NewFromInt(5)), maxAnnualRate)
		specialPayment := AnnuityPayment(requestedAmount, specialRate, requestedTerm)
		if specialPayment.LessThanOrEqual(ceiling.Mul(specialOfferSlack)) {
			offers = append(offers, newOffer(domain.OfferSpecialOffer, requestedAmount, requestedAmount, requestedTerm, specialRate, specialPayment, profile, creditScore))
		}
	}

	return offers
}

func newOffer(offerType domain.OfferType, requestedAmount, approvedAmount decimal.Decimal, termMonths int, annualRate, monthlyPayment decimal.Decimal, profile domain.FinancialProfile, creditScore int) domain.LoanOffer {
	return domain.LoanOffer{
		Type:            offerType,
		RequestedAmount: requestedAmount,
		ApprovedAmount:  approvedAmount,
		TermMonths:      termMonths,
		AnnualRate:      annualRate,
		MonthlyPayment:  monthlyPayment,
		TotalPayment:    monthlyPayment.Mul(decimal.NewFromInt(int64(termMonths))),
		Income:          profile.MonthlyIncome,
		Expenses:        profile.MonthlyExpenses,
		CreditScore:     creditScore,
		DebtToIncome:    debtToIncome(monthlyPayment, profile),
	}
}

// affordablePayment is the ceiling every candidate payment is checked
// against: 40% of monthly income less monthly expenses.
func affordablePayment(profile domain.FinancialProfile) decimal.Decimal {
	return profile.MonthlyIncome.Mul(affordabilityShare).Sub(profile.MonthlyExpenses)
}

// debtToIncome is the committed-payments share of monthly income as a
// percentage, rounded to two places. Zero when income is zero; the
// affordability gate fails in that case anyway.
func debtToIncome(monthlyPayment decimal.Decimal, profile domain.FinancialProfile) decimal.Decimal {
	if !profile.MonthlyIncome.IsPositive() {
		return decimal.Zero
	}
	return monthlyPayment.Add(profile.ExistingDebts).
		Div(profile.MonthlyIncome).
		Mul(hundred).
		Round(2)
}
