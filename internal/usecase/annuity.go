package usecase

import (
	"math"

	"github.com/shopspring/decimal"
)

// The amortizing-loan formulas below run their transcendental step in
// float64; inputs and outputs stay decimal. Both assume annualRate > 0,
// which every caller guarantees by passing a pricer-derived rate of 5 or
// more.

// AnnuityPayment returns the fixed monthly payment fully amortizing
// principal over termMonths at the given annual percentage rate, rounded to
// the nearest integer currency unit.
func AnnuityPayment(principal decimal.Decimal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	p, _ := principal.Float64()
	rate, _ := annualRate.Float64()

	monthlyRate := rate / 100 / 12
	pow := math.Pow(1+monthlyRate, float64(termMonths))
	payment := p * monthlyRate * pow / (pow - 1)

	return decimal.NewFromFloat(math.Round(payment))
}

// MaxPrincipal is the algebraic inverse of AnnuityPayment: the largest
// principal whose annuity payment at the given rate and term does not exceed
// maxMonthlyPayment.
func MaxPrincipal(maxMonthlyPayment decimal.Decimal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	payment, _ := maxMonthlyPayment.Float64()
	rate, _ := annualRate.Float64()

	monthlyRate := rate / 100 / 12
	pow := math.Pow(1+monthlyRate, float64(termMonths))
	principal := payment * (pow - 1) / (monthlyRate * pow)

	return decimal.NewFromFloat(principal)
}
