package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/domain"
)

var (
	minLoanAmount = decimal.NewFromInt(1000)
	maxLoanAmount = decimal.NewFromInt(1_000_000_000)

	allowedTerms = map[int]struct{}{
		3: {}, 6: {}, 12: {}, 24: {}, 36: {}, 48: {}, 60: {},
	}

	allowedPurposes = map[string]struct{}{
		"consumer": {}, "car": {}, "home": {}, "education": {}, "business": {}, "other": {},
	}
)

type CheckCreditRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"termMonths"`
	Purpose    string          `json:"purpose,omitempty"`
}

func (r CheckCreditRequest) Validate() error {
	var errs []string

	if r.Amount.LessThan(minLoanAmount) || r.Amount.GreaterThan(maxLoanAmount) {
		errs = append(errs, "amount must be between 1000 and 1000000000")
	}

	if _, ok := allowedTerms[r.TermMonths]; !ok {
		errs = append(errs, "termMonths must be one of 3, 6, 12, 24, 36, 48, 60")
	}

	if purpose := strings.ToLower(strings.TrimSpace(r.Purpose)); purpose != "" {
		if _, ok := allowedPurposes[purpose]; !ok {
			errs = append(errs, "purpose must be one of consumer, car, home, education, business, other")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidLoanParameters, strings.Join(errs, "; "))
	}

	return nil
}

// LoanOfferPayload mirrors the loan offer fields on the wire; the same shape
// is returned as an alternative and echoed back on acceptance.
type LoanOfferPayload struct {
	Type            string          `json:"type,omitempty"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	ApprovedAmount  decimal.Decimal `json:"approvedAmount"`
	TermMonths      int             `json:"termMonths"`
	AnnualRate      decimal.Decimal `json:"annualRate"`
	MonthlyPayment  decimal.Decimal `json:"monthlyPayment"`
	TotalPayment    decimal.Decimal `json:"totalPayment"`
	Income          decimal.Decimal `json:"income"`
	Expenses        decimal.Decimal `json:"expenses"`
	CreditScore     int             `json:"creditScore"`
	DebtToIncome    string          `json:"debtToIncome"`
}

type AcceptAlternativeRequest = LoanOfferPayload

func (r LoanOfferPayload) Validate() error {
	var errs []string

	if !r.ApprovedAmount.IsPositive() {
		errs = append(errs, "approvedAmount must be greater than zero")
	}

	if r.TermMonths <= 0 || r.TermMonths > 60 {
		errs = append(errs, "termMonths must be between 1 and 60")
	}

	if r.AnnualRate.LessThan(decimal.NewFromInt(5)) || r.AnnualRate.GreaterThan(decimal.NewFromInt(35)) {
		errs = append(errs, "annualRate must be between 5 and 35")
	}

	if !r.MonthlyPayment.IsPositive() {
		errs = append(errs, "monthlyPayment must be greater than zero")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidLoanParameters, strings.Join(errs, "; "))
	}

	return nil
}

type DecisionDetails struct {
	RequestedAmount *decimal.Decimal `json:"requestedAmount,omitempty"`
	RequestedTerm   *int             `json:"requestedTerm,omitempty"`
	ApprovedAmount  *decimal.Decimal `json:"approvedAmount,omitempty"`
	AnnualRate      decimal.Decimal  `json:"annualRate"`
	MonthlyPayment  *decimal.Decimal `json:"monthlyPayment,omitempty"`
	TotalPayment    *decimal.Decimal `json:"totalPayment,omitempty"`
	DebtToIncome    string           `json:"debtToIncome,omitempty"`
}

type CreditDecision struct {
	Status  string           `json:"status"`
	Reason  string           `json:"reason"`
	Details *DecisionDetails `json:"details,omitempty"`
}

type CheckCreditResponse struct {
	Decision     CreditDecision     `json:"decision"`
	Alternatives []LoanOfferPayload `json:"alternatives,omitempty"`
}

type MaxOfferResponse struct {
	Amount         decimal.Decimal  `json:"amount"`
	TermMonths     int              `json:"termMonths"`
	AnnualRate     decimal.Decimal  `json:"annualRate"`
	MonthlyPayment decimal.Decimal  `json:"monthlyPayment"`
	TotalPayment   *decimal.Decimal `json:"totalPayment,omitempty"`
	Reason         string           `json:"reason,omitempty"`
}

type AcceptAlternativeResponse struct {
	LoanID  int64  `json:"loanId"`
	Message string `json:"message"`
}

type UserDataResponse struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	CreditScore     int             `json:"creditScore"`
	ExistingDebts   decimal.Decimal `json:"existingDebts"`
}
