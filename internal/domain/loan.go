package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusApproved           LoanStatus = "approved"
	LoanStatusAlternativeOffered LoanStatus = "alternative_offered"
	LoanStatusRejected           LoanStatus = "rejected"
)

// LoanRecord is one immutable audit row per underwriting decision. It
// snapshots the request, the financial profile and the score at decision
// time and is never mutated afterwards.
type LoanRecord struct {
	ID              int64
	Login           string
	RequestedAmount decimal.Decimal
	ApprovedAmount  decimal.NullDecimal
	TermMonths      int
	AnnualRate      decimal.Decimal
	MonthlyPayment  decimal.Decimal
	TotalPayment    decimal.Decimal
	Status          LoanStatus
	DecisionReason  string
	Income          decimal.Decimal
	Expenses        decimal.Decimal
	CreditScore     int
	DebtToIncome    decimal.Decimal
	AlternativeData string
	ProcessedAt     time.Time
}

type OfferType string

const (
	OfferLessAmount   OfferType = "less_amount"
	OfferLongerTerm   OfferType = "longer_term"
	OfferSpecialOffer OfferType = "special_offer"
)

// LoanOffer is a value object: either the resolution of a request or one of
// the alternatives generated when the base request fails underwriting.
type LoanOffer struct {
	Type            OfferType
	RequestedAmount decimal.Decimal
	ApprovedAmount  decimal.Decimal
	TermMonths      int
	AnnualRate      decimal.Decimal
	MonthlyPayment  decimal.Decimal
	TotalPayment    decimal.Decimal
	Income          decimal.Decimal
	Expenses        decimal.Decimal
	CreditScore     int
	DebtToIncome    decimal.Decimal
}
