package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/adapter/http/models"
)

func TestCheckCreditRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		term    int
		purpose string
		wantErr bool
	}{
		{"minimum amount passes", 1000, 12, "", false},
		{"below minimum fails", 999, 12, "", true},
		{"above maximum fails", 1_000_000_001, 12, "", true},
		{"unsupported term fails", 100_000, 7, "", true},
		{"known purpose passes", 100_000, 24, "car", false},
		{"purpose is case insensitive", 100_000, 24, "Home", false},
		{"unknown purpose fails", 100_000, 24, "vacation", true},
		{"empty purpose passes", 100_000, 60, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.CheckCreditRequest{
				Amount:     decimal.NewFromInt(tt.amount),
				TermMonths: tt.term,
				Purpose:    tt.purpose,
			}
			err := req.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected valid request, got %v", err)
			}
		})
	}
}

func TestLoanOfferPayloadValidate(t *testing.T) {
	valid := models.LoanOfferPayload{
		ApprovedAmount: decimal.NewFromInt(116_000),
		TermMonths:     12,
		AnnualRate:     decimal.NewFromInt(6),
		MonthlyPayment: decimal.NewFromInt(9984),
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(p *models.LoanOfferPayload)
	}{
		{"zero approved amount", func(p *models.LoanOfferPayload) { p.ApprovedAmount = decimal.Zero }},
		{"zero term", func(p *models.LoanOfferPayload) { p.TermMonths = 0 }},
		{"term beyond ceiling", func(p *models.LoanOfferPayload) { p.TermMonths = 61 }},
		{"rate below floor", func(p *models.LoanOfferPayload) { p.AnnualRate = decimal.NewFromInt(4) }},
		{"rate above ceiling", func(p *models.LoanOfferPayload) { p.AnnualRate = decimal.NewFromInt(36) }},
		{"negative payment", func(p *models.LoanOfferPayload) { p.MonthlyPayment = decimal.NewFromInt(-1) }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid
			tt.mutate(&payload)
			if err := payload.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
