package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/adapter/http/models"
	"github.com/inekruz/MoneyNote/internal/commons"
	"github.com/inekruz/MoneyNote/internal/domain"
	"github.com/inekruz/MoneyNote/internal/logger"
	"github.com/inekruz/MoneyNote/internal/metrics"
)

const approvalScoreFloor = 600

var maxOfferTerms = []int{12, 24, 36, 48, 60}

type ProfileProvider interface {
	GetFinancialProfile(ctx context.Context, login string) (domain.FinancialProfile, error)
}

// CreditService is the underwriting decision engine: it quotes, approves,
// rejects or offers alternatives, persisting exactly one LoanRecord per
// decision.
type CreditService struct {
	profiles  ProfileProvider
	loanRepo  domain.LoanRepository
	publisher domain.PushPublisher
	collector *metrics.Collector
}

func NewCreditService(profiles ProfileProvider, loanRepo domain.LoanRepository, publisher domain.PushPublisher, collector *metrics.Collector) *CreditService {
	return &CreditService{
		profiles:  profiles,
		loanRepo:  loanRepo,
		publisher: publisher,
		collector: collector,
	}
}

// CheckCredit underwrites one loan request. Terminal on the first matching
// branch: approved, alternative_offered, or rejected. The record insert is
// write-then-respond; if it fails the decision is not returned.
func (s *CreditService) CheckCredit(ctx context.Context, login string, req models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error) {
	start := time.Now()
	logger.Info("credit service check request", logger.Fields{
		"login":   login,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("credit service check validation failed", err, logger.Fields{
			"login": login,
		})
		return commons.ErrorResponse[models.CheckCreditResponse]("validation failed", err.Error()), err
	}

	profile, err := s.profiles.GetFinancialProfile(ctx, login)
	if err != nil {
		return commons.ErrorResponse[models.CheckCreditResponse]("failed to get financial profile", "unable to read financial history right now"), err
	}

	creditScore := CreditScore(profile)
	rate := IndividualRate(creditScore, req.TermMonths, req.Amount)
	monthlyPayment := AnnuityPayment(req.Amount, rate, req.TermMonths)
	totalPayment := monthlyPayment.Mul(decimal.NewFromInt(int64(req.TermMonths)))
	dti := debtToIncome(monthlyPayment, profile)
	ceiling := affordablePayment(profile)

	canAfford := monthlyPayment.LessThanOrEqual(ceiling)
	goodCreditScore := creditScore >= approvalScoreFloor
	acceptableDTI := profile.MonthlyIncome.IsPositive() && dti.LessThanOrEqual(dtiLimit)

	record := domain.LoanRecord{
		Login:           login,
		RequestedAmount: req.Amount,
		TermMonths:      req.TermMonths,
		AnnualRate:      rate,
		MonthlyPayment:  monthlyPayment,
		TotalPayment:    totalPayment,
		Income:          profile.MonthlyIncome,
		Expenses:        profile.MonthlyExpenses,
		CreditScore:     creditScore,
		DebtToIncome:    dti,
	}

	if canAfford && goodCreditScore && acceptableDTI {
		record.Status = domain.LoanStatusApproved
		record.ApprovedAmount = decimal.NewNullDecimal(req.Amount)
		record.DecisionReason = "loan approved"

		if _, err := s.loanRepo.Create(ctx, record); err != nil {
			return commons.ErrorResponse[models.CheckCreditResponse]("failed to persist loan decision", "unable to process the request right now"), err
		}

		s.collector.RecordDecision(string(domain.LoanStatusApproved), time.Since(start), creditScore)
		logger.Info("credit service check approved", logger.Fields{
			"login":          login,
			"approvedAmount": req.Amount,
			"annualRate":     rate,
			"creditScore":    creditScore,
		})

		approvedAmount := req.Amount
		payment := monthlyPayment
		total := totalPayment
		return commons.SuccessResponse("credit request processed", models.CheckCreditResponse{
			Decision: models.CreditDecision{
				Status: string(domain.LoanStatusApproved),
				Reason: "loan approved",
				Details: &models.DecisionDetails{
					ApprovedAmount: &approvedAmount,
					AnnualRate:     rate,
					MonthlyPayment: &payment,
					TotalPayment:   &total,
					DebtToIncome:   dti.StringFixed(2),
				},
			},
		}), nil
	}

	offers := GenerateAlternatives(profile, req.Amount, req.TermMonths, rate, creditScore)
	if len(offers) > 0 {
		payloads := make([]models.LoanOfferPayload, 0, len(offers))
		for _, offer := range offers {
			payloads = append(payloads, mapOfferToPayload(offer))
		}

		serialized, err := json.Marshal(payloads)
		if err != nil {
			return commons.ErrorResponse[models.CheckCreditResponse]("failed to persist loan decision", "unable to process the request right now"), fmt.Errorf("serialize alternatives: %w", err)
		}

		record.Status = domain.LoanStatusAlternativeOffered
		record.DecisionReason = "alternative offers available"
		record.AlternativeData = string(serialized)

		if _, err := s.loanRepo.Create(ctx, record); err != nil {
			return commons.ErrorResponse[models.CheckCreditResponse]("failed to persist loan decision", "unable to process the request right now"), err
		}

		s.collector.RecordDecision(string(domain.LoanStatusAlternativeOffered), time.Since(start), creditScore)
		logger.Info("credit service check alternatives offered", logger.Fields{
			"login":        login,
			"alternatives": len(offers),
			"creditScore":  creditScore,
		})

		requestedAmount := req.Amount
		requestedTerm := req.TermMonths
		return commons.SuccessResponse("credit request processed", models.CheckCreditResponse{
			Decision: models.CreditDecision{
				Status: string(domain.LoanStatusAlternativeOffered),
				Reason: "the requested loan was not approved; consider the alternative offers",
				Details: &models.DecisionDetails{
					RequestedAmount: &requestedAmount,
					RequestedTerm:   &requestedTerm,
					AnnualRate:      rate,
					DebtToIncome:    dti.StringFixed(2),
				},
			},
			Alternatives: payloads,
		}), nil
	}

	record.Status = domain.LoanStatusRejected
	record.DecisionReason = "payment exceeds financial capacity"

	if _, err := s.loanRepo.Create(ctx, record); err != nil {
		return commons.ErrorResponse[models.CheckCreditResponse]("failed to persist loan decision", "unable to process the request right now"), err
	}

	s.collector.RecordDecision(string(domain.LoanStatusRejected), time.Since(start), creditScore)
	logger.Info("credit service check rejected", logger.Fields{
		"login":       login,
		"creditScore": creditScore,
		"dti":         dti,
	})

	return commons.SuccessResponse("credit request processed", models.CheckCreditResponse{
		Decision: models.CreditDecision{
			Status: string(domain.LoanStatusRejected),
			Reason: "the payment exceeds your financial capacity",
		},
	}), nil
}

// CalculateMax quotes the largest affordable loan across the standard terms
// without persisting anything. First-found wins when two terms yield an
// equal principal.
func (s *CreditService) CalculateMax(ctx context.Context, login string) (commons.Response[models.MaxOfferResponse], error) {
	logger.Info("credit service calculate max request", logger.Fields{
		"login": login,
	})

	profile, err := s.profiles.GetFinancialProfile(ctx, login)
	if err != nil {
		return commons.ErrorResponse[models.MaxOfferResponse]("failed to get financial profile", "unable to read financial history right now"), err
	}

	creditScore := CreditScore(profile)
	ceiling := affordablePayment(profile)

	if !ceiling.IsPositive() {
		return commons.SuccessResponse("maximum offer calculated", models.MaxOfferResponse{
			Amount:         decimal.Zero,
			TermMonths:     12,
			AnnualRate:     IndividualRate(creditScore, 12, decimal.Zero),
			MonthlyPayment: decimal.Zero,
			Reason:         "insufficient income for a loan",
		}), nil
	}

	var best models.MaxOfferResponse
	maxAmount := decimal.Zero

	for _, term := range maxOfferTerms {
		rate := IndividualRate(creditScore, term, decimal.Zero)
		amount := MaxPrincipal(ceiling, rate, term)

		if amount.GreaterThan(maxAmount) {
			maxAmount = amount
			total := ceiling.Mul(decimal.NewFromInt(int64(term))).Round(2)
			best = models.MaxOfferResponse{
				Amount:         amount.Div(thousand).Floor().Mul(thousand),
				TermMonths:     term,
				AnnualRate:     rate,
				MonthlyPayment: ceiling.Round(2),
				TotalPayment:   &total,
			}
		}
	}

	logger.Info("credit service calculate max success", logger.Fields{
		"login":      login,
		"amount":     best.Amount,
		"termMonths": best.TermMonths,
	})

	return commons.SuccessResponse("maximum offer calculated", best), nil
}

// AcceptAlternative turns a previously generated alternative into an
// approved loan. The echoed payment is re-derived from the offered terms
// before anything is persisted; the loan and its notification row are
// written in one transaction and the push publish stays best-effort.
func (s *CreditService) AcceptAlternative(ctx context.Context, login string, req models.AcceptAlternativeRequest) (commons.Response[models.AcceptAlternativeResponse], error) {
	start := time.Now()
	logger.Info("credit service accept alternative request", logger.Fields{
		"login":   login,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("credit service accept alternative validation failed", err, logger.Fields{
			"login": login,
		})
		return commons.ErrorResponse[models.AcceptAlternativeResponse]("validation failed", err.Error()), err
	}

	expected := AnnuityPayment(req.ApprovedAmount, req.AnnualRate, req.TermMonths)
	if expected.Sub(req.MonthlyPayment).Abs().GreaterThan(decimal.NewFromInt(1)) {
		logger.Error("credit service accept alternative payment mismatch", domain.ErrOfferMismatch, logger.Fields{
			"login":    login,
			"expected": expected,
			"echoed":   req.MonthlyPayment,
		})
		return commons.ErrorResponse[models.AcceptAlternativeResponse]("offer verification failed", "monthly payment does not match the offered terms"), domain.ErrOfferMismatch
	}

	requestedAmount := req.RequestedAmount
	if !requestedAmount.IsPositive() {
		requestedAmount = req.ApprovedAmount
	}

	totalPayment := req.TotalPayment
	if !totalPayment.IsPositive() {
		totalPayment = req.MonthlyPayment.Mul(decimal.NewFromInt(int64(req.TermMonths)))
	}

	dti := decimal.Zero
	if req.DebtToIncome != "" {
		parsed, err := decimal.NewFromString(req.DebtToIncome)
		if err != nil {
			return commons.ErrorResponse[models.AcceptAlternativeResponse]("validation failed", "debtToIncome must be numeric"), err
		}
		dti = parsed
	}

	record := domain.LoanRecord{
		Login:           login,
		RequestedAmount: requestedAmount,
		ApprovedAmount:  decimal.NewNullDecimal(req.ApprovedAmount),
		TermMonths:      req.TermMonths,
		AnnualRate:      req.AnnualRate,
		MonthlyPayment:  req.MonthlyPayment,
		TotalPayment:    totalPayment,
		Status:          domain.LoanStatusApproved,
		DecisionReason:  "alternative offer accepted",
		Income:          req.Income,
		Expenses:        req.Expenses,
		CreditScore:     req.CreditScore,
		DebtToIncome:    dti,
	}

	notification := domain.Notification{
		Login:       login,
		Title:       "Loan approved",
		Description: fmt.Sprintf("Your loan of %s was approved at %s%% for %d months", req.ApprovedAmount, req.AnnualRate, req.TermMonths),
	}

	loanID, err := s.loanRepo.CreateWithNotification(ctx, record, notification)
	if err != nil {
		return commons.ErrorResponse[models.AcceptAlternativeResponse]("failed to persist accepted offer", "unable to process the request right now"), err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, notification); err != nil {
			logger.Error("credit service push publish failed", err, logger.Fields{
				"login":  login,
				"loanId": loanID,
			})
		}
	}

	s.collector.RecordDecision(string(domain.LoanStatusApproved), time.Since(start), req.CreditScore)
	logger.Info("credit service accept alternative success", logger.Fields{
		"login":  login,
		"loanId": loanID,
	})

	return commons.SuccessResponse("loan issued", models.AcceptAlternativeResponse{
		LoanID:  loanID,
		Message: "loan issued successfully",
	}), nil
}

// UserData returns the profile and score snapshot shown on the credit page.
func (s *CreditService) UserData(ctx context.Context, login string) (commons.Response[models.UserDataResponse], error) {
	profile, err := s.profiles.GetFinancialProfile(ctx, login)
	if err != nil {
		return commons.ErrorResponse[models.UserDataResponse]("failed to get financial profile", "unable to read financial history right now"), err
	}

	return commons.SuccessResponse("user data fetched successfully", models.UserDataResponse{
		MonthlyIncome:   profile.MonthlyIncome,
		MonthlyExpenses: profile.MonthlyExpenses,
		CreditScore:     CreditScore(profile),
		ExistingDebts:   profile.ExistingDebts,
	}), nil
}

func mapOfferToPayload(offer domain.LoanOffer) models.LoanOfferPayload {
	return models.LoanOfferPayload{
		Type:            string(offer.Type),
		RequestedAmount: offer.RequestedAmount,
		ApprovedAmount:  offer.ApprovedAmount,
		TermMonths:      offer.TermMonths,
		AnnualRate:      offer.AnnualRate,
		MonthlyPayment:  offer.MonthlyPayment,
		TotalPayment:    offer.TotalPayment,
		Income:          offer.Income,
		Expenses:        offer.Expenses,
		CreditScore:     offer.CreditScore,
		DebtToIncome:    offer.DebtToIncome.StringFixed(2),
	}
}
