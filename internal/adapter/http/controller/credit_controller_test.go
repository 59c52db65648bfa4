package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/inekruz/MoneyNote/internal/adapter/http/controller"
	"github.com/inekruz/MoneyNote/internal/adapter/http/middleware"
	"github.com/inekruz/MoneyNote/internal/adapter/http/models"
	"github.com/inekruz/MoneyNote/internal/commons"
	"github.com/inekruz/MoneyNote/internal/domain"
)

const testSecret = "controller-test-secret"

type creditServiceStub struct {
	checkCreditFn       func(ctx context.Context, login string, req models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error)
	calculateMaxFn      func(ctx context.Context, login string) (commons.Response[models.MaxOfferResponse], error)
	acceptAlternativeFn func(ctx context.Context, login string, req models.AcceptAlternativeRequest) (commons.Response[models.AcceptAlternativeResponse], error)
	userDataFn          func(ctx context.Context, login string) (commons.Response[models.UserDataResponse], error)
}

func (s creditServiceStub) CheckCredit(ctx context.Context, login string, req models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error) {
	if s.checkCreditFn != nil {
		return s.checkCreditFn(ctx, login, req)
	}
	return commons.SuccessResponse("credit request processed", models.CheckCreditResponse{}), nil
}

func (s creditServiceStub) CalculateMax(ctx context.Context, login string) (commons.Response[models.MaxOfferResponse], error) {
	if s.calculateMaxFn != nil {
		return s.calculateMaxFn(ctx, login)
	}
	return commons.SuccessResponse("maximum offer calculated", models.MaxOfferResponse{}), nil
}

func (s creditServiceStub) AcceptAlternative(ctx context.Context, login string, req models.AcceptAlternativeRequest) (commons.Response[models.AcceptAlternativeResponse], error) {
	if s.acceptAlternativeFn != nil {
		return s.acceptAlternativeFn(ctx, login, req)
	}
	return commons.SuccessResponse("loan issued", models.AcceptAlternativeResponse{}), nil
}

func (s creditServiceStub) UserData(ctx context.Context, login string) (commons.Response[models.UserDataResponse], error) {
	if s.userDataFn != nil {
		return s.userDataFn(ctx, login)
	}
	return commons.SuccessResponse("user data fetched successfully", models.UserDataResponse{}), nil
}

func newTestMux(t *testing.T, service controller.CreditService) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	controller.NewCreditController(service).RegisterRoutes(mux, middleware.Auth(testSecret))
	return mux
}

func authedRequest(t *testing.T, method, path string, body io.Reader) *http.Request {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"login": "kex"}).
		SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCheckCreditHandlerHappyPath(t *testing.T) {
	var gotLogin string
	service := creditServiceStub{
		checkCreditFn: func(_ context.Context, login string, req models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error) {
			gotLogin = login
			if !req.Amount.Equal(decimal.NewFromInt(100_000)) {
				t.Fatalf("expected amount 100000, got %s", req.Amount.String())
			}
			return commons.SuccessResponse("credit request processed", models.CheckCreditResponse{
				Decision: models.CreditDecision{Status: string(domain.LoanStatusApproved), Reason: "loan approved"},
			}), nil
		},
	}

	mux := newTestMux(t, service)

	req := authedRequest(t, http.MethodPost, "/credit/check", strings.NewReader(`{"amount": "100000", "termMonths": 12}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotLogin != "kex" {
		t.Fatalf("expected login kex, got %q", gotLogin)
	}

	var resp commons.Response[models.CheckCreditResponse]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.Decision.Status != string(domain.LoanStatusApproved) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCheckCreditHandlerRejectsWrongMethod(t *testing.T) {
	mux := newTestMux(t, creditServiceStub{})

	req := authedRequest(t, http.MethodGet, "/credit/check", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestCheckCreditHandlerRequiresToken(t *testing.T) {
	mux := newTestMux(t, creditServiceStub{
		checkCreditFn: func(context.Context, string, models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error) {
			t.Fatal("service must not be called without a token")
			return commons.Response[models.CheckCreditResponse]{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/credit/check", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCheckCreditHandlerRejectsMalformedBody(t *testing.T) {
	mux := newTestMux(t, creditServiceStub{})

	req := authedRequest(t, http.MethodPost, "/credit/check", strings.NewReader(`{"amount": `))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckCreditHandlerMapsValidationErrorTo400(t *testing.T) {
	mux := newTestMux(t, creditServiceStub{
		checkCreditFn: func(context.Context, string, models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error) {
			return commons.ErrorResponse[models.CheckCreditResponse]("validation failed", "amount must be between 1000 and 1000000000"),
				errors.New("validation failed")
		},
	})

	req := authedRequest(t, http.MethodPost, "/credit/check", strings.NewReader(`{"amount": "500", "termMonths": 12}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAcceptAlternativeHandlerMapsMismatchTo400(t *testing.T) {
	mux := newTestMux(t, creditServiceStub{
		acceptAlternativeFn: func(context.Context, string, models.AcceptAlternativeRequest) (commons.Response[models.AcceptAlternativeResponse], error) {
			return commons.ErrorResponse[models.AcceptAlternativeResponse]("offer verification failed", "monthly payment does not match the offered terms"),
				domain.ErrOfferMismatch
		},
	})

	req := authedRequest(t, http.MethodPost, "/credit/accept-alternative", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserDataHandlerMapsServiceFailureTo500(t *testing.T) {
	mux := newTestMux(t, creditServiceStub{
		userDataFn: func(context.Context, string) (commons.Response[models.UserDataResponse], error) {
			return commons.ErrorResponse[models.UserDataResponse]("failed to get financial profile"), errors.New("db down")
		},
	})

	req := authedRequest(t, http.MethodGet, "/credit/user-data", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
