package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/inekruz/MoneyNote/internal/adapter/http/middleware"
	"github.com/inekruz/MoneyNote/internal/adapter/http/models"
	"github.com/inekruz/MoneyNote/internal/commons"
)

type CreditService interface {
	CheckCredit(ctx context.Context, login string, req models.CheckCreditRequest) (commons.Response[models.CheckCreditResponse], error)
	CalculateMax(ctx context.Context, login string) (commons.Response[models.MaxOfferResponse], error)
	AcceptAlternative(ctx context.Context, login string, req models.AcceptAlternativeRequest) (commons.Response[models.AcceptAlternativeResponse], error)
	UserData(ctx context.Context, login string) (commons.Response[models.UserDataResponse], error)
}

type CreditController struct {
	service CreditService
}

func NewCreditController(service CreditService) *CreditController {
	return &CreditController{service: service}
}

func (c *CreditController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/credit/check":              c.checkCredit,
		"/credit/calculate-max":      c.calculateMax,
		"/credit/accept-alternative": c.acceptAlternative,
		"/credit/user-data":          c.userData,
	}

	for path, handler := range routes {
		var wrapped http.Handler = handler
		if authMiddleware != nil {
			wrapped = authMiddleware(wrapped)
		}
		mux.Handle(path, wrapped)
	}
}

func (c *CreditController) checkCredit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CheckCreditResponse]("method not allowed"))
		return
	}

	login, ok := middleware.LoginFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.CheckCreditResponse]("unauthorized"))
		return
	}

	var req models.CheckCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CheckCreditResponse]("invalid request body", err.Error()))
		return
	}

	logRequest(r, req)

	response, err := c.service.CheckCredit(r.Context(), login, req)
	if err != nil {
		status := http.StatusInternalServerError
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		logError(r, err, nil)
		writeJSON(w, status, response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *CreditController) calculateMax(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.MaxOfferResponse]("method not allowed"))
		return
	}

	login, ok := middleware.LoginFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.MaxOfferResponse]("unauthorized"))
		return
	}

	response, err := c.service.CalculateMax(r.Context(), login)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *CreditController) acceptAlternative(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AcceptAlternativeResponse]("method not allowed"))
		return
	}

	login, ok := middleware.LoginFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.AcceptAlternativeResponse]("unauthorized"))
		return
	}

	var req models.AcceptAlternativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AcceptAlternativeResponse]("invalid request body", err.Error()))
		return
	}

	logRequest(r, req)

	response, err := c.service.AcceptAlternative(r.Context(), login, req)
	if err != nil {
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed", "offer verification failed":
			status = http.StatusBadRequest
		}
		logError(r, err, nil)
		writeJSON(w, status, response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *CreditController) userData(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.UserDataResponse]("method not allowed"))
		return
	}

	login, ok := middleware.LoginFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.UserDataResponse]("unauthorized"))
		return
	}

	response, err := c.service.UserData(r.Context(), login)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, response)
		return
	}

	logResponse(r, http.StatusOK, start)
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
