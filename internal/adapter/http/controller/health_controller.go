package controller

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

type HealthController struct {
	db *sql.DB
}

func NewHealthController(db *sql.DB) *HealthController {
	return &HealthController{db: db}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (c *HealthController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", c.liveness)
	mux.HandleFunc("/readyz", c.readiness)
}

func (c *HealthController) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "UP",
		Service:   "credit-engine",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (c *HealthController) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"postgres": "UP"}
	status := http.StatusOK
	overall := "UP"

	if err := c.db.PingContext(ctx); err != nil {
		checks["postgres"] = "DOWN: " + err.Error()
		status = http.StatusServiceUnavailable
		overall = "DOWN"
		logError(r, err, nil)
	}

	writeJSON(w, status, healthResponse{
		Status:    overall,
		Service:   "credit-engine",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
