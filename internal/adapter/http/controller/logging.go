package controller

import (
	"net/http"
	"time"

	"github.com/inekruz/MoneyNote/internal/adapter/http/middleware"
	"github.com/inekruz/MoneyNote/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", requestFields(r, logger.Fields{
		"payload": logger.SanitizePayload(payload),
	}))
}

func logResponse(r *http.Request, status int, start time.Time) {
	logger.Info("http response", requestFields(r, logger.Fields{
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
	}))
}

func logError(r *http.Request, err error, extra logger.Fields) {
	logger.Error("http handler error", err, requestFields(r, extra))
}

func requestFields(r *http.Request, extra logger.Fields) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if id, ok := middleware.RequestIDFromContext(r.Context()); ok {
		fields["requestId"] = id
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
