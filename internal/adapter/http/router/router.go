package router

import "net/http"

type CreditRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type HealthRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

func New(
	creditController CreditRouteRegistrar,
	healthController HealthRouteRegistrar,
	metricsHandler http.Handler,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	if creditController != nil {
		creditController.RegisterRoutes(mux, authMiddleware)
	}
	if healthController != nil {
		healthController.RegisterRoutes(mux)
	}
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	return mux
}
