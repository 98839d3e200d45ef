package http

import (
	"net/http"

	"equiprent-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the order lifecycle endpoints. User-facing routes sit
// behind bearer-token auth; the payment webhook uses the shared secret.
func NewRouter(handler *OrderHandler, validator security.TokenValidator, webhookSecret string) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/v1/orders").Subrouter()
	api.Use(AuthMiddleware(validator))
	api.HandleFunc("", handler.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("", handler.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/{id}", handler.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/{id}/status", handler.UpdateStatus).Methods(http.MethodPatch)

	internal := r.PathPrefix("/v1/internal").Subrouter()
	internal.Use(WebhookAuthMiddleware(webhookSecret))
	internal.HandleFunc("/payments/completed", handler.PaymentCompleted).Methods(http.MethodPost)

	return r
}
