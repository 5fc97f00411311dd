package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-backend/internal/handlers"
	"rental-backend/internal/middleware"
)

func NewRouter(
	rentHandler *handlers.RentHandler,
	settlementHandler *handlers.SettlementHandler,
	chargeShareHandler *handlers.ChargeShareHandler,
	waterReadingHandler *handlers.WaterReadingHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Attached here rather than around the router so the metrics labels see
	// the matched route template instead of raw paths.
	r.Use(middleware.MetricsMiddleware)

	// Leases - rent schedule and ledger
	leasesAPI := r.PathPrefix("/api/leases").Subrouter()
	leasesAPI.HandleFunc("/{id}/rent", rentHandler.GetApplicableRent).Methods("GET")
	leasesAPI.HandleFunc("/{id}/balance", rentHandler.GetBalance).Methods("GET")
	leasesAPI.HandleFunc("/{id}/payment-history", rentHandler.GetPaymentHistory).Methods("GET")
	leasesAPI.HandleFunc("/{id}/revisions", rentHandler.CreateRevision).Methods("POST")

	// Properties - charge shares and water meter readings
	propertiesAPI := r.PathPrefix("/api/properties").Subrouter()
	propertiesAPI.HandleFunc("/{id}/charge-shares", chargeShareHandler.SetShare).Methods("PUT")
	propertiesAPI.HandleFunc("/{id}/charge-shares", chargeShareHandler.ListShares).Methods("GET")
	propertiesAPI.HandleFunc("/{id}/water-readings", waterReadingHandler.CreateReading).Methods("POST")
	propertiesAPI.HandleFunc("/{id}/water-readings", waterReadingHandler.ListReadings).Methods("GET")

	// Buildings - settlements and building-wide views
	buildingsAPI := r.PathPrefix("/api/buildings").Subrouter()
	buildingsAPI.HandleFunc("/{id}/settlements", settlementHandler.CreateSettlement).Methods("POST")
	buildingsAPI.HandleFunc("/{id}/water-allocation", settlementHandler.GetWaterAllocation).Methods("GET")
	buildingsAPI.HandleFunc("/{id}/charge-shares/summary", chargeShareHandler.GetBuildingSummary).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
