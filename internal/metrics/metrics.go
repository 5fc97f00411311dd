package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	SettlementsComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlements_computed_total",
		Help: "Charge settlements computed since start",
	})

	SettlementWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_warnings_total",
		Help: "Data-quality warnings attached to settlement results",
	})

	BalanceCalculationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lease_balance_calculations_total",
		Help: "Lease balance calculations since start",
	})
)
