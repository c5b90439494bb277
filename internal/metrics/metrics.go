package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LookupsTotal tracks availability lookups by final outcome
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecheck_lookups_total",
			Help: "Total number of availability lookups",
		},
		[]string{"provider", "outcome"},
	)

	// AttemptsTotal tracks individual HTTP attempts made by the client
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecheck_attempts_total",
			Help: "Total number of HTTP attempts, including retries",
		},
		[]string{"provider", "result"},
	)

	// RetriesTotal tracks retries after transient server errors
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecheck_retries_total",
			Help: "Total number of retries after server errors",
		},
		[]string{"provider", "status"},
	)

	// LookupLatency tracks end-to-end lookup latency, retries included
	LookupLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namecheck_lookup_latency_seconds",
			Help:    "Availability lookup latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// ServerResponsesTotal tracks responses sent by the availability server
	ServerResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecheck_server_responses_total",
			Help: "Total number of responses sent by the availability server",
		},
		[]string{"route", "code"},
	)

	// ServerFaultsInjected tracks injected 5xx responses
	ServerFaultsInjected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "namecheck_server_faults_injected_total",
			Help: "Total number of injected server errors",
		},
	)

	// RegistryConnectionPoolUsage tracks the database pool usage of the registry
	RegistryConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "namecheck_registry_db_pool_usage_percent",
			Help: "Registry database connection pool usage percentage",
		},
	)
)
