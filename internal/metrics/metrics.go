package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/naemfares/weathermail/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Notifier metrics

	NotifyCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "weathermail",
		Name:      "notify_cycle_duration_seconds",
		Help:      "Time taken for one notifier cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	UsersClaimedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "weathermail",
		Name:      "users_claimed_total",
		Help:      "Total users claimed for notification.",
	})

	EmailsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "weathermail",
		Name:      "emails_sent_total",
		Help:      "Total forecast emails delivered.",
	})

	EmailsFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weathermail",
		Name:      "emails_failed_total",
		Help:      "Total notification failures, by stage.",
	}, []string{"stage"}) // forecast | delivery

	ForecastFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "weathermail",
		Name:      "forecast_fetch_duration_seconds",
		Help:      "Duration of weather provider lookups.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})

	SubscribedUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "weathermail",
		Name:      "subscribed_users",
		Help:      "Number of currently subscribed users.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weathermail",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weathermail",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		NotifyCycleDuration,
		UsersClaimedTotal,
		EmailsSentTotal,
		EmailsFailedTotal,
		ForecastFetchDuration,
		SubscribedUsers,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus liveness and readiness probes.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
