package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/muhammadolammi/pivot/internal/plan"
)

// Metrics exposes Prometheus collectors for HTTP traffic, provider calls and
// parse outcomes.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	parseResults     *prometheus.CounterVec
}

// MustNew constructs Metrics and registers the collectors with reg. A
// registration error panics, like the promauto helpers.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pivot",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		},
		[]string{"route", "status"},
	)
	providerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pivot",
			Name:      "provider_call_duration_seconds",
			Help:      "Latency of text generation calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"task", "status"},
	)
	parseResults := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pivot",
			Name:      "parse_results_total",
			Help:      "Parsed provider replies, by task and whether structure was found.",
		},
		[]string{"task", "outcome"},
	)

	reg.MustRegister(httpRequests, providerDuration, parseResults)
	return &Metrics{
		httpRequests:     httpRequests,
		providerDuration: providerDuration,
		parseResults:     parseResults,
	}
}

func (m *Metrics) ObserveRequest(route string, status int) {
	m.httpRequests.WithLabelValues(route, statusLabel(status)).Inc()
}

func (m *Metrics) ObserveProviderCall(task plan.Task, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.providerDuration.WithLabelValues(string(task), status).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveParse(task plan.Task, structured bool) {
	outcome := "structured"
	if !structured {
		outcome = "fallback"
	}
	m.parseResults.WithLabelValues(string(task), outcome).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
