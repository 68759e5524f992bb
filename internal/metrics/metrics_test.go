package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/muhammadolammi/pivot/internal/plan"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNew(reg)

	m.ObserveRequest("/api/decision-breaker", 200)
	m.ObserveRequest("/api/decision-breaker", 400)
	m.ObserveRequest("/api/decision-breaker", 201)
	m.ObserveParse(plan.DecisionBreaker, true)
	m.ObserveParse(plan.ResumeAnalysisProse, false)
	m.ObserveProviderCall(plan.InterviewPrep, 2*time.Second, nil)
	m.ObserveProviderCall(plan.InterviewPrep, time.Second, errors.New("quota"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/decision-breaker", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/decision-breaker", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.parseResults.WithLabelValues("decision_breaker", "structured")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.parseResults.WithLabelValues("resume_analysis_prose", "fallback")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.providerDuration))
}

func TestMustNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNew(reg)
	assert.Panics(t, func() { MustNew(reg) })
}
