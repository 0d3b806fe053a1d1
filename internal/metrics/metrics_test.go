package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveRequest("/faq", 200, 15*time.Millisecond)
	pr.IncUIEvent("theme_toggle")
	pr.IncUIEvent("theme_toggle")
	pr.SetSessions(3)
	pr.IncContact(ResultInvalid)
	pr.IncContentReload(true)
	pr.IncJobRun("visitor_retention", false)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["portfolio_ui_events_total"])
	assert.Equal(t, 3.0, values["portfolio_sessions"])
	assert.Equal(t, 1.0, values["portfolio_job_runs_total"])
	assert.Equal(t, 1.0, values["portfolio_content_reloads_total"])
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncContact(ResultSuccess)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `portfolio_contact_submissions_total{result="success"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRequest("/", 200, time.Second)
	r.SetSessions(1)
}
