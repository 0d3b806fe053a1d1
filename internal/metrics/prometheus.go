package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	requests       *prom.HistogramVec
	uiEvents       *prom.CounterVec
	sessions       prom.Gauge
	contact        *prom.CounterVec
	contentReloads *prom.CounterVec
	jobRuns        *prom.CounterVec
}

// NewPrometheusRecorder registers the site collectors, plus the Go and process
// collectors, on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		requests: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"}),
		uiEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "ui_events_total",
			Help:      "Interaction events posted by pages",
		}, []string{"event"}),
		sessions: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live visitor sessions",
		}),
		contact: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by result",
		}, []string{"result"}),
		contentReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Content reloads by result",
		}, []string{"result"}),
		jobRuns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Background job runs by job and result",
		}, []string{"job", "result"}),
	}
	reg.MustRegister(
		pr.requests, pr.uiEvents, pr.sessions, pr.contact, pr.contentReloads, pr.jobRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return pr
}

func result(success bool) string {
	if success {
		return string(ResultSuccess)
	}
	return string(ResultFailed)
}

func (p *PrometheusRecorder) ObserveRequest(route string, status int, d time.Duration) {
	p.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncUIEvent(event string) {
	p.uiEvents.WithLabelValues(event).Inc()
}

func (p *PrometheusRecorder) SetSessions(n int) {
	p.sessions.Set(float64(n))
}

func (p *PrometheusRecorder) IncContact(r ResultLabel) {
	p.contact.WithLabelValues(string(r)).Inc()
}

func (p *PrometheusRecorder) IncContentReload(success bool) {
	p.contentReloads.WithLabelValues(result(success)).Inc()
}

func (p *PrometheusRecorder) IncJobRun(job string, success bool) {
	p.jobRuns.WithLabelValues(job, result(success)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
