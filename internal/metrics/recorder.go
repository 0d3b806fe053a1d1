// Package metrics exposes site metrics. Components take a Recorder; NoopRecorder
// is the default so callers never nil-check, and PrometheusRecorder is swapped in
// when metrics are enabled.
package metrics

import "time"

// ResultLabel classifies an outcome for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultInvalid ResultLabel = "invalid"
	ResultFailed  ResultLabel = "failed"
)

// Recorder receives observations from the web layer and background jobs.
type Recorder interface {
	ObserveRequest(route string, status int, d time.Duration)
	IncUIEvent(event string)
	SetSessions(n int)
	IncContact(result ResultLabel)
	IncContentReload(success bool)
	IncJobRun(job string, success bool)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, int, time.Duration) {}
func (NoopRecorder) IncUIEvent(string)                         {}
func (NoopRecorder) SetSessions(int)                           {}
func (NoopRecorder) IncContact(ResultLabel)                    {}
func (NoopRecorder) IncContentReload(bool)                     {}
func (NoopRecorder) IncJobRun(string, bool)                    {}
