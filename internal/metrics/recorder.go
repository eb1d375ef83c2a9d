// Package metrics records content pipeline activity. Components hold a
// Recorder and default to NoopRecorder, so nothing needs a nil check; the
// Prometheus implementation is swapped in by the CLI when metrics are on.
package metrics

import "time"

// Result labels for post loads.
const (
	ResultOK        = "ok"
	ResultNotFound  = "not_found"
	ResultMalformed = "malformed"
	ResultIO        = "io"
)

// Recorder receives content pipeline observations.
type Recorder interface {
	ObservePostLoad(result string, d time.Duration)
	SetCollectionSize(n int)
	ObserveBuild(d time.Duration, success bool)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObservePostLoad(string, time.Duration) {}
func (NoopRecorder) SetCollectionSize(int)                 {}
func (NoopRecorder) ObserveBuild(time.Duration, bool)      {}
