package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// ResultFor maps an outcome to its label. canceled wins over err.
func ResultFor(err error, canceled bool) ResultLabel {
	switch {
	case canceled:
		return ResultCanceled
	case err != nil:
		return ResultFailed
	default:
		return ResultSuccess
	}
}

// Recorder defines observability hooks for commands and build steps.
type Recorder interface {
	ObserveCommandDuration(command string, d time.Duration)
	IncCommandOutcome(command string, result ResultLabel)
	ObserveStepDuration(step string, d time.Duration)
	IncStepResult(step string, result ResultLabel)
	IncRebuilds(result ResultLabel)
	IncInterrupts()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCommandDuration(string, time.Duration) {}
func (NoopRecorder) IncCommandOutcome(string, ResultLabel)        {}
func (NoopRecorder) ObserveStepDuration(string, time.Duration)    {}
func (NoopRecorder) IncStepResult(string, ResultLabel)            {}
func (NoopRecorder) IncRebuilds(ResultLabel)                      {}
func (NoopRecorder) IncInterrupts()                               {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
