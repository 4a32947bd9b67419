package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
)

const namespace = "cargo_leptos"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	registry        *prom.Registry
	commandDuration *prom.HistogramVec
	commandOutcome  *prom.CounterVec
	stepDuration    *prom.HistogramVec
	stepResults     *prom.CounterVec
	rebuilds        *prom.CounterVec
	interrupts      prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.commandDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of a dispatched command",
			Buckets:   prom.DefBuckets,
		}, []string{"command"})
		pr.commandOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "command_outcomes_total",
			Help:      "Command outcomes by final status",
		}, []string{"command", "result"})
		pr.stepDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of individual build steps",
			Buckets:   prom.DefBuckets,
		}, []string{"step"})
		pr.stepResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "step_results_total",
			Help:      "Build step result counts by outcome",
		}, []string{"step", "result"})
		pr.rebuilds = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_rebuilds_total",
			Help:      "Rebuilds triggered by file changes",
		}, []string{"result"})
		pr.interrupts = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "interrupts_total",
			Help:      "Interrupt signals received",
		})
		reg.MustRegister(pr.commandDuration, pr.commandOutcome, pr.stepDuration, pr.stepResults, pr.rebuilds, pr.interrupts)
	})
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveCommandDuration(command string, d time.Duration) {
	if p == nil || p.commandDuration == nil {
		return
	}
	p.commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCommandOutcome(command string, result ResultLabel) {
	if p == nil || p.commandOutcome == nil {
		return
	}
	p.commandOutcome.WithLabelValues(command, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveStepDuration(step string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepResult(step string, result ResultLabel) {
	if p == nil || p.stepResults == nil {
		return
	}
	p.stepResults.WithLabelValues(step, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRebuilds(result ResultLabel) {
	if p == nil || p.rebuilds == nil {
		return
	}
	p.rebuilds.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncInterrupts() {
	if p == nil || p.interrupts == nil {
		return
	}
	p.interrupts.Inc()
}

// WriteTextfile writes the registry in text exposition format to path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot write metrics file").
			WithContext("path", path).
			Build()
	}
	return nil
}
