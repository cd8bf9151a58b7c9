// Copyright 2026 NetApp, Inc. All Rights Reserved.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netapp/svm-cutover/config"
)

const (
	ResultExecuted  = "executed"
	ResultSimulated = "simulated"
	ResultFailed    = "failed"
	ResultSkipped   = "skipped"
)

// Recorder holds the metrics of one run in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	buildInfo            *prometheus.GaugeVec
	operationsTotal      *prometheus.CounterVec
	phaseDurationSeconds *prometheus.GaugeVec
	pollsTotal           *prometheus.CounterVec
	runSummary           *prometheus.GaugeVec
	runSuccess           prometheus.Gauge
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	r := &Recorder{
		registry: registry,
		buildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: config.ToolName,
				Name:      "build_info",
				Help:      "Cutover tool build and release information",
			},
			[]string{"version", "build_type"},
		),
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.ToolName,
				Name:      "operations_total",
				Help:      "The total number of mutating operations by phase and result",
			},
			[]string{"phase", "result"},
		),
		phaseDurationSeconds: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: config.ToolName,
				Name:      "phase_duration_seconds",
				Help:      "The time spent in each phase of the run",
			},
			[]string{"phase", "success"},
		),
		pollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.ToolName,
				Name:      "polls_total",
				Help:      "The total number of replication status polls by outcome",
			},
			[]string{"outcome"},
		),
		runSummary: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: config.ToolName,
				Name:      "run_resources",
				Help:      "The resources handled by the run",
			},
			[]string{"resource"},
		),
		runSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: config.ToolName,
				Name:      "run_success",
				Help:      "1 if the run completed without errors",
			},
		),
	}

	r.buildInfo.WithLabelValues(config.Version(), config.BuildType).Set(1)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveOperation(phase, result string) {
	r.operationsTotal.WithLabelValues(phase, result).Inc()
}

func (r *Recorder) ObservePhase(phase string, duration time.Duration, success bool) {
	label := "true"
	if !success {
		label = "false"
	}
	r.phaseDurationSeconds.WithLabelValues(phase, label).Set(duration.Seconds())
}

func (r *Recorder) ObservePoll(outcome string) {
	r.pollsTotal.WithLabelValues(outcome).Inc()
}

func (r *Recorder) SetResources(resource string, count int) {
	r.runSummary.WithLabelValues(resource).Set(float64(count))
}

func (r *Recorder) SetSuccess(success bool) {
	if success {
		r.runSuccess.Set(1)
	} else {
		r.runSuccess.Set(0)
	}
}

// WriteTextfile writes the registry in the text exposition format for the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
