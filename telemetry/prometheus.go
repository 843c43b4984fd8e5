// Package telemetry exports search progress as Prometheus metrics.
package telemetry

import (
	"math"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
)

const namespace = "featsel"

// PrometheusObserver implements selection.Observer on top of a Prometheus
// registry.
type PrometheusObserver struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	steps       *prometheus.CounterVec
	lastScore   *prometheus.GaugeVec
}

var _ selection.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver registers the featsel collectors with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		return nil, errors.NewInvalidArgumentError("telemetry.NewPrometheusObserver", "reg", errors.InvalidType, "registerer must not be nil")
	}

	o := &PrometheusObserver{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorer_evaluations_total",
			Help:      "Number of subset evaluations, split by whether the score cache answered.",
		}, []string{"engine", "cached"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scorer_duration_seconds",
			Help:      "Wall time of scorer calls that missed the cache.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"engine"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_steps_total",
			Help:      "Number of search trace entries.",
		}, []string{"engine", "accepted"}),
		lastScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_last_score",
			Help:      "Score of the most recent scored trace entry.",
		}, []string{"engine"}),
	}

	for _, c := range []prometheus.Collector{o.evaluations, o.duration, o.steps, o.lastScore} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register featsel collector")
		}
	}
	return o, nil
}

// ObserveEvaluation implements selection.Observer.
func (o *PrometheusObserver) ObserveEvaluation(engine string, elapsed time.Duration, cached bool) {
	o.evaluations.WithLabelValues(engine, strconv.FormatBool(cached)).Inc()
	if !cached {
		o.duration.WithLabelValues(engine).Observe(elapsed.Seconds())
	}
}

// ObserveStep implements selection.Observer. NaN scores (elimination steps)
// leave the gauge untouched.
func (o *PrometheusObserver) ObserveStep(engine string, step selection.Step) {
	o.steps.WithLabelValues(engine, strconv.FormatBool(step.Accepted)).Inc()
	if !math.IsNaN(step.Score) {
		o.lastScore.WithLabelValues(engine).Set(step.Score)
	}
}

// WriteTextfile writes every metric in g to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
