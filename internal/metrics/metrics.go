// Package metrics exposes Prometheus counters for form submissions and
// renders.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Config configures the recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "regform").
	Namespace string

	// Registry is the registerer metrics are created on.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Buckets are the histogram buckets for render duration.
	Buckets []float64
}

// Option configures the recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithBuckets sets the render duration buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "regform",
		Registry:  prometheus.DefaultRegisterer,
		Buckets:   prometheus.DefBuckets,
	}
}

// Recorder holds the registration metrics. A nil *Recorder records nothing.
type Recorder struct {
	submissions    *prometheus.CounterVec
	fieldErrors    *prometheus.CounterVec
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

// New registers the metrics. Registering twice on the same registry panics,
// as promauto does.
func New(options ...Option) *Recorder {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	factory := promauto.With(cfg.Registry)

	return &Recorder{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "submissions_total",
			Help:      "Total number of form submissions by policy and outcome",
		}, []string{"policy", "outcome"}),

		fieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "field_errors_total",
			Help:      "Total number of field validation errors reported on submit",
		}, []string{"field"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "renders_total",
			Help:      "Total number of rendered form views",
		}, []string{"renderer"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "render_duration_seconds",
			Help:      "Form render duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"renderer"}),
	}
}

// ObserveSubmit records one submit and the field errors it produced.
func (r *Recorder) ObserveSubmit(policy string, errs validation.ErrorMap) {
	if r == nil {
		return
	}
	if errs.Valid() {
		r.submissions.WithLabelValues(policy, OutcomeAccepted).Inc()
		return
	}
	r.submissions.WithLabelValues(policy, OutcomeRejected).Inc()
	for _, fieldErr := range errs.Errors() {
		r.fieldErrors.WithLabelValues(string(fieldErr.Field)).Inc()
	}
}

// ObserveRender records one rendered view.
func (r *Recorder) ObserveRender(renderer string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.renders.WithLabelValues(renderer).Inc()
	r.renderDuration.WithLabelValues(renderer).Observe(elapsed.Seconds())
}
