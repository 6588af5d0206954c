// Package metrics exports store transitions as Prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/comalice/storex"
)

// Config configures the metrics publisher.
type Config struct {
	// Namespace is the metrics namespace (default: "storex").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: a fresh prometheus.NewRegistry().
	Registry *prometheus.Registry
}

// Option configures the metrics publisher.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "storex",
	}
}

// Publisher counts dispatches per action label and tracks the latest state
// as a gauge. It implements storex.Publisher.
type Publisher[S, A any] struct {
	registry   *prometheus.Registry
	label      func(A) string
	value      func(S) float64
	dispatches *prometheus.CounterVec
	state      prometheus.Gauge
}

// New registers the metrics and returns a Publisher. label names the action
// for the "action" label and value converts a state into the gauge value.
func New[S, A any](label func(A) string, value func(S) float64, opts ...Option) (*Publisher[S, A], error) {
	if label == nil || value == nil {
		return nil, errors.New("metrics: label and value functions are required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "dispatches_total",
		Help:        "Total number of dispatched actions",
		ConstLabels: cfg.ConstLabels,
	}, []string{"action"})
	if err := cfg.Registry.Register(dispatches); err != nil {
		return nil, fmt.Errorf("register dispatches_total: %w", err)
	}

	state := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "state",
		Help:        "Value of the most recent store state",
		ConstLabels: cfg.ConstLabels,
	})
	if err := cfg.Registry.Register(state); err != nil {
		cfg.Registry.Unregister(dispatches)
		return nil, fmt.Errorf("register state: %w", err)
	}

	return &Publisher[S, A]{
		registry:   cfg.Registry,
		label:      label,
		value:      value,
		dispatches: dispatches,
		state:      state,
	}, nil
}

func (p *Publisher[S, A]) Publish(t storex.Transition[S, A]) error {
	p.dispatches.WithLabelValues(p.label(t.Action)).Inc()
	p.state.Set(p.value(t.Next))
	return nil
}

// Dispatches returns the counter for a single action label.
func (p *Publisher[S, A]) Dispatches(action string) prometheus.Counter {
	return p.dispatches.WithLabelValues(action)
}

// State returns the state gauge.
func (p *Publisher[S, A]) State() prometheus.Gauge {
	return p.state
}

// WriteText writes every metric in the registry in the Prometheus text
// exposition format.
func (p *Publisher[S, A]) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
