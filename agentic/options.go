package agentic

import (
	"github.com/smallnest/goalgraph/log"
	"github.com/smallnest/goalgraph/store"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	retry     *RetryConfig
	listeners []Listener
	store     store.ScopeStore
	tracer    trace.Tracer
	logger    log.Logger
	maxSteps  int
}

// Option configures a Workflow.
type Option func(*options)

// WithRetry retries failing agents with exponential backoff.
func WithRetry(config *RetryConfig) Option {
	return func(o *options) {
		o.retry = config
	}
}

// WithListener adds a listener for run events.
func WithListener(l Listener) Option {
	return func(o *options) {
		o.listeners = append(o.listeners, l)
	}
}

// WithStore persists the scope after every step and enables Resume.
func WithStore(s store.ScopeStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithTracer sets the tracer. The global otel tracer provider is used otherwise.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithLogger sets the logger
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxSteps caps the agents invoked by a single run. Zero means no cap.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}
