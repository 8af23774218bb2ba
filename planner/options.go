package planner

import "github.com/smallnest/goalgraph/log"

type options struct {
	logger log.Logger
}

// Option configures a SearchGraph or a Planner.
type Option func(*options)

// WithLogger sets the logger. The package-level logger is used otherwise.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.GetDefaultLogger()
	}
	return o
}
