package sidechannel

import (
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

// Option configures a remote backend.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	timeout time.Duration
}

// WithLogger sets the backend logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTimeout bounds each provider lookup.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
