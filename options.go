package aiff

import "go.uber.org/zap"

// Option configures a Decoder or Encoder.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used to trace chunk dispatch. Decoders and
// encoders use a no-op logger by default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
