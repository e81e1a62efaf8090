package modal

import (
	"io"
	"log"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger *log.Logger
	tracer oteltrace.Tracer
}

func defaultOptions() options {
	return options{
		logger: log.New(io.Discard, "", 0),
		tracer: noop.NewTracerProvider().Tracer(""),
	}
}

// WithLogger sets the logger used for operation and subscriber-panic lines.
// A nil logger keeps the default, which discards output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracer records one span per operation. A nil tracer keeps the no-op default.
func WithTracer(t oteltrace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}
