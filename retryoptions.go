package sequence

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/trace"

	im "github.com/sequencekit/sequence/internal/metrics"
	"github.com/sequencekit/sequence/metrics"
)

type RetryOptions struct {
	Logger *slog.Logger

	Metrics metrics.Client

	TracerProvider trace.TracerProvider

	// Clock is the source of retry delay timers. Tests can pass a mock
	// clock to control time.
	Clock clock.Clock

	// OnRetry is invoked once per scheduled retry with the index of the
	// upcoming attempt, the delay waited before it and the failure that
	// triggered it. It is called after the delay timer has been armed and
	// before it is awaited. Purely observational.
	OnRetry func(attempt int, delay time.Duration, err error)
}

var DefaultRetryOptions RetryOptions = RetryOptions{
	Logger:         slog.Default(),
	Metrics:        im.NewNoopMetricsClient(),
	TracerProvider: trace.NewNoopTracerProvider(),
	Clock:          clock.New(),
}

type RetryOption func(*RetryOptions)

func WithLogger(logger *slog.Logger) RetryOption {
	return func(o *RetryOptions) {
		o.Logger = logger
	}
}

func WithMetrics(client metrics.Client) RetryOption {
	return func(o *RetryOptions) {
		o.Metrics = client
	}
}

func WithTracerProvider(tp trace.TracerProvider) RetryOption {
	return func(o *RetryOptions) {
		o.TracerProvider = tp
	}
}

func WithClock(c clock.Clock) RetryOption {
	return func(o *RetryOptions) {
		o.Clock = c
	}
}

func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) RetryOption {
	return func(o *RetryOptions) {
		o.OnRetry = fn
	}
}
