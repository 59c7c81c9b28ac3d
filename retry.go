package sequence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sequencekit/sequence/internal/metrickeys"
	"github.com/sequencekit/sequence/log"
	"github.com/sequencekit/sequence/metrics"
)

// WithRetry wraps factory into a sequence that retries failed attempts
// according to schedule.
//
// Subscribing invokes the factory and forwards every value of the produced
// sequence downstream in order. Completion ends the composed sequence, it is
// never retried. On failure the next schedule entry is waited out, then the
// factory is invoked again and forwarding resumes with the fresh sequence.
// Once the schedule is exhausted the reason of the last attempt is forwarded
// downstream. Failures wrapped with Permanent skip the remaining schedule.
//
// Attempts are strictly sequential, at most one produced sequence is
// subscribed at any instant. Values forwarded before a failure stay
// delivered, a retry restarts the sequence from scratch, not from partial
// progress.
//
// Canceling the subscription or its context unsubscribes the active
// sequence, stops any pending delay timer and prevents further factory
// invocations. Nothing is forwarded after cancellation, even a failure
// racing with it.
//
// Every subscription runs with its own attempt counter, the schedule itself
// is never modified and can be shared.
func WithRetry[T any](schedule Schedule, factory Factory[T], opts ...RetryOption) Sequence[T] {
	options := DefaultRetryOptions
	for _, opt := range opts {
		opt(&options)
	}

	return &retrySequence[T]{
		schedule: schedule,
		factory:  factory,
		options:  options,
	}
}

type retrySequence[T any] struct {
	schedule Schedule
	factory  Factory[T]
	options  RetryOptions
}

func (rs *retrySequence[T]) Subscribe(ctx context.Context, o Observer[T]) Subscription {
	ctx, cancel := context.WithCancel(ctx)

	g := newGate(o)
	sub := newSubscription(cancel, g.close)

	executionID := uuid.NewString()

	r := &retryRun[T]{
		schedule: rs.schedule,
		factory:  rs.factory,
		options:  rs.options,
		gate:     g,
		logger:   rs.options.Logger.With(slog.String(log.ExecutionIDKey, executionID)),
	}

	go r.run(ctx, sub, executionID)

	return sub
}

// retryRun is the state of one execution of a retrying sequence. It is owned
// exclusively by the driving goroutine below and never shared across
// subscriptions.
type retryRun[T any] struct {
	schedule Schedule
	factory  Factory[T]
	options  RetryOptions
	gate     *gate[T]
	logger   *slog.Logger
}

// outcome is the terminal signal of one attempt. A nil err means the
// sequence completed.
type outcome struct {
	err error
}

// relay receives the signals of one attempt. Values pass straight through to
// the downstream gate, the terminal signal is handed to the driving
// goroutine instead.
type relay[T any] struct {
	g        *gate[T]
	terminal chan outcome
}

func newRelay[T any](g *gate[T]) *relay[T] {
	return &relay[T]{
		g:        g,
		terminal: make(chan outcome, 1),
	}
}

func (rl *relay[T]) OnNext(v T) {
	rl.g.next(v)
}

func (rl *relay[T]) OnComplete() {
	rl.settle(outcome{})
}

func (rl *relay[T]) OnError(err error) {
	rl.settle(outcome{err: err})
}

func (rl *relay[T]) settle(o outcome) {
	// The sequence contract guarantees a single terminal signal, drop
	// anything beyond that.
	select {
	case rl.terminal <- o:
	default:
	}
}

func (r *retryRun[T]) run(ctx context.Context, sub *subscription, executionID string) {
	defer sub.finish()

	tracer := r.options.TracerProvider.Tracer("sequence")
	ctx, span := tracer.Start(ctx, "WithRetry", trace.WithAttributes(
		attribute.String(log.ExecutionIDKey, executionID),
		attribute.Int(log.RetriesKey, len(r.schedule)),
	))
	defer span.End()

	mc := r.options.Metrics
	mc.Counter(metrickeys.SubscriptionStarted, metrics.Tags{}, 1)

	// An already canceled context never invokes the factory.
	if ctx.Err() != nil {
		r.gate.close()
		r.finish(mc, "canceled")
		return
	}

	attempt := 0

	for {
		span.AddEvent("attempt", trace.WithAttributes(attribute.Int(log.AttemptKey, attempt)))
		mc.Counter(metrickeys.AttemptStarted, metrics.Tags{}, 1)

		rl := newRelay(r.gate)
		at := metrics.Timer(mc, metrickeys.AttemptDuration, metrics.Tags{})
		upstream := r.factory(ctx, attempt).Subscribe(ctx, rl)

		var out outcome

		select {
		case out = <-rl.terminal:
			at.Stop()
		case <-ctx.Done():
			at.Stop()
			r.gate.close()
			upstream.Cancel()
			r.finish(mc, "canceled")
			return
		}

		if out.err == nil {
			r.gate.complete()
			r.finish(mc, "completed")
			return
		}

		// The attempt failed. The produced sequence is terminal at this
		// point, Cancel only releases its resources.
		upstream.Cancel()
		mc.Counter(metrickeys.AttemptFailed, metrics.Tags{}, 1)

		// Cancellation wins over a failure racing with it: no retry is
		// scheduled and nothing is forwarded.
		if ctx.Err() != nil {
			r.gate.close()
			r.finish(mc, "canceled")
			return
		}

		if !CanRetry(out.err) {
			r.logger.Debug("permanent failure, not retrying",
				slog.Int(log.AttemptKey, attempt), slog.Any("error", out.err))
			r.gate.fail(permanentReason(out.err))
			r.finish(mc, "failed")
			return
		}

		if attempt >= len(r.schedule) {
			r.logger.Debug("retries exhausted",
				slog.Int(log.AttemptKey, attempt), slog.Any("error", out.err))
			mc.Counter(metrickeys.RetriesExhausted, metrics.Tags{}, 1)
			r.gate.fail(out.err)
			r.finish(mc, "failed")
			return
		}

		delay := r.schedule[attempt]
		if delay < 0 {
			delay = 0
		}

		attempt++

		r.logger.Debug("retrying after failure",
			slog.Int(log.AttemptKey, attempt),
			slog.Int64(log.DelayKey, delay.Milliseconds()),
			slog.Any("error", out.err))
		mc.Distribution(metrickeys.RetryDelay, metrics.Tags{}, float64(delay/time.Millisecond))

		if delay > 0 {
			t := r.options.Clock.Timer(delay)
			r.notifyRetry(attempt, delay, out.err)

			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				r.gate.close()
				r.finish(mc, "canceled")
				return
			}
		} else {
			// A zero delay retries on the next scheduling opportunity
			// without arming a timer.
			r.notifyRetry(attempt, 0, out.err)
		}

		if ctx.Err() != nil {
			r.gate.close()
			r.finish(mc, "canceled")
			return
		}
	}
}

func (r *retryRun[T]) notifyRetry(attempt int, delay time.Duration, err error) {
	if r.options.OnRetry != nil {
		r.options.OnRetry(attempt, delay, err)
	}
}

func (r *retryRun[T]) finish(mc metrics.Client, result string) {
	mc.Counter(metrickeys.SubscriptionFinished, metrics.Tags{metrickeys.Outcome: result}, 1)
}

// permanentReason strips the Permanent marker so the surfaced failure has
// the same shape as a plain failing sequence.
func permanentReason(err error) error {
	var pe *PermanentError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}

	return err
}
