package sequence

import (
	"context"
)

// Emitter pushes values downstream from a producer. It is not safe for
// concurrent use, producers must emit from a single goroutine.
type Emitter[T any] interface {
	// Next delivers a value downstream. It reports false once the
	// subscription has been canceled or terminated, the producer should
	// stop emitting and return.
	Next(v T) bool
}

type gateEmitter[T any] struct {
	ctx context.Context
	g   *gate[T]
}

func (ge *gateEmitter[T]) Next(v T) bool {
	if ge.ctx.Err() != nil {
		return false
	}

	return ge.g.next(v)
}

type producerSequence[T any] struct {
	producer func(ctx context.Context, emit Emitter[T]) error
}

// New creates a sequence backed by a producer function. The producer runs on
// its own goroutine for every subscription. Returning nil completes the
// sequence, returning an error fails it. A panic in the producer is
// recovered and surfaced as a *PanicError failure.
func New[T any](producer func(ctx context.Context, emit Emitter[T]) error) Sequence[T] {
	return &producerSequence[T]{producer: producer}
}

func (ps *producerSequence[T]) Subscribe(ctx context.Context, o Observer[T]) Subscription {
	ctx, cancel := context.WithCancel(ctx)

	g := newGate(o)
	sub := newSubscription(cancel, g.close)

	go func() {
		defer sub.finish()

		err := runProducer(ctx, ps.producer, &gateEmitter[T]{ctx: ctx, g: g})

		// Cancellation suppresses the terminal signal.
		if ctx.Err() != nil {
			g.close()
			return
		}

		if err != nil {
			g.fail(err)
			return
		}

		g.complete()
	}()

	return sub
}

func runProducer[T any](ctx context.Context, producer func(ctx context.Context, emit Emitter[T]) error, emit Emitter[T]) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()

	return producer(ctx, emit)
}

// FromValues creates a sequence that emits the given values and completes.
func FromValues[T any](vs ...T) Sequence[T] {
	return New(func(ctx context.Context, emit Emitter[T]) error {
		for _, v := range vs {
			if !emit.Next(v) {
				return ctx.Err()
			}
		}

		return nil
	})
}

// FromChannel creates a sequence that emits every value received from ch and
// completes when ch is closed.
func FromChannel[T any](ch <-chan T) Sequence[T] {
	return New(func(ctx context.Context, emit Emitter[T]) error {
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					return nil
				}

				if !emit.Next(v) {
					return ctx.Err()
				}

			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
}

// Fail creates a sequence that immediately fails with err.
func Fail[T any](err error) Sequence[T] {
	return New(func(ctx context.Context, emit Emitter[T]) error {
		return err
	})
}
