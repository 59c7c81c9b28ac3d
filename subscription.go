package sequence

import (
	"context"
	"sync"
)

// gate serializes downstream delivery for one execution. It enforces the
// sequence contract: values in order, at most one terminal signal, and
// nothing at all once the execution is canceled.
type gate[T any] struct {
	mu     sync.Mutex
	o      Observer[T]
	closed bool
}

func newGate[T any](o Observer[T]) *gate[T] {
	return &gate[T]{o: o}
}

// next forwards a value downstream. It reports false once the gate is
// closed, telling the producer to stop emitting.
func (g *gate[T]) next(v T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}

	g.o.OnNext(v)
	return true
}

func (g *gate[T]) complete() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	g.closed = true
	g.o.OnComplete()
}

func (g *gate[T]) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	g.closed = true
	g.o.OnError(err)
}

// close suppresses all further delivery without emitting a terminal signal.
// Used for cancellation.
func (g *gate[T]) close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	cancelOnce sync.Once
	onCancel   func()
}

func newSubscription(cancel context.CancelFunc, onCancel func()) *subscription {
	return &subscription{
		cancel:   cancel,
		done:     make(chan struct{}),
		onCancel: onCancel,
	}
}

func (s *subscription) Cancel() {
	s.cancelOnce.Do(func() {
		// Close the delivery gate before releasing the execution so that a
		// signal racing with cancellation is never forwarded.
		if s.onCancel != nil {
			s.onCancel()
		}

		s.cancel()
	})
}

func (s *subscription) Done() <-chan struct{} {
	return s.done
}

// finish marks the execution as stopped. Called exactly once by the
// execution's driving goroutine.
func (s *subscription) finish() {
	close(s.done)
}

var _ Subscription = (*subscription)(nil)
