// Package seqtest provides test support for push-based sequences.
package seqtest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sequencekit/sequence"
)

// Recorder is an observer that records every signal it receives. It is safe
// for concurrent use and can be awaited for the terminal signal.
type Recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	err       error
	completed bool

	done chan struct{}
}

var _ sequence.Observer[int] = (*Recorder[int])(nil)

func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{
		done: make(chan struct{}),
	}
}

func (r *Recorder[T]) OnNext(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values = append(r.values, v)
}

func (r *Recorder[T]) OnComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completed = true
	close(r.done)
}

func (r *Recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
	close(r.done)
}

// Done is closed once a terminal signal has been recorded.
func (r *Recorder[T]) Done() <-chan struct{} {
	return r.done
}

// AwaitTerminal fails the test if no terminal signal arrives within timeout.
func (r *Recorder[T]) AwaitTerminal(t *testing.T, timeout time.Duration) {
	t.Helper()

	select {
	case <-r.done:
	case <-time.After(timeout):
		require.FailNow(t, "no terminal signal received", "waited %v", timeout)
	}
}

// Values returns a copy of the recorded values.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	vs := make([]T, len(r.values))
	copy(vs, r.values)
	return vs
}

func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.completed
}
