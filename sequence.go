package sequence

import "context"

// Sequence is a push-based source of values. Subscribing yields zero or more
// values followed by exactly one terminal signal: completion or failure.
// Every call to Subscribe starts an independent execution of the sequence.
type Sequence[T any] interface {
	Subscribe(ctx context.Context, o Observer[T]) Subscription
}

// Observer receives the signals of one sequence execution. After OnComplete
// or OnError no further calls are made.
type Observer[T any] interface {
	OnNext(v T)
	OnComplete()
	OnError(err error)
}

// Subscription is the handle for one sequence execution.
type Subscription interface {
	// Cancel stops signal delivery immediately and releases the resources
	// held by the execution. No values or terminal signals are delivered
	// after Cancel returns.
	Cancel()

	// Done is closed once the execution has stopped, whether by terminal
	// signal or by cancellation.
	Done() <-chan struct{}
}

// Factory produces a fresh sequence for each attempt. It must be safe to
// invoke repeatedly. attempt is the zero-based attempt index and is
// informational only, implementations must not depend on it for correctness.
type Factory[T any] func(ctx context.Context, attempt int) Sequence[T]

type funcObserver[T any] struct {
	onNext     func(v T)
	onComplete func()
	onError    func(err error)
}

// NewObserver adapts a set of functions into an Observer. Any of the
// functions may be nil.
func NewObserver[T any](onNext func(v T), onComplete func(), onError func(err error)) Observer[T] {
	return &funcObserver[T]{
		onNext:     onNext,
		onComplete: onComplete,
		onError:    onError,
	}
}

func (fo *funcObserver[T]) OnNext(v T) {
	if fo.onNext != nil {
		fo.onNext(v)
	}
}

func (fo *funcObserver[T]) OnComplete() {
	if fo.onComplete != nil {
		fo.onComplete()
	}
}

func (fo *funcObserver[T]) OnError(err error) {
	if fo.onError != nil {
		fo.onError(err)
	}
}
