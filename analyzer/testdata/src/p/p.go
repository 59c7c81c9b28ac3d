package p

import (
	"context"
	"time"

	"sequence"
)

func producer(ctx context.Context, emit sequence.Emitter[int]) error {
	time.Sleep(time.Second) // want "time.Sleep ignores cancellation, select on the context instead"

	go func() { // want "producers must emit from a single goroutine, do not start goroutines in a producer"
		emit.Next(1)
	}()

	return nil
}

func producerOk(ctx context.Context, emit sequence.Emitter[int]) error {
	for i := 0; i < 3; i++ {
		if !emit.Next(i) {
			return ctx.Err()
		}
	}

	return nil
}

func notAProducer(ctx context.Context) error {
	time.Sleep(time.Second)

	go func() {}()

	return nil
}
