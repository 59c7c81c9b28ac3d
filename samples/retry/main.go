package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sequencekit/sequence"
)

func main() {
	ctx := context.Background()

	attempts := 0
	factory := func(ctx context.Context, attempt int) sequence.Sequence[string] {
		attempts++

		// Fail the first two attempts, then deliver events.
		if attempt < 2 {
			return sequence.Fail[string](errors.New("connection reset"))
		}

		return sequence.FromValues("tweet-1", "tweet-2", "tweet-3")
	}

	seq := sequence.WithRetry(
		sequence.Schedule{time.Second, time.Second, 2 * time.Second},
		factory,
		sequence.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			log.Println("retrying attempt", attempt, "after", delay, "because:", err)
		}),
	)

	sub := seq.Subscribe(ctx, sequence.NewObserver(
		func(v string) { fmt.Println("received:", v) },
		func() { fmt.Println("completed") },
		func(err error) { fmt.Println("failed:", err) },
	))

	<-sub.Done()

	log.Println("factory invoked", attempts, "times")
}
