// Package sequence provides push-based asynchronous sequences and a
// retrying combinator over them.
//
// A Sequence produces zero or more values followed by exactly one terminal
// signal, completion or failure. WithRetry wraps a factory of sequences so
// that failed attempts are retried after the delays of a Schedule:
//
//	seq := sequence.WithRetry(
//		sequence.Schedule{time.Second, time.Second, 2 * time.Second},
//		func(ctx context.Context, attempt int) sequence.Sequence[int] {
//			return fetchEvents(ctx)
//		},
//	)
//
//	sub := seq.Subscribe(ctx, sequence.NewObserver(
//		func(v int) { fmt.Println(v) },
//		func() { fmt.Println("done") },
//		func(err error) { fmt.Println("failed:", err) },
//	))
//	defer sub.Cancel()
//
// Completion is final, only failures are retried. Once the schedule is
// exhausted the reason of the last attempt is surfaced downstream.
package sequence
