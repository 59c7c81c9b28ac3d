package sequence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sequencekit/sequence"
	"github.com/sequencekit/sequence/seqtest"
)

func Test_FromValues(t *testing.T) {
	rec := seqtest.NewRecorder[string]()

	sub := sequence.FromValues("a", "b", "c").Subscribe(context.Background(), rec)
	rec.AwaitTerminal(t, 5*time.Second)
	<-sub.Done()

	require.Equal(t, []string{"a", "b", "c"}, rec.Values())
	require.True(t, rec.Completed())
	require.NoError(t, rec.Err())
}

func Test_FromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	close(ch)

	rec := seqtest.NewRecorder[int]()
	sub := sequence.FromChannel(ch).Subscribe(context.Background(), rec)
	rec.AwaitTerminal(t, 5*time.Second)
	<-sub.Done()

	require.Equal(t, []int{1, 2}, rec.Values())
	require.True(t, rec.Completed())
}

func Test_FromChannel_Cancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := make(chan int)

	rec := seqtest.NewRecorder[int]()
	sub := sequence.FromChannel(ch).Subscribe(context.Background(), rec)

	sub.Cancel()
	<-sub.Done()

	require.Empty(t, rec.Values())
	require.False(t, rec.Completed())
	require.NoError(t, rec.Err())
}

func Test_Fail(t *testing.T) {
	rec := seqtest.NewRecorder[int]()

	sub := sequence.Fail[int](errors.New("boom")).Subscribe(context.Background(), rec)
	rec.AwaitTerminal(t, 5*time.Second)
	<-sub.Done()

	require.EqualError(t, rec.Err(), "boom")
	require.Empty(t, rec.Values())
}

func Test_New_PanicBecomesFailure(t *testing.T) {
	rec := seqtest.NewRecorder[int]()

	seq := sequence.New(func(ctx context.Context, emit sequence.Emitter[int]) error {
		emit.Next(1)
		panic("producer exploded")
	})

	sub := seq.Subscribe(context.Background(), rec)
	rec.AwaitTerminal(t, 5*time.Second)
	<-sub.Done()

	require.Equal(t, []int{1}, rec.Values())

	var pe *sequence.PanicError
	require.ErrorAs(t, rec.Err(), &pe)
	require.Contains(t, pe.Error(), "producer exploded")
	require.NotEmpty(t, pe.Stacktrace())
}

func Test_New_EmitterStopsAfterCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	stopped := make(chan bool, 1)

	seq := sequence.New(func(ctx context.Context, emit sequence.Emitter[int]) error {
		close(started)
		<-ctx.Done()
		stopped <- emit.Next(42)
		return ctx.Err()
	})

	rec := seqtest.NewRecorder[int]()
	sub := seq.Subscribe(context.Background(), rec)

	<-started
	sub.Cancel()
	<-sub.Done()

	require.False(t, <-stopped)
	require.Empty(t, rec.Values())
	require.False(t, rec.Completed())
	require.NoError(t, rec.Err())
}

func Test_New_EachSubscriptionRunsTheProducer(t *testing.T) {
	runs := make(chan struct{}, 2)

	seq := sequence.New(func(ctx context.Context, emit sequence.Emitter[int]) error {
		runs <- struct{}{}
		return nil
	})

	for i := 0; i < 2; i++ {
		rec := seqtest.NewRecorder[int]()
		sub := seq.Subscribe(context.Background(), rec)
		rec.AwaitTerminal(t, 5*time.Second)
		<-sub.Done()
	}

	require.Len(t, runs, 2)
}
