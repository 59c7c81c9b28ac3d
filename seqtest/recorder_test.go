package seqtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sequencekit/sequence"
)

func Test_Recorder_Completion(t *testing.T) {
	rec := NewRecorder[int]()

	sub := sequence.FromValues(1, 2).Subscribe(context.Background(), rec)
	rec.AwaitTerminal(t, 5*time.Second)
	<-sub.Done()

	require.Equal(t, []int{1, 2}, rec.Values())
	require.True(t, rec.Completed())
	require.NoError(t, rec.Err())
}

func Test_Recorder_Failure(t *testing.T) {
	rec := NewRecorder[int]()

	sub := sequence.Fail[int](errors.New("boom")).Subscribe(context.Background(), rec)
	rec.AwaitTerminal(t, 5*time.Second)
	<-sub.Done()

	require.EqualError(t, rec.Err(), "boom")
	require.False(t, rec.Completed())
}

func Test_Recorder_ValuesIsACopy(t *testing.T) {
	rec := NewRecorder[int]()
	rec.OnNext(1)

	vs := rec.Values()
	vs[0] = 42

	require.Equal(t, []int{1}, rec.Values())
}
