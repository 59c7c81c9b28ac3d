package sequence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Permanent(t *testing.T) {
	require.Nil(t, Permanent(nil))

	cause := errors.New("bad input")
	err := Permanent(cause)

	require.False(t, CanRetry(err))
	require.ErrorIs(t, err, cause)

	// The marker survives wrapping.
	wrapped := fmt.Errorf("reading events: %w", err)
	require.False(t, CanRetry(wrapped))
}

func Test_CanRetry(t *testing.T) {
	require.True(t, CanRetry(errors.New("transient")))
	require.True(t, CanRetry(nil))
}

func Test_permanentReason(t *testing.T) {
	cause := errors.New("bad input")

	require.Equal(t, cause, permanentReason(Permanent(cause)))

	plain := errors.New("transient")
	require.Equal(t, plain, permanentReason(plain))
}
