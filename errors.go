package sequence

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// PermanentError marks a failure that must not be retried. WithRetry
// surfaces the wrapped reason immediately, regardless of remaining schedule
// entries.
type PermanentError struct {
	Err error
}

func (pe *PermanentError) Error() string {
	return fmt.Sprintf("permanent: %v", pe.Err)
}

func (pe *PermanentError) Unwrap() error {
	return pe.Err
}

// Permanent wraps err to indicate it should not be retried.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &PermanentError{Err: err}
}

// CanRetry returns true if a failure with the given reason may be retried.
func CanRetry(err error) bool {
	var pe *PermanentError
	return !errors.As(err, &pe)
}

// PanicError is the failure surfaced when a producer panics. It carries the
// stack trace of the panicking goroutine.
type PanicError struct {
	value error
	stack string
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("producer panicked: %v", pe.value)
}

func (pe *PanicError) Unwrap() error {
	return pe.value
}

func (pe *PanicError) Stacktrace() string {
	return pe.stack
}

func newPanicError(v any) *PanicError {
	werr := goerrors.Wrap(v, 2)

	return &PanicError{
		value: werr.Err,
		stack: string(werr.Stack()),
	}
}
