package sequence

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Schedule is an ordered, finite list of delays governing retry backoff.
// schedule[i] is the delay waited before attempt i+2, the first attempt is
// always immediate. An empty schedule means no retries. Schedules are never
// mutated by the combinator and can be shared across subscriptions.
type Schedule []time.Duration

// Fixed returns a schedule of retries evenly spaced by delay.
func Fixed(retries int, delay time.Duration) Schedule {
	if retries <= 0 {
		return nil
	}

	s := make(Schedule, retries)
	for i := range s {
		s[i] = delay
	}

	return s
}

// Exponential returns a schedule of retries starting at first and growing by
// coefficient per retry, capped at max. A max of zero means no cap.
func Exponential(retries int, first time.Duration, coefficient float64, max time.Duration) Schedule {
	if retries <= 0 {
		return nil
	}

	s := make(Schedule, retries)
	for i := range s {
		d := time.Duration(float64(first) * math.Pow(coefficient, float64(i)))
		if max > 0 && d > max {
			d = max
		}

		s[i] = d
	}

	return s
}

// FromBackOff drains up to retries delays from a backoff policy into a
// concrete schedule. Draining stops early if the policy returns
// backoff.Stop.
func FromBackOff(b backoff.BackOff, retries int) Schedule {
	var s Schedule

	b.Reset()
	for i := 0; i < retries; i++ {
		d := b.NextBackOff()
		if d == backoff.Stop {
			break
		}

		s = append(s, d)
	}

	return s
}

// Total returns the cumulative delay of the schedule.
func (s Schedule) Total() time.Duration {
	var total time.Duration
	for _, d := range s {
		total += d
	}

	return total
}
