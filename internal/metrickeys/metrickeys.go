package metrickeys

const (
	Prefix = "sequence."

	SubscriptionStarted  = Prefix + "subscription.started"
	SubscriptionFinished = Prefix + "subscription.finished"

	AttemptStarted  = Prefix + "attempt.started"
	AttemptFailed   = Prefix + "attempt.failed"
	AttemptDuration = Prefix + "attempt.duration"

	RetryDelay       = Prefix + "retry.delay"
	RetriesExhausted = Prefix + "retry.exhausted"

	StreamEntriesRead       = Prefix + "stream.entries.read"
	StreamDuplicatesSkipped = Prefix + "stream.entries.duplicates_skipped"
)

// Tag names
const (
	// Outcome of a finished subscription: completed, failed or canceled
	Outcome = "outcome"

	Stream = "stream"
)
