package log

const (
	NamespaceKey = "sequence"

	// ExecutionIDKey identifies one subscription of a retrying sequence.
	ExecutionIDKey = NamespaceKey + ".execution.id"

	AttemptKey  = NamespaceKey + ".attempt"
	DelayKey    = NamespaceKey + ".delay_ms"
	RetriesKey  = NamespaceKey + ".retries"
	DurationKey = NamespaceKey + ".duration_ms"

	StreamKey = NamespaceKey + ".stream"
	CursorKey = NamespaceKey + ".cursor"
)
