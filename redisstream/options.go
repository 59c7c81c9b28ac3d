package redisstream

import (
	"log/slog"
	"time"

	im "github.com/sequencekit/sequence/internal/metrics"
	"github.com/sequencekit/sequence/metrics"
)

type Options struct {
	Logger *slog.Logger

	Metrics metrics.Client

	// BlockTimeout bounds how long a single XREAD blocks waiting for new
	// entries before polling again.
	BlockTimeout time.Duration

	// BatchSize is the maximum number of entries fetched per read.
	BatchSize int64

	// StartID is the stream ID the first attempt starts reading after.
	// Later attempts resume after the last delivered entry instead.
	StartID string

	// DedupWindow is how long delivered entry IDs are remembered to
	// suppress duplicate delivery across re-subscriptions. Zero disables
	// deduplication.
	DedupWindow time.Duration

	// DedupCapacity bounds the number of remembered entry IDs.
	DedupCapacity uint64
}

var DefaultOptions Options = Options{
	Logger:        slog.Default(),
	Metrics:       im.NewNoopMetricsClient(),
	BlockTimeout:  5 * time.Second,
	BatchSize:     100,
	StartID:       "0",
	DedupWindow:   time.Minute,
	DedupCapacity: 10_000,
}

type Option func(*Options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMetrics(client metrics.Client) Option {
	return func(o *Options) {
		o.Metrics = client
	}
}

func WithBlockTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.BlockTimeout = timeout
	}
}

func WithBatchSize(size int64) Option {
	return func(o *Options) {
		o.BatchSize = size
	}
}

// WithStartID sets the stream ID reading starts after. Use "0" for the full
// stream history and "$" for entries added after subscribing.
func WithStartID(id string) Option {
	return func(o *Options) {
		o.StartID = id
	}
}

func WithDedupWindow(window time.Duration) Option {
	return func(o *Options) {
		o.DedupWindow = window
	}
}
