// Package redisstream adapts a Redis stream into a sequence factory.
//
// Every attempt produced by the factory reads entries with XREAD, resuming
// after the last entry delivered by a previous attempt. Read errors surface
// as sequence failures, making the factory a natural input for
// sequence.WithRetry. The produced sequences never complete on their own,
// they end by failure or cancellation.
package redisstream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jellydator/ttlcache/v3"
	"github.com/redis/go-redis/v9"

	"github.com/sequencekit/sequence"
	"github.com/sequencekit/sequence/internal/metrickeys"
	"github.com/sequencekit/sequence/log"
	"github.com/sequencekit/sequence/metrics"
)

// Message is one entry read from a Redis stream.
type Message struct {
	ID     string
	Values map[string]interface{}
}

// cursor tracks the last delivered entry across attempts. Attempts are
// strictly sequential, the mutex is for memory visibility between their
// goroutines.
type cursor struct {
	mu     sync.Mutex
	lastID string
}

func (c *cursor) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastID
}

func (c *cursor) advance(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID = id
}

// New returns a factory producing sequences that read the given stream. The
// returned factory is meant for a single composed sequence execution at a
// time, sharing one read cursor across its attempts.
func New(rdb redis.UniversalClient, stream string, opts ...Option) sequence.Factory[Message] {
	options := DefaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.Logger.With(slog.String(log.StreamKey, stream))
	mc := options.Metrics.WithTags(metrics.Tags{metrickeys.Stream: stream})

	c := &cursor{lastID: options.StartID}

	var dedup *ttlcache.Cache[string, struct{}]
	if options.DedupWindow > 0 {
		dedup = ttlcache.New(
			ttlcache.WithTTL[string, struct{}](options.DedupWindow),
			ttlcache.WithCapacity[string, struct{}](options.DedupCapacity),
		)
	}

	return func(ctx context.Context, attempt int) sequence.Sequence[Message] {
		return sequence.New(func(ctx context.Context, emit sequence.Emitter[Message]) error {
			logger.Debug("reading stream", slog.Int(log.AttemptKey, attempt), slog.String(log.CursorKey, c.last()))

			for {
				res, err := rdb.XRead(ctx, &redis.XReadArgs{
					Streams: []string{stream, c.last()},
					Count:   options.BatchSize,
					Block:   options.BlockTimeout,
				}).Result()
				if err != nil {
					// No new entries within the block timeout.
					if err == redis.Nil {
						continue
					}

					if ctx.Err() != nil {
						return ctx.Err()
					}

					return fmt.Errorf("reading stream %s: %w", stream, err)
				}

				for _, sr := range res {
					for _, msg := range sr.Messages {
						if dedup != nil && dedup.Get(msg.ID) != nil {
							mc.Counter(metrickeys.StreamDuplicatesSkipped, metrics.Tags{}, 1)
							c.advance(msg.ID)
							continue
						}

						if !emit.Next(Message{ID: msg.ID, Values: msg.Values}) {
							return ctx.Err()
						}

						c.advance(msg.ID)
						if dedup != nil {
							dedup.Set(msg.ID, struct{}{}, ttlcache.DefaultTTL)
						}

						mc.Counter(metrickeys.StreamEntriesRead, metrics.Tags{}, 1)
					}
				}
			}
		})
	}
}
