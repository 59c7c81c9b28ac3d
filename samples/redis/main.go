package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sequencekit/sequence"
	"github.com/sequencekit/sequence/redisstream"
)

func main() {
	ctx := context.Background()

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{"localhost:6379"},
		Password: "RedisPassw0rd",
		DB:       0,
	})

	// Produce a few entries to read.
	for i := 0; i < 5; i++ {
		if err := rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: "events",
			ID:     "*",
			Values: map[string]interface{}{"n": i},
		}).Err(); err != nil {
			panic(err)
		}
	}

	// Read the stream, retrying dropped connections with exponential
	// backoff. The cursor resumes after the last delivered entry.
	factory := redisstream.New(rdb, "events", redisstream.WithBlockTimeout(time.Second))
	seq := sequence.WithRetry(sequence.Exponential(5, time.Second, 2, 30*time.Second), factory)

	sub := seq.Subscribe(ctx, sequence.NewObserver(
		func(m redisstream.Message) { fmt.Println("received:", m.ID, m.Values) },
		func() { fmt.Println("completed") },
		func(err error) { fmt.Println("failed:", err) },
	))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	log.Println("shutting down")
	sub.Cancel()
	<-sub.Done()
}
