package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/sequencekit/sequence"
)

func main() {
	ctx := context.Background()

	r := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("sequence sample"),
		semconv.ServiceVersionKey.String("v0.1.0"),
		attribute.String("environment", "sample"),
	)

	stdoutexp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		panic(err)
	}

	oclient := otlptracehttp.NewClient(otlptracehttp.WithEndpoint("localhost:4318"), otlptracehttp.WithInsecure())
	exp, err := otlptrace.New(ctx, oclient)
	if err != nil {
		panic(err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSyncer(stdoutexp),
		trace.WithBatcher(exp),
		trace.WithResource(r),
	)
	defer tp.Shutdown(ctx)

	otel.SetTracerProvider(tp)

	seq := sequence.WithRetry(
		sequence.Exponential(3, time.Second, 2, 10*time.Second),
		func(ctx context.Context, attempt int) sequence.Sequence[int] {
			if attempt == 0 {
				return sequence.Fail[int](errors.New("transient failure"))
			}

			return sequence.FromValues(1, 2, 3)
		},
		sequence.WithTracerProvider(tp),
	)

	sub := seq.Subscribe(ctx, sequence.NewObserver(
		func(v int) { fmt.Println("received:", v) },
		func() { fmt.Println("completed") },
		func(err error) { fmt.Println("failed:", err) },
	))

	<-sub.Done()
}
