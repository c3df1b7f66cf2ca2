package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the shared tracer for pipeline spans. Without InitTracing it is
// backed by the global no-op provider, so span calls stay cheap.
var Tracer trace.Tracer = otel.Tracer("minibun")

// InitTracing installs an OTLP/gRPC exporter and returns a shutdown func.
// Endpoint is host:port of a collector; an empty endpoint leaves the no-op
// provider in place.
func InitTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(2*time.Second)),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("minibun")

	slog.Info("tracing enabled", "endpoint", endpoint)
	return provider.Shutdown, nil
}
