package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/forge/internal/core/ports"
)

// InstrumentationName names the tracer used for build jobs.
const InstrumentationName = "forge"

// Setup installs a global tracer provider reporting finished spans to logger.
// The returned function shuts the provider down.
func Setup(logger ports.Logger) (*OTelTracer, func(context.Context) error) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogBridge(logger)))
	otel.SetTracerProvider(tp)
	return NewOTelTracerFrom(tp, InstrumentationName), tp.Shutdown
}
