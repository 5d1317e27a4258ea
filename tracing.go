package bestfirst

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/pdrpinto/bestfirst"

// GlobalTracer returns a tracer from the globally registered otel provider.
func GlobalTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func noopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerName)
}

func startSearchSpan(ctx context.Context, tracer trace.Tracer, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "bestfirst.search",
		trace.WithAttributes(attribute.String("bestfirst.run_id", runID)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func endSearchSpan[S State[S], A any](span trace.Span, result Result[S, A], err error) {
	span.SetAttributes(
		attribute.String("bestfirst.status", string(result.Status)),
		attribute.Int("bestfirst.expanded", result.Expanded),
		attribute.Int("bestfirst.generated", result.Generated),
		attribute.Int("bestfirst.admitted", result.Admitted),
		attribute.Int("bestfirst.max_frontier", result.MaxFrontier),
	)
	if result.Node != nil {
		span.SetAttributes(
			attribute.Float64("bestfirst.path_cost", result.Node.PathCost()),
			attribute.Int("bestfirst.depth", result.Node.Depth()),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
