package agentic

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/smallnest/goalgraph/agentic"

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func startRunSpan(ctx context.Context, tracer trace.Tracer, goal, scopeID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, fmt.Sprintf("goal.run: %s", goal),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("goal.key", goal),
			attribute.String("scope.id", scopeID),
		),
	)
}

func startAgentSpan(ctx context.Context, tracer trace.Tracer, agent Agent, step int) (context.Context, trace.Span) {
	return tracer.Start(ctx, fmt.Sprintf("agent: %s", agent.Name()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("agent.name", agent.Name()),
			attribute.StringSlice("agent.inputs", agent.InputKeys()),
			attribute.String("agent.output", agent.OutputKey()),
			attribute.Int("agent.step", step),
		),
	)
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
