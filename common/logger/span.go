package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "basegraph.app/cms"

// originTraceKey records the trace that produced a stream message. The
// message carries no span id, so the link alone cannot parent the span.
const originTraceKey = attribute.Key("cms.origin_trace_id")

// SpanContext pairs a span with the context it was started in.
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan starts a child of the span in ctx.
//
//	sc := logger.StartSpan(ctx, "service.blog-posts.create")
//	defer sc.End()
//	ctx = sc.Context()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &SpanContext{ctx: ctx, span: span}
}

// StartSpanFromTraceID starts a span for work caused by a request in another
// process, such as a change event read back from the Redis stream. An empty or
// malformed traceID starts an unrelated root span.
func StartSpanFromTraceID(ctx context.Context, traceID string, name string, opts ...trace.SpanStartOption) *SpanContext {
	parsed, err := trace.TraceIDFromHex(traceID)
	if err != nil {
		return StartSpan(ctx, name, opts...)
	}

	origin := originTraceKey.String(parsed.String())
	link := trace.Link{
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{TraceID: parsed, Remote: true}),
		Attributes:  []attribute.KeyValue{origin},
	}
	opts = append(opts, trace.WithLinks(link), trace.WithAttributes(origin))
	return StartSpan(ctx, name, opts...)
}

func (sc *SpanContext) Context() context.Context {
	return sc.ctx
}

// End is safe to call more than once.
func (sc *SpanContext) End() {
	if sc.span != nil {
		sc.span.End()
	}
}

// RecordError records err on the span and marks the span failed.
func (sc *SpanContext) RecordError(err error) {
	if sc.span == nil || err == nil {
		return
	}
	sc.span.RecordError(err)
	sc.span.SetStatus(codes.Error, err.Error())
}

// SetAttributes annotates the span, e.g. with the document id once known.
func (sc *SpanContext) SetAttributes(attrs ...attribute.KeyValue) {
	if sc.span != nil {
		sc.span.SetAttributes(attrs...)
	}
}

// TraceID returns the hex trace id of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
