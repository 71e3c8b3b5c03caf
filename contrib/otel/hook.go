// Package otel exports openaikit telemetry as OpenTelemetry spans.
//
//	client := openai.New(cfg, openai.WithTelemetry(otel.NewHook(tp.Tracer("openaikit"))))
//
// Each call becomes one client span from request start to terminal state.
// Streaming spans stay open until the session closes.
package otel

import (
	"context"
	"sync"

	gootel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/openaikit/core"
)

// TracerName is used when no tracer is supplied.
const TracerName = "github.com/petal-labs/openaikit"

// Hook implements core.TelemetryHook on top of a trace.Tracer.
type Hook struct {
	tracer trace.Tracer
	spans  sync.Map // request ID -> trace.Span
}

// NewHook returns a hook that starts spans on tracer. A nil tracer uses the
// global tracer provider.
func NewHook(tracer trace.Tracer) *Hook {
	if tracer == nil {
		tracer = gootel.Tracer(TracerName)
	}
	return &Hook{tracer: tracer}
}

// OnRequestStart opens the span for e.ID.
func (h *Hook) OnRequestStart(e core.RequestStartEvent) {
	_, span := h.tracer.Start(context.Background(), spanName(e.Method, e.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			attribute.String("openai.request.id", e.ID),
			attribute.String("http.request.method", e.Method),
			attribute.String("url.path", e.Path),
			attribute.String("openai.call.shape", string(e.Shape)),
		),
	)
	h.spans.Store(e.ID, span)
}

// OnRequestEnd closes the span for e.ID. Events without a matching start are ignored.
func (h *Hook) OnRequestEnd(e core.RequestEndEvent) {
	v, ok := h.spans.LoadAndDelete(e.ID)
	if !ok {
		return
	}
	span := v.(trace.Span)

	if e.Status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", e.Status))
	}
	if e.Shape == core.ShapeStream {
		span.SetAttributes(attribute.Int("openai.stream.frames", e.Frames))
	}
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.End))
}

func spanName(method, path string) string {
	return "openai " + method + " " + path
}

var _ core.TelemetryHook = (*Hook)(nil)
