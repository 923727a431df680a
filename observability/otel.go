package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelObserver records events as span events on the trace span carried by
// the context. Events arriving without a recording span are dropped, so the
// observer is safe to leave registered when tracing is disabled.
//
// Events with a non-nil Err are recorded via span.RecordError; error-level
// ones additionally mark the span status as Error.
type OTelObserver struct{}

// NewOTelObserver creates an OTelObserver.
func NewOTelObserver() *OTelObserver {
	return &OTelObserver{}
}

func (o *OTelObserver) OnEvent(ctx context.Context, event Event) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(event.Data)+2)
	attrs = append(attrs,
		attribute.String("event.source", event.Source),
		attribute.Int("event.severity", int(event.Level)),
	)
	for k, v := range event.Data {
		attrs = append(attrs, anyAttribute(k, v))
	}

	if event.Err != nil {
		span.RecordError(event.Err, trace.WithAttributes(attrs...))
		if event.Level >= LevelError {
			span.SetStatus(codes.Error, string(event.Type))
		}
		return
	}

	opts := []trace.EventOption{trace.WithAttributes(attrs...)}
	if !event.Timestamp.IsZero() {
		opts = append(opts, trace.WithTimestamp(event.Timestamp))
	}
	span.AddEvent(string(event.Type), opts...)
}

// anyAttribute converts a Data value to an OTel attribute, falling back to
// fmt.Sprint for types the attribute package has no native encoding for.
func anyAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
