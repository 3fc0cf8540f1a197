package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

func TestViewerIDAnonymous(t *testing.T) {
	if got := ViewerID(context.Background()); got != uuid.Nil {
		t.Fatalf("expected nil viewer, got %s", got)
	}
}

func TestViewerIDFromRequestData(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := ViewerID(ctx); got != id {
		t.Fatalf("ViewerID: got %s want %s", got, id)
	}
}

func TestLogFields(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	fields := LogFields(ctx)
	if len(fields) != 4 || fields[1] != "t1" || fields[3] != "r1" {
		t.Fatalf("LogFields: %v", fields)
	}
	if LogFields(context.Background()) != nil {
		t.Fatalf("expected nil fields without trace data")
	}
}

func TestResolveTraceDataPrefersActiveSpan(t *testing.T) {
	traceID := trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{1}})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	td := ResolveTraceData(ctx, "client-trace", "client-req")
	if td.TraceID != traceID.String() {
		t.Fatalf("TraceID: got %q want span id %q", td.TraceID, traceID.String())
	}
	if td.RequestID != "client-req" {
		t.Fatalf("RequestID: got %q", td.RequestID)
	}
}

func TestResolveTraceDataRejectsUnsafeClientIDs(t *testing.T) {
	for _, raw := range []string{"", "has space", "semi;colon", "x\r\ny"} {
		td := ResolveTraceData(context.Background(), raw, raw)
		if _, err := uuid.Parse(td.RequestID); err != nil {
			t.Fatalf("%q: expected generated request id, got %q", raw, td.RequestID)
		}
		if _, err := uuid.Parse(td.TraceID); err != nil {
			t.Fatalf("%q: expected generated trace id, got %q", raw, td.TraceID)
		}
	}
}
