package ctxutil

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const maxClientIDLength = 64

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns trace_id/request_id pairs for structured logging.
func LogFields(ctx context.Context) []interface{} {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	fields := make([]interface{}, 0, 4)
	if td.TraceID != "" {
		fields = append(fields, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		fields = append(fields, "request_id", td.RequestID)
	}
	return fields
}

// ResolveTraceData picks the ids for one request. Client supplied ids are kept
// only when short and made of [A-Za-z0-9._-]. An active span's trace id wins
// over the client's trace header; anything still missing gets a fresh uuid.
func ResolveTraceData(ctx context.Context, clientTraceID, clientRequestID string) *TraceData {
	td := &TraceData{RequestID: cleanClientID(clientRequestID)}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		td.TraceID = sc.TraceID().String()
	} else {
		td.TraceID = cleanClientID(clientTraceID)
	}
	if td.TraceID == "" {
		td.TraceID = uuid.NewString()
	}
	if td.RequestID == "" {
		td.RequestID = uuid.NewString()
	}
	return td
}

func cleanClientID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxClientIDLength {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return ""
		}
	}
	return raw
}
