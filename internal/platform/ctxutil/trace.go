package ctxutil

import "context"

type traceDataKey struct{}

// TraceData identifies the request a visit was recorded under, so tracking
// failures logged deep in the services can be joined to the access log.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns the trace, request and visit ids on ctx as logger
// key/value pairs. Missing ids are omitted.
func LogFields(ctx context.Context) []interface{} {
	var out []interface{}
	if td := GetTraceData(ctx); td != nil {
		if td.TraceID != "" {
			out = append(out, "trace_id", td.TraceID)
		}
		if td.RequestID != "" {
			out = append(out, "request_id", td.RequestID)
		}
	}
	if id, ok := VisitID(ctx); ok {
		out = append(out, "visit_id", id)
	}
	return out
}
