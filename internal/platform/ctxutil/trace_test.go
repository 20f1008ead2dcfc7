package ctxutil

import (
	"context"
	"reflect"
	"testing"
)

func TestLogFields(t *testing.T) {
	if got := LogFields(context.Background()); len(got) != 0 {
		t.Fatalf("empty context: got %v", got)
	}

	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	want := []interface{}{"trace_id", "t1", "request_id", "r1"}
	if got := LogFields(ctx); !reflect.DeepEqual(got, want) {
		t.Fatalf("trace only: got=%v want=%v", got, want)
	}

	ctx = WithRequestData(ctx, &RequestData{VisitID: 0, HasVisit: true})
	want = append(want, "visit_id", int64(0))
	if got := LogFields(ctx); !reflect.DeepEqual(got, want) {
		t.Fatalf("with visit: got=%v want=%v", got, want)
	}
}
