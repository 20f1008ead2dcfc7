package ctxutil

import "context"

type requestDataKey struct{}

// RequestData carries the principal of the current request and, once recorded,
// the id of the Visit node created for it.
type RequestData struct {
	UserID string
	Roles  []string

	VisitID  int64
	HasVisit bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// VisitID returns the visit recorded for this request, if any.
func VisitID(ctx context.Context) (int64, bool) {
	rd := GetRequestData(ctx)
	if rd == nil || !rd.HasVisit {
		return 0, false
	}
	return rd.VisitID, true
}
