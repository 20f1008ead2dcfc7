package services

import (
	"context"
	"strings"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	navmod "github.com/yungbote/navgraph/internal/modules/navigation"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

// RequestDescriptor is one inbound page request as the tracking middleware sees it.
// Referer is the raw header value; SiteBase is the scheme, host and base path
// of the request, used when no BASE_URL is configured.
type RequestDescriptor struct {
	navigation.VisitRequest
	Ajax     bool
	SiteBase string
}

// TrackingHook is the request-lifecycle side of tracking. It never fails the
// request: store errors are logged, counted and swallowed.
type TrackingHook interface {
	OnRequest(ctx context.Context, req RequestDescriptor) (int64, bool)
	OnEntity(ctx context.Context, visitID int64, e navigation.Entity)
}

// TrackingService adds the explicit API calls, which do report errors.
type TrackingService interface {
	TrackingHook
	RecordVisit(ctx context.Context, req navigation.VisitRequest) (int64, error)
	ObserveEntity(ctx context.Context, visitID int64, e navigation.Entity) error
}

type trackingService struct {
	log     *logger.Logger
	nav     navmod.Usecases
	metrics *observability.Metrics
	baseURL string
}

func NewTrackingService(log *logger.Logger, nav navmod.Usecases, metrics *observability.Metrics, baseURL string) TrackingService {
	serviceLog := log.With("service", "TrackingService")
	return &trackingService{
		log:     serviceLog,
		nav:     nav.WithLog(serviceLog),
		metrics: metrics,
		baseURL: strings.TrimSpace(baseURL),
	}
}

func (s *trackingService) OnRequest(ctx context.Context, req RequestDescriptor) (int64, bool) {
	if req.Ajax {
		s.metrics.TrackingSkipped()
		return 0, false
	}
	base := s.baseURL
	if base == "" {
		base = req.SiteBase
	}
	vr := req.VisitRequest
	vr.Referer = relativeReferer(vr.Referer, base)

	out, err := s.nav.RecordVisit(ctx, vr)
	if err != nil {
		s.log.Warn("visit tracking failed (continuing without session context)", append([]interface{}{
			"request_uri", vr.RequestURI,
			"kind", graph.KindOf(err),
			"error", err,
		}, ctxutil.LogFields(ctx)...)...)
		s.metrics.TrackingDegraded("record_visit", graph.KindOf(err))
		return 0, false
	}
	s.metrics.VisitRecorded()
	return out.VisitID, true
}

func (s *trackingService) OnEntity(ctx context.Context, visitID int64, e navigation.Entity) {
	if err := s.ObserveEntity(ctx, visitID, e); err != nil {
		fields := []interface{}{
			"entity", e.Ref().String(),
			"kind", graph.KindOf(err),
			"error", err,
		}
		if _, ok := ctxutil.VisitID(ctx); !ok {
			fields = append(fields, "visit_id", visitID)
		}
		s.log.Warn("entity observation failed (continuing)", append(fields, ctxutil.LogFields(ctx)...)...)
		s.metrics.TrackingDegraded("observe_entity", graph.KindOf(err))
	}
}

func (s *trackingService) RecordVisit(ctx context.Context, req navigation.VisitRequest) (int64, error) {
	req.Referer = relativeReferer(req.Referer, s.baseURL)
	out, err := s.nav.RecordVisit(ctx, req)
	if err != nil {
		return 0, err
	}
	s.metrics.VisitRecorded()
	return out.VisitID, nil
}

func (s *trackingService) ObserveEntity(ctx context.Context, visitID int64, e navigation.Entity) error {
	return s.nav.ObserveEntity(ctx, navmod.ObserveEntityInput{VisitID: visitID, Entity: e})
}

// relativeReferer keeps application-relative referers and strips the site base
// from absolute ones. Anything off-site is treated as no referer.
func relativeReferer(referer, base string) string {
	referer = strings.TrimSpace(referer)
	if referer == "" {
		return ""
	}
	if strings.HasPrefix(referer, "/") && !strings.HasPrefix(referer, "//") {
		return referer
	}
	return navmod.NormalizeReferer(referer, base)
}
