package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	navmod "github.com/yungbote/navgraph/internal/modules/navigation"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

var ErrUnknownPlacement = errors.New("unknown recommendation placement")

// RefCache stores ranked references between requests.
type RefCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}

type RecommendationConfig struct {
	DefaultLimit   int
	DefaultMaxHops int
	CacheTTL       time.Duration
}

type RecommendationQuery struct {
	Placement string
	Entity    navigation.Entity
	Limit     int
	MaxHops   int
	// Strict surfaces store failures instead of degrading to an empty list.
	Strict bool
}

type RecommendationResult struct {
	Placement string                      `json:"placement"`
	Items     []navigation.Recommendation `json:"items"`
	Degraded  bool                        `json:"degraded,omitempty"`
	Cached    bool                        `json:"cached,omitempty"`
}

type RecommendationService interface {
	Recommend(ctx context.Context, q RecommendationQuery) (RecommendationResult, error)
}

type recommendationService struct {
	log        *logger.Logger
	nav        navmod.Usecases
	placements *navmod.Placements
	cache      RefCache
	metrics    *observability.Metrics
	cfg        RecommendationConfig
}

// NewRecommendationService builds the service; cache may be nil.
func NewRecommendationService(
	log *logger.Logger,
	nav navmod.Usecases,
	placements *navmod.Placements,
	cache RefCache,
	metrics *observability.Metrics,
	cfg RecommendationConfig,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = navigation.DefaultLimit
	}
	if cfg.DefaultMaxHops <= 0 {
		cfg.DefaultMaxHops = navigation.DefaultMaxHops
	}
	return &recommendationService{
		log:        serviceLog,
		nav:        nav.WithLog(serviceLog),
		placements: placements,
		cache:      cache,
		metrics:    metrics,
		cfg:        cfg,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, q RecommendationQuery) (RecommendationResult, error) {
	placement, ok := s.placements.Resolve(q.Placement)
	if !ok {
		return RecommendationResult{}, fmt.Errorf("%w: %q", ErrUnknownPlacement, q.Placement)
	}
	out := RecommendationResult{Placement: placement.ID, Items: []navigation.Recommendation{}}

	e := navigation.Entity{
		EntityType: strings.TrimSpace(q.Entity.EntityType),
		Bundle:     strings.TrimSpace(q.Entity.Bundle),
		EntityID:   strings.TrimSpace(q.Entity.EntityID),
	}
	if !e.Valid() {
		return out, navmod.ErrInvalidAnchor
	}
	if !placement.ShowsOn(e.EntityType, e.Bundle) {
		s.metrics.RecommendationOutcome("not_shown", 0)
		return out, nil
	}

	req := navigation.RecommendRequest{
		Anchor:  e.Ref(),
		Targets: placement.Targets(),
		Limit:   firstPositive(q.Limit, placement.Limit, s.cfg.DefaultLimit),
		MaxHops: graph.ClampHops(firstPositive(q.MaxHops, placement.MaxHops, s.cfg.DefaultMaxHops), s.cfg.DefaultMaxHops),
	}.Normalized()

	refs, cached := s.cachedRefs(ctx, req)
	if !cached {
		ranked, err := s.nav.RankRelated(ctx, req)
		if err != nil {
			if q.Strict || !isStoreFailure(err) {
				s.metrics.RecommendationOutcome("error", 0)
				return out, err
			}
			s.log.Warn("recommendation degraded to empty list", append([]interface{}{
				"placement", placement.ID,
				"anchor", req.Anchor.String(),
				"kind", graph.KindOf(err),
				"error", err,
			}, ctxutil.LogFields(ctx)...)...)
			s.metrics.RecommendationOutcome("degraded", 0)
			out.Degraded = true
			return out, nil
		}
		refs = ranked.Refs
		s.storeRefs(ctx, req, refs)
	}
	out.Cached = cached

	out.Items = s.nav.Hydrate(ctx, navmod.HydrateInput{Refs: refs}).Items
	if len(out.Items) == 0 {
		s.metrics.RecommendationOutcome("empty", 0)
	} else {
		s.metrics.RecommendationOutcome("served", len(out.Items))
	}
	return out, nil
}

func (s *recommendationService) cachedRefs(ctx context.Context, req navigation.RecommendRequest) ([]navigation.RankedRef, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return nil, false
	}
	var refs []navigation.RankedRef
	hit, err := s.cache.GetJSON(ctx, cacheKey(req), &refs)
	if err != nil {
		s.log.Warn("recommendation cache read failed (bypassing)", "error", err)
		s.metrics.CacheLookup("error")
		return nil, false
	}
	if !hit {
		s.metrics.CacheLookup("miss")
		return nil, false
	}
	s.metrics.CacheLookup("hit")
	if refs == nil {
		refs = []navigation.RankedRef{}
	}
	return refs, true
}

func (s *recommendationService) storeRefs(ctx context.Context, req navigation.RecommendRequest, refs []navigation.RankedRef) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.SetJSON(ctx, cacheKey(req), refs, s.cfg.CacheTTL); err != nil {
		s.log.Warn("recommendation cache write failed (ignored)", "error", err)
	}
}

// cacheKey expects a normalized request, so target order does not matter.
// Anchor parts are quoted so no separator inside them can shift field boundaries.
func cacheKey(req navigation.RecommendRequest) string {
	return fmt.Sprintf("rec:%q:%q|%s|%d|%d",
		req.Anchor.EntityType,
		req.Anchor.EntityID,
		strings.Join(req.Targets, ","),
		req.Limit,
		req.MaxHops,
	)
}

func isStoreFailure(err error) bool {
	return errors.Is(err, graph.ErrStoreUnavailable) ||
		errors.Is(err, graph.ErrStoreTimeout) ||
		errors.Is(err, graph.ErrStoreQueryRejected) ||
		errors.Is(err, navmod.ErrNoStore)
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
