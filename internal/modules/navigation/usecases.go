package navigation

import (
	"context"

	"github.com/yungbote/navgraph/internal/data/graph"
	domain "github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/modules/navigation/steps"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type UsecasesDeps struct {
	Log   *logger.Logger
	Graph graph.Store

	// Hydration source for recommendations.
	Entities steps.EntityLoader
	// Optional.
	Hydration steps.HydrationObserver
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

type (
	RecordVisitInput  = steps.RecordVisitInput
	RecordVisitOutput = steps.RecordVisitOutput

	ObserveEntityInput = steps.ObserveEntityInput

	RankRelatedInput  = steps.RankRelatedInput
	RankRelatedOutput = steps.RankRelatedOutput

	HydrateInput  = steps.HydrateInput
	HydrateOutput = steps.HydrateOutput
)

// RecordVisit is the VisitRecorder: it returns the id of the new visit.
func (u Usecases) RecordVisit(ctx context.Context, in RecordVisitInput) (RecordVisitOutput, error) {
	return steps.RecordVisit(ctx, steps.RecordVisitDeps{
		Log:   u.deps.Log,
		Graph: u.deps.Graph,
	}, in)
}

// ObserveEntity is the EntityObserver.
func (u Usecases) ObserveEntity(ctx context.Context, in ObserveEntityInput) error {
	return steps.ObserveEntity(ctx, steps.ObserveEntityDeps{
		Log:   u.deps.Log,
		Graph: u.deps.Graph,
	}, in)
}

func (u Usecases) RankRelated(ctx context.Context, in RankRelatedInput) (RankRelatedOutput, error) {
	return steps.RankRelated(ctx, steps.RankRelatedDeps{
		Log:   u.deps.Log,
		Graph: u.deps.Graph,
	}, in)
}

func (u Usecases) Hydrate(ctx context.Context, in HydrateInput) HydrateOutput {
	return steps.Hydrate(ctx, steps.HydrateDeps{
		Log:      u.deps.Log,
		Loader:   u.deps.Entities,
		Observer: u.deps.Hydration,
	}, in)
}

// Recommend is the RecommendationEngine: rank, then hydrate in rank order.
// Store failures are returned; hydration misses are dropped silently.
func (u Usecases) Recommend(ctx context.Context, in RankRelatedInput) ([]domain.Recommendation, error) {
	ranked, err := u.RankRelated(ctx, in)
	if err != nil {
		return []domain.Recommendation{}, err
	}
	return u.Hydrate(ctx, HydrateInput{Refs: ranked.Refs}).Items, nil
}
