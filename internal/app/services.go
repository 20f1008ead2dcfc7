package app

import (
	"fmt"

	"gorm.io/gorm"

	navmod "github.com/yungbote/navgraph/internal/modules/navigation"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Content        services.ContentService
	Tracking       services.TrackingService
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, reposet Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	placements, err := navmod.LoadPlacements(cfg.PlacementsPath)
	if err != nil {
		return Services{}, fmt.Errorf("load placements: %w", err)
	}
	log.Info("Recommendation placements loaded", "placements", placements.IDs())

	content := services.NewContentService(db, log, reposet.ContentEntity)
	nav := navmod.New(navmod.UsecasesDeps{
		Log:       log,
		Graph:     clients.GraphStore(),
		Entities:  content,
		Hydration: metrics,
	})

	var cache services.RefCache
	if clients.Cache != nil {
		cache = clients.Cache
	}

	return Services{
		Auth:     services.NewAuthService(log, cfg.JWTSecretKey),
		Content:  content,
		Tracking: services.NewTrackingService(log, nav, metrics, cfg.BaseURL),
		Recommendation: services.NewRecommendationService(log, nav, placements, cache, metrics, services.RecommendationConfig{
			DefaultLimit:   cfg.RecommendationLimit,
			DefaultMaxHops: cfg.RecommendationMaxHops,
			CacheTTL:       cfg.RecommendationCacheTTL,
		}),
	}, nil
}
