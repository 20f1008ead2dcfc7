package app

import (
	apphttp "github.com/yungbote/navgraph/internal/http"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, services Services, handlers Handlers, middleware Middleware) *apphttp.Server {
	log.Info("Wiring router...")
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.Otel.ServiceName,
		TracingEnabled: cfg.TracingEnabled,
		AllowOrigins:   cfg.AllowOrigins,

		AuthMiddleware: middleware.Auth,
		TrackingHook:   services.Tracking,

		HealthHandler:         handlers.Health,
		VisitHandler:          handlers.Visit,
		RecommendationHandler: handlers.Recommendation,
		ContentHandler:        handlers.Content,
		PageHandler:           handlers.Page,
	})
}
