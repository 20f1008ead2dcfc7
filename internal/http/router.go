package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/navgraph/internal/http/handlers"
	httpMW "github.com/yungbote/navgraph/internal/http/middleware"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/services"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowOrigins   []string

	AuthMiddleware *httpMW.AuthMiddleware
	TrackingHook   services.TrackingHook

	HealthHandler         *httpH.HealthHandler
	VisitHandler          *httpH.VisitHandler
	RecommendationHandler *httpH.RecommendationHandler
	ContentHandler        *httpH.ContentHandler
	PageHandler           *httpH.PageHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "navgraph"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowOrigins...))
	if cfg.AuthMiddleware != nil {
		r.Use(cfg.AuthMiddleware.AttachPrincipal())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/healthcheck/graph", cfg.HealthHandler.GraphHealth)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.VisitHandler != nil {
			api.POST("/visits", cfg.VisitHandler.RecordVisit)
			api.POST("/visits/:id/entities", cfg.VisitHandler.ObserveEntity)
		}
		if cfg.RecommendationHandler != nil {
			api.GET("/recommendations", cfg.RecommendationHandler.List)
		}
		if cfg.ContentHandler != nil {
			api.PUT("/content", cfg.ContentHandler.Upsert)
			api.DELETE("/content/:entity_type/:entity_id", cfg.ContentHandler.Delete)
		}
	}

	// Tracked pages
	pages := r.Group("/pages")
	{
		pages.Use(httpMW.TrackVisits(cfg.TrackingHook))
		if cfg.PageHandler != nil {
			pages.GET("/:entity_type/:entity_id", cfg.PageHandler.Show)
		}
	}

	return r
}
