package app

import (
	"strings"
	"time"

	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/envutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type Config struct {
	Port         string
	BaseURL      string
	JWTSecretKey string
	AllowOrigins []string

	PlacementsPath         string
	RecommendationLimit    int
	RecommendationMaxHops  int
	RecommendationCacheTTL time.Duration

	Otel           observability.OtelConfig
	TracingEnabled bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:         envutil.String("PORT", "8080"),
		BaseURL:      envutil.String("BASE_URL", ""),
		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		AllowOrigins: splitList(envutil.String("CORS_ALLOW_ORIGINS", "")),

		PlacementsPath:         envutil.String("PLACEMENTS_YAML", ""),
		RecommendationLimit:    envutil.PositiveInt("RECOMMENDATION_LIMIT", navigation.DefaultLimit),
		RecommendationMaxHops:  envutil.PositiveInt("RECOMMENDATION_MAX_HOPS", navigation.DefaultMaxHops),
		RecommendationCacheTTL: envutil.Seconds("RECOMMENDATION_CACHE_TTL_SECONDS", 5*time.Minute),

		Otel: observability.OtelConfig{
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "navgraph"),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", ""),
		},
		TracingEnabled: envutil.Bool("OTEL_ENABLED", false),
	}
	if cfg.BaseURL == "" {
		log.Warn("BASE_URL not set; referers are matched against the request host")
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
