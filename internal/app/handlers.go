package app

import (
	httpH "github.com/yungbote/navgraph/internal/http/handlers"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type Handlers struct {
	Health         *httpH.HealthHandler
	Visit          *httpH.VisitHandler
	Recommendation *httpH.RecommendationHandler
	Content        *httpH.ContentHandler
	Page           *httpH.PageHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	var pinger httpH.GraphPinger
	if clients.Neo4j != nil {
		pinger = clients.Neo4j
	}
	return Handlers{
		Health:         httpH.NewHealthHandler(pinger),
		Visit:          httpH.NewVisitHandler(services.Tracking),
		Recommendation: httpH.NewRecommendationHandler(services.Recommendation),
		Content:        httpH.NewContentHandler(services.Content),
		Page:           httpH.NewPageHandler(log, services.Content, services.Tracking, services.Recommendation),
	}
}
