package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/navgraph/internal/data/repos"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type Repos struct {
	ContentEntity repos.ContentEntityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		ContentEntity: repos.NewContentEntityRepo(db, log),
	}
}
