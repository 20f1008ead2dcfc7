package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/navgraph/internal/data/repos/content"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type ContentEntityRepo = content.EntityRepo

func NewContentEntityRepo(db *gorm.DB, log *logger.Logger) ContentEntityRepo {
	return content.NewEntityRepo(db, log)
}
