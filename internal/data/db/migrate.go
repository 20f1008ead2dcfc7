package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/navgraph/internal/domain/content"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&content.Entity{},
	)
}
