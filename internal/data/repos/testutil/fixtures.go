package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/yungbote/navgraph/internal/domain/content"
)

func SeedEntity(tb testing.TB, ctx context.Context, tx *gorm.DB, entityType, bundle, entityID string) *types.Entity {
	tb.Helper()
	e := &types.Entity{
		EntityType: entityType,
		Bundle:     bundle,
		EntityID:   entityID,
		Title:      entityType + " " + entityID,
		URL:        "/" + entityType + "/" + entityID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed entity: %v", err)
	}
	return e
}
