package content

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/navgraph/internal/domain/content"
	"github.com/yungbote/navgraph/internal/platform/dbctx"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type EntityRepo interface {
	Upsert(dbc dbctx.Context, row *types.Entity) error
	Get(dbc dbctx.Context, entityType, entityID string) (*types.Entity, error)
	// LoadMultiple returns the live rows of one type keyed by entity id. Ids
	// with no row are simply absent from the map.
	LoadMultiple(dbc dbctx.Context, entityType string, ids []string) (map[string]*types.Entity, error)
	Delete(dbc dbctx.Context, entityType, entityID string) error
}

type entityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityRepo(db *gorm.DB, baseLog *logger.Logger) EntityRepo {
	return &entityRepo{db: db, log: baseLog.With("repo", "ContentEntityRepo")}
}

// Upsert inserts or updates by (entity_type, entity_id) and revives a
// soft-deleted row.
func (r *entityRepo) Upsert(dbc dbctx.Context, row *types.Entity) error {
	if row == nil {
		return nil
	}
	row.EntityType = strings.TrimSpace(row.EntityType)
	row.EntityID = strings.TrimSpace(row.EntityID)
	if row.EntityType == "" || row.EntityID == "" {
		return errors.New("entity_type and entity_id are required")
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bundle", "title", "url", "updated_at", "deleted_at"}),
		}).
		Create(row).Error
}

func (r *entityRepo) Get(dbc dbctx.Context, entityType, entityID string) (*types.Entity, error) {
	if entityType == "" || entityID == "" {
		return nil, nil
	}
	var row types.Entity
	err := dbc.DB(r.db).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *entityRepo) LoadMultiple(dbc dbctx.Context, entityType string, ids []string) (map[string]*types.Entity, error) {
	out := map[string]*types.Entity{}
	if entityType == "" || len(ids) == 0 {
		return out, nil
	}
	var rows []*types.Entity
	if err := dbc.DB(r.db).
		Where("entity_type = ? AND entity_id IN ?", entityType, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.EntityID] = row
	}
	return out, nil
}

func (r *entityRepo) Delete(dbc dbctx.Context, entityType, entityID string) error {
	return dbc.DB(r.db).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&types.Entity{}).Error
}
