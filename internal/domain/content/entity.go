package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the hydrated form of a content item that recommendations point at.
// Soft-deleted rows no longer hydrate.
type Entity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType string    `gorm:"column:entity_type;not null;uniqueIndex:idx_content_entity_key,priority:1" json:"entity_type"`
	EntityID   string    `gorm:"column:entity_id;not null;uniqueIndex:idx_content_entity_key,priority:2" json:"entity_id"`
	Bundle     string    `gorm:"column:bundle;not null;index" json:"bundle"`
	Title      string    `gorm:"column:title;not null;default:''" json:"title"`
	URL        string    `gorm:"column:url;not null;default:''" json:"url"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Entity) TableName() string { return "content_entities" }

func (e *Entity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
