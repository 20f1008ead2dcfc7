package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/navgraph/internal/domain/content"
	"github.com/yungbote/navgraph/internal/data/repos"
	"github.com/yungbote/navgraph/internal/platform/dbctx"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type ContentInput struct {
	EntityType string `json:"entity_type"`
	Bundle     string `json:"bundle"`
	EntityID   string `json:"entity_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// ContentService owns the entity rows recommendations hydrate from.
type ContentService interface {
	Upsert(ctx context.Context, in ContentInput) (*types.Entity, error)
	Get(ctx context.Context, entityType, entityID string) (*types.Entity, error)
	Delete(ctx context.Context, entityType, entityID string) error
	LoadEntities(ctx context.Context, entityType string, ids []string) (map[string]*types.Entity, error)
}

type contentService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.ContentEntityRepo
}

func NewContentService(db *gorm.DB, baseLog *logger.Logger, repo repos.ContentEntityRepo) ContentService {
	return &contentService{
		db:   db,
		log:  baseLog.With("service", "ContentService"),
		repo: repo,
	}
}

func (s *contentService) Upsert(ctx context.Context, in ContentInput) (*types.Entity, error) {
	row := &types.Entity{
		EntityType: strings.TrimSpace(in.EntityType),
		Bundle:     strings.TrimSpace(in.Bundle),
		EntityID:   strings.TrimSpace(in.EntityID),
		Title:      strings.TrimSpace(in.Title),
		URL:        strings.TrimSpace(in.URL),
	}
	if row.EntityType == "" || row.EntityID == "" || row.Bundle == "" {
		return nil, fmt.Errorf("entity_type, bundle and entity_id are required")
	}
	var out *types.Entity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.repo.Upsert(dbc, row); err != nil {
			return fmt.Errorf("upsert content entity: %w", err)
		}
		got, err := s.repo.Get(dbc, row.EntityType, row.EntityID)
		if err != nil {
			return err
		}
		out = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns nil with a nil error when the entity does not exist.
func (s *contentService) Get(ctx context.Context, entityType, entityID string) (*types.Entity, error) {
	return s.repo.Get(dbctx.From(ctx), strings.TrimSpace(entityType), strings.TrimSpace(entityID))
}

func (s *contentService) Delete(ctx context.Context, entityType, entityID string) error {
	return s.repo.Delete(dbctx.From(ctx), strings.TrimSpace(entityType), strings.TrimSpace(entityID))
}

func (s *contentService) LoadEntities(ctx context.Context, entityType string, ids []string) (map[string]*types.Entity, error) {
	rows, err := s.repo.LoadMultiple(dbctx.From(ctx), entityType, ids)
	if err != nil {
		return nil, fmt.Errorf("load %s entities: %w", entityType, err)
	}
	return rows, nil
}
