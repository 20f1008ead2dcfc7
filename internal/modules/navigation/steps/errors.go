package steps

import "errors"

var (
	ErrInvalidVisit  = errors.New("visit request requires method and request uri")
	ErrInvalidEntity = errors.New("entity requires entity_type and entity_id")
	ErrInvalidAnchor = errors.New("recommendation anchor requires entity_type and entity_id")
	ErrNoStore       = errors.New("graph store not configured")
)
