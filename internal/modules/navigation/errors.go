package navigation

import "github.com/yungbote/navgraph/internal/modules/navigation/steps"

var (
	ErrInvalidVisit  = steps.ErrInvalidVisit
	ErrInvalidEntity = steps.ErrInvalidEntity
	ErrInvalidAnchor = steps.ErrInvalidAnchor
	ErrNoStore       = steps.ErrNoStore
)
