package actionlog

import (
	"context"
	"encoding/json"
	"time"
)

// ActionLog is one audit trail entry. Payload carries a JSON snapshot of
// the affected entity at the time of the action.
type ActionLog struct {
	ID         uint
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Payload    json.RawMessage
	CreatedAt  time.Time
}

type FindParams struct {
	Action     string
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*ActionLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *ActionLog) error
}
