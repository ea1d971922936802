package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/skillbase-io/skillbase/modules/logging/domain/entities/actionlog"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

type AuditService struct {
	repo actionlog.Repository
}

func NewAuditService(repo actionlog.Repository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*actionlog.ActionLog, error) {
		return s.repo.List(txCtx, params)
	})
}

func (s *AuditService) Count(ctx context.Context, params *actionlog.FindParams) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx, params)
	})
}

// Log records one audit entry. The payload is marshaled best-effort; audit
// writes never fail the action they describe.
func (s *AuditService) Log(ctx context.Context, actor, action, entityType, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}
	entry := &actionlog.ActionLog{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    raw,
		CreatedAt:  time.Now(),
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, entry)
	})
}
