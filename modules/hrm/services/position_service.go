package services

import (
	"context"

	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/position"
	"github.com/skillbase-io/skillbase/pkg/composables"
	"github.com/skillbase-io/skillbase/pkg/eventbus"
)

type PositionService struct {
	repo      position.Repository
	publisher eventbus.EventBus
}

func NewPositionService(repo position.Repository, publisher eventbus.EventBus) *PositionService {
	return &PositionService{repo: repo, publisher: publisher}
}

func (s *PositionService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func (s *PositionService) GetAll(ctx context.Context) ([]*position.Position, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*position.Position, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *PositionService) GetPaginated(ctx context.Context, params *position.FindParams) ([]*position.Position, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*position.Position, error) {
		return s.repo.GetPaginated(txCtx, params)
	})
}

func (s *PositionService) GetByID(ctx context.Context, id uint) (*position.Position, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*position.Position, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *PositionService) Create(ctx context.Context, data *position.Position) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, data); err != nil {
			return err
		}
		s.publisher.Publish(&position.CreatedEvent{Result: data})
		return nil
	})
}

func (s *PositionService) Update(ctx context.Context, data *position.Position) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, data); err != nil {
			return err
		}
		s.publisher.Publish(&position.UpdatedEvent{Result: data})
		return nil
	})
}

func (s *PositionService) Delete(ctx context.Context, id uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		s.publisher.Publish(&position.DeletedEvent{ID: id})
		return nil
	})
}
