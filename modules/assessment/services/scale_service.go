package services

import (
	"context"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

type ScaleService struct {
	repo scale.Repository
}

func NewScaleService(repo scale.Repository) *ScaleService {
	return &ScaleService{repo: repo}
}

// GetByDomain loads and validates the domain's scale. A band table that
// does not partition [0,100] surfaces as a configuration error here rather
// than failing inside a later grade resolution.
func (s *ScaleService) GetByDomain(ctx context.Context, domain string) (*scale.Scale, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*scale.Scale, error) {
		sc, err := s.repo.GetByDomain(txCtx, domain)
		if err != nil {
			return nil, err
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		return sc, nil
	})
}

// Save replaces the domain's scale after validating the band partition.
func (s *ScaleService) Save(ctx context.Context, sc *scale.Scale) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Save(txCtx, sc)
	})
}
