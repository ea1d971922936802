package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

// EmployeeService exposes the read-only employee directory.
type EmployeeService struct {
	repo employee.Repository
}

func NewEmployeeService(repo employee.Repository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func (s *EmployeeService) GetAll(ctx context.Context, params *employee.FindParams) ([]*employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*employee.Employee, error) {
		return s.repo.GetAll(txCtx, params)
	})
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*employee.Employee, error) {
		return s.repo.GetByID(txCtx, id)
	})
}
