package assessment

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
)

type FindParams struct {
	Domain     catalog.Domain
	EmployeeID uuid.UUID
	Status     Status
	Limit      int
	Offset     int
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]*Assessment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	// GetByEmployeeDomain returns the employee's assessment in domain, or
	// ErrAssessmentNotFound when none exists.
	GetByEmployeeDomain(ctx context.Context, employeeID uuid.UUID, domain catalog.Domain) (*Assessment, error)
	Create(ctx context.Context, a *Assessment) error
	// UpdateRatings persists the rating set of a draft.
	UpdateRatings(ctx context.Context, a *Assessment) error
	// UpdateStatus transitions id from→to with compare-and-swap semantics:
	// it reports false without touching the row when the current status is
	// not from. Retried submits therefore never double-complete.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
