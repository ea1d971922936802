package employee

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/pkg/serrors"
)

var ErrNotFound = serrors.NewError("EMPLOYEE_NOT_FOUND", "employee not found", "HRM.Errors.EmployeeNotFound")

// Employee is the read-only directory entry assessments are matched
// against. The directory is mastered elsewhere; this module only mirrors
// the fields the matching flow needs.
type Employee struct {
	ID            uuid.UUID
	Name          string
	JobTitle      string
	GradeLevel    string
	PositionID    uint
	PositionGroup string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type FindParams struct {
	PositionID uint
	GradeLevel string
	Limit      int
	Offset     int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context, params *FindParams) ([]*Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
}
