package template

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
)

type FindParams struct {
	Domain     catalog.Domain
	PositionID uint
	Limit      int
	Offset     int
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]*Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
	// GetByPositionGrade returns the template for (domain, position) whose
	// grade level set contains gradeLevel.
	GetByPositionGrade(ctx context.Context, domain catalog.Domain, positionID uint, gradeLevel string) (*Template, error)
	// FindOverlapping returns templates for (domain, position) whose grade
	// levels intersect gradeLevels, excluding excludeID when non-nil.
	FindOverlapping(ctx context.Context, domain catalog.Domain, positionID uint, gradeLevels []string, excludeID *uuid.UUID) ([]*Template, error)
	GradeLevelsForPosition(ctx context.Context, domain catalog.Domain, positionID uint) ([]string, error)
	Create(ctx context.Context, t *Template) error
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
}
