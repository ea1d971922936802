package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
	"github.com/skillbase-io/skillbase/pkg/composables"
	"github.com/skillbase-io/skillbase/pkg/eventbus"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

type TemplateService struct {
	repo        template.Repository
	assessments assessment.Repository
	employees   employee.Repository
	publisher   eventbus.EventBus
}

func NewTemplateService(
	repo template.Repository,
	assessments assessment.Repository,
	employees employee.Repository,
	publisher eventbus.EventBus,
) *TemplateService {
	return &TemplateService{
		repo:        repo,
		assessments: assessments,
		employees:   employees,
		publisher:   publisher,
	}
}

func (s *TemplateService) GetAll(ctx context.Context, params *template.FindParams) ([]*template.Template, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*template.Template, error) {
		return s.repo.GetAll(txCtx, params)
	})
}

func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*template.Template, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *TemplateService) GradeLevelsForPosition(ctx context.Context, domain catalog.Domain, positionID uint) ([]string, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]string, error) {
		return s.repo.GradeLevelsForPosition(txCtx, domain, positionID)
	})
}

func (s *TemplateService) Create(ctx context.Context, data *template.CreateDTO) (*template.Template, error) {
	if err := authorizeAssessments(ctx, TemplatesAuthzObject, "template.create"); err != nil {
		return nil, err
	}
	if errs, ok := data.Ok(); !ok {
		return nil, validationError(errs)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*template.Template, error) {
		entity := data.ToEntity()
		if err := s.ensureNoOverlap(txCtx, entity, nil); err != nil {
			return nil, err
		}
		// advisory pre-check above; the unique (domain, position, grade)
		// constraint on template_grade_levels remains authoritative
		if err := s.repo.Create(txCtx, entity); err != nil {
			return nil, err
		}
		s.publisher.Publish(&template.CreatedEvent{Result: entity})
		return entity, nil
	})
}

func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, data *template.UpdateDTO) (*template.Template, error) {
	if err := authorizeAssessments(ctx, TemplatesAuthzObject, "template.update"); err != nil {
		return nil, err
	}
	if errs, ok := data.Ok(); !ok {
		return nil, validationError(errs)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*template.Template, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		data.Apply(entity)
		if err := s.ensureNoOverlap(txCtx, entity, &id); err != nil {
			return nil, err
		}
		if err := s.repo.Update(txCtx, entity); err != nil {
			return nil, err
		}
		s.publisher.Publish(&template.UpdatedEvent{Result: entity})
		return entity, nil
	})
}

func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := authorizeAssessments(ctx, TemplatesAuthzObject, "template.delete"); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		s.publisher.Publish(&template.DeletedEvent{ID: id})
		return nil
	})
}

// MatchResult pairs the resolved template with a zeroed ratings skeleton.
type MatchResult struct {
	Template *template.Template
	Employee *employee.Employee
	Skeleton map[uint]int
}

// MatchEmployee resolves the template applicable to the employee's position
// and grade level. The duplicate-assessment check runs first: once an
// assessment exists a second one is never needed, so a duplicate takes
// precedence over any template lookup outcome.
func (s *TemplateService) MatchEmployee(ctx context.Context, employeeID uuid.UUID, domain catalog.Domain) (*MatchResult, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*MatchResult, error) {
		emp, err := s.employees.GetByID(txCtx, employeeID)
		if err != nil {
			return nil, err
		}

		if _, err := s.assessments.GetByEmployeeDomain(txCtx, employeeID, domain); err == nil {
			return nil, assessment.ErrDuplicate
		} else if !isNotFound(err) {
			return nil, err
		}

		tpl, err := s.repo.GetByPositionGrade(txCtx, domain, emp.PositionID, emp.GradeLevel)
		if err != nil {
			if isNotFound(err) {
				return nil, template.ErrNotFound
			}
			return nil, err
		}
		return &MatchResult{
			Template: tpl,
			Employee: emp,
			Skeleton: tpl.RatingsSkeleton(),
		}, nil
	})
}

func (s *TemplateService) ensureNoOverlap(ctx context.Context, entity *template.Template, excludeID *uuid.UUID) error {
	overlapping, err := s.repo.FindOverlapping(ctx, entity.Domain, entity.PositionID, entity.GradeLevels, excludeID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return template.ErrDuplicate
	}
	return nil
}

func validationError(errs serrors.ValidationErrors) error {
	for _, err := range errs {
		return err
	}
	return serrors.NewError("VALIDATION_FAILED", "validation failed", "")
}
