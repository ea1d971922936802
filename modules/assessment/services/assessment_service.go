package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/scoring"
	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
	"github.com/skillbase-io/skillbase/pkg/composables"
	"github.com/skillbase-io/skillbase/pkg/eventbus"
)

type AssessmentService struct {
	repo      assessment.Repository
	templates template.Repository
	employees employee.Repository
	scales    scale.Repository
	catalogs  *CatalogService
	publisher eventbus.EventBus
	policy    assessment.SubmitPolicy
}

func NewAssessmentService(
	repo assessment.Repository,
	templates template.Repository,
	employees employee.Repository,
	scales scale.Repository,
	catalogs *CatalogService,
	publisher eventbus.EventBus,
	policy assessment.SubmitPolicy,
) *AssessmentService {
	return &AssessmentService{
		repo:      repo,
		templates: templates,
		employees: employees,
		scales:    scales,
		catalogs:  catalogs,
		publisher: publisher,
		policy:    policy,
	}
}

func (s *AssessmentService) GetAll(ctx context.Context, params *assessment.FindParams) ([]*assessment.Assessment, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]*assessment.Assessment, error) {
		return s.repo.GetAll(txCtx, params)
	})
}

func (s *AssessmentService) GetByID(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*assessment.Assessment, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

// Create snapshots the matched template's item set into a new DRAFT
// assessment. The duplicate pre-check is advisory; the unique
// (domain, employee) constraint in the store is the final arbiter.
func (s *AssessmentService) Create(ctx context.Context, data *assessment.CreateDTO) (*assessment.Assessment, error) {
	if err := authorizeAssessments(ctx, AssessmentsAuthzObject, "assessment.create"); err != nil {
		return nil, err
	}
	if errs, ok := data.Ok(); !ok {
		return nil, validationError(errs)
	}
	domain := catalog.Domain(data.Domain)
	return composables.InTxResult(ctx, func(txCtx context.Context) (*assessment.Assessment, error) {
		emp, err := s.employees.GetByID(txCtx, data.EmployeeID)
		if err != nil {
			return nil, err
		}
		if _, err := s.repo.GetByEmployeeDomain(txCtx, emp.ID, domain); err == nil {
			return nil, assessment.ErrDuplicate
		} else if !isNotFound(err) {
			return nil, err
		}
		tpl, err := s.templates.GetByPositionGrade(txCtx, domain, emp.PositionID, emp.GradeLevel)
		if err != nil {
			if isNotFound(err) {
				return nil, template.ErrNotFound
			}
			return nil, err
		}
		entity := assessment.NewFromTemplate(emp.ID, tpl)
		if err := s.repo.Create(txCtx, entity); err != nil {
			return nil, err
		}
		s.publisher.Publish(&assessment.CreatedEvent{Result: entity})
		return entity, nil
	})
}

// SaveDraft persists ratings of a draft. The only validation is item-id
// membership against the referenced template.
func (s *AssessmentService) SaveDraft(ctx context.Context, id uuid.UUID, data *assessment.SaveDraftDTO) (*assessment.Assessment, error) {
	if err := authorizeAssessments(ctx, AssessmentsAuthzObject, "assessment.update"); err != nil {
		return nil, err
	}
	if errs, ok := data.Ok(); !ok {
		return nil, validationError(errs)
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*assessment.Assessment, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		if entity.Status != assessment.StatusDraft {
			return nil, assessment.ErrInvalidTransition
		}
		tpl, err := s.templates.GetByID(txCtx, entity.TemplateID)
		if err != nil {
			return nil, err
		}
		if err := entity.ApplyRatings(tpl, data.ToRatings()); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateRatings(txCtx, entity); err != nil {
			return nil, err
		}
		return entity, nil
	})
}

// Submit transitions DRAFT→COMPLETED. The status update is a
// compare-and-swap keyed on the observed DRAFT status, so a retried submit
// cannot complete twice.
func (s *AssessmentService) Submit(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	if err := authorizeAssessments(ctx, AssessmentsAuthzObject, "assessment.submit"); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*assessment.Assessment, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		tpl, err := s.templates.GetByID(txCtx, entity.TemplateID)
		if err != nil {
			return nil, err
		}
		if err := s.policy.ValidateSubmit(entity, tpl); err != nil {
			return nil, err
		}
		swapped, err := s.repo.UpdateStatus(txCtx, id, assessment.StatusDraft, assessment.StatusCompleted)
		if err != nil {
			return nil, err
		}
		if !swapped {
			return nil, assessment.ErrInvalidTransition
		}
		entity.Status = assessment.StatusCompleted
		s.publisher.Publish(&assessment.SubmittedEvent{Result: entity, Actor: actorName(ctx)})
		return entity, nil
	})
}

// Reopen transitions COMPLETED→DRAFT. Privileged role only.
func (s *AssessmentService) Reopen(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	if err := authorizeAssessments(ctx, AssessmentsAuthzObject, "assessment.reopen"); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*assessment.Assessment, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		swapped, err := s.repo.UpdateStatus(txCtx, id, assessment.StatusCompleted, assessment.StatusDraft)
		if err != nil {
			return nil, err
		}
		if !swapped {
			return nil, assessment.ErrInvalidTransition
		}
		entity.Status = assessment.StatusDraft
		s.publisher.Publish(&assessment.ReopenedEvent{Result: entity, Actor: actorName(ctx)})
		return entity, nil
	})
}

// Delete removes the assessment; allowed from either workflow state.
func (s *AssessmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := authorizeAssessments(ctx, AssessmentsAuthzObject, "assessment.delete"); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		s.publisher.Publish(&assessment.DeletedEvent{ID: entity.ID, EmployeeID: entity.EmployeeID})
		return nil
	})
}

func actorName(ctx context.Context) string {
	if user, err := composables.UseUser(ctx); err == nil {
		return user.Name
	}
	return "system"
}

// ItemScore is one line of a score report.
type ItemScore struct {
	ItemID    uint
	Name      string
	GroupPath []string
	Required  int
	Actual    int
	Gap       int
	Notes     string
	Rated     bool
}

// ScoreReport carries everything the presentation layer renders: per-item
// gaps, group roll-ups, the main-group roll-up for two-level hierarchies,
// the overall score and the completion metric.
type ScoreReport struct {
	AssessmentID uuid.UUID
	Domain       catalog.Domain
	EmployeeID   uuid.UUID
	Status       assessment.Status
	Items        []ItemScore
	Groups       []scoring.GroupScore
	MainGroups   []scoring.GroupScore
	Overall      scoring.GroupScore
	Completion   float64
}

// Score recomputes the full report from stored data. Pure computation over
// the loaded aggregate; nothing is written.
func (s *AssessmentService) Score(ctx context.Context, id uuid.UUID) (*ScoreReport, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*ScoreReport, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		tpl, err := s.templates.GetByID(txCtx, entity.TemplateID)
		if err != nil {
			return nil, err
		}
		sc, err := s.scales.GetByDomain(txCtx, string(entity.Domain))
		if err != nil {
			return nil, err
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		paths, names, err := s.catalogs.GroupPaths(txCtx, entity.Domain)
		if err != nil {
			return nil, err
		}

		items := buildRatedItems(entity, tpl, paths, names)
		groups, err := scoring.Aggregate(items, sc)
		if err != nil {
			return nil, err
		}
		overall, err := scoring.Overall(items, sc)
		if err != nil {
			return nil, err
		}

		report := &ScoreReport{
			AssessmentID: entity.ID,
			Domain:       entity.Domain,
			EmployeeID:   entity.EmployeeID,
			Status:       entity.Status,
			Groups:       groups,
			Overall:      overall,
			Completion:   scoring.Completion(items),
		}
		if entity.Domain.HierarchyDepth() == 2 {
			mainGroups, err := scoring.AggregateByMainGroup(items, sc)
			if err != nil {
				return nil, err
			}
			report.MainGroups = mainGroups
		}
		for _, item := range items {
			rating := entity.Ratings[item.ItemID]
			report.Items = append(report.Items, ItemScore{
				ItemID:    item.ItemID,
				Name:      item.ItemName,
				GroupPath: item.GroupPath,
				Required:  item.Required,
				Actual:    item.Actual,
				Gap:       item.Gap(),
				Notes:     rating.Notes,
				Rated:     item.Rated,
			})
		}
		return report, nil
	})
}

func buildRatedItems(
	entity *assessment.Assessment,
	tpl *template.Template,
	paths map[uint][]string,
	names map[uint]string,
) []scoring.RatedItem {
	itemIDs := make([]uint, 0, len(tpl.Ratings))
	for itemID := range tpl.Ratings {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	items := make([]scoring.RatedItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		rating := entity.Ratings[itemID]
		items = append(items, scoring.RatedItem{
			ItemID:    itemID,
			ItemName:  names[itemID],
			GroupPath: paths[itemID],
			Required:  tpl.Ratings[itemID],
			Actual:    rating.Actual,
			Rated:     rating.Rated,
		})
	}
	return items
}
