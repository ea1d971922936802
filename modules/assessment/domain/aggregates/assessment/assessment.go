package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

var (
	ErrNotFound = serrors.NewError(
		"ASSESSMENT_NOT_FOUND",
		"assessment not found",
		"Assessment.Errors.NotFound",
	)
	ErrDuplicate = serrors.NewError(
		"DUPLICATE_ASSESSMENT",
		"the employee already has an assessment in this domain",
		"Assessment.Errors.DuplicateAssessment",
	)
	ErrUnknownItem = serrors.NewError(
		"VALIDATION_UNKNOWN_ITEM",
		"rating refers to an item outside the template",
		"Assessment.Errors.UnknownItem",
	)
)

// Rating is one recorded actual level plus free-form notes.
type Rating struct {
	Actual int
	Notes  string
	// Rated marks ratings the assessor has touched; a zero actual level
	// that was explicitly recorded still counts toward completion.
	Rated bool
}

// Assessment records the actual competency levels of one employee against
// one matched template. At most one assessment exists per (employee, domain).
type Assessment struct {
	ID             uuid.UUID
	Domain         catalog.Domain
	EmployeeID     uuid.UUID
	TemplateID     uuid.UUID
	Status         Status
	Ratings        map[uint]Rating
	AssessmentDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewFromTemplate snapshots the template's item set with zeroed actual
// levels and starts the workflow in DRAFT.
func NewFromTemplate(employeeID uuid.UUID, t *template.Template) *Assessment {
	ratings := make(map[uint]Rating, len(t.Ratings))
	for itemID := range t.Ratings {
		ratings[itemID] = Rating{}
	}
	now := time.Now()
	return &Assessment{
		ID:             uuid.New(),
		Domain:         t.Domain,
		EmployeeID:     employeeID,
		TemplateID:     t.ID,
		Status:         StatusDraft,
		Ratings:        ratings,
		AssessmentDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ApplyRatings merges the given ratings into the assessment. Every key must
// belong to the referenced template's item set; no other validation applies
// while drafting.
func (a *Assessment) ApplyRatings(t *template.Template, ratings map[uint]Rating) error {
	for itemID := range ratings {
		if !t.HasItem(itemID) {
			return ErrUnknownItem
		}
	}
	for itemID, rating := range ratings {
		rating.Rated = true
		a.Ratings[itemID] = rating
	}
	a.UpdatedAt = time.Now()
	return nil
}

// RatedCount returns how many items have been rated at all.
func (a *Assessment) RatedCount() int {
	count := 0
	for _, rating := range a.Ratings {
		if rating.Rated {
			count++
		}
	}
	return count
}
