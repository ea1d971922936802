package template

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

var (
	ErrDuplicate = serrors.NewError(
		"DUPLICATE_TEMPLATE",
		"an active template already covers this position and grade level",
		"Assessment.Errors.DuplicateTemplate",
	)
	ErrNotFound = serrors.NewError(
		"TEMPLATE_NOT_FOUND",
		"no template matches the position and grade level",
		"Assessment.Errors.TemplateNotFound",
	)
)

// Template holds the required competency levels for one position across a
// set of grade levels. Editing replaces grade levels and ratings wholesale.
type Template struct {
	ID          uuid.UUID
	Domain      catalog.Domain
	PositionID  uint
	GradeLevels []string
	Ratings     map[uint]int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func New(domain catalog.Domain, positionID uint, gradeLevels []string, ratings map[uint]int) *Template {
	now := time.Now()
	return &Template{
		ID:          uuid.New(),
		Domain:      domain,
		PositionID:  positionID,
		GradeLevels: gradeLevels,
		Ratings:     ratings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CoversGrade reports whether the template applies to gradeLevel.
func (t *Template) CoversGrade(gradeLevel string) bool {
	for _, g := range t.GradeLevels {
		if g == gradeLevel {
			return true
		}
	}
	return false
}

// GradesOverlap reports whether two grade level sets intersect.
func GradesOverlap(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, g := range a {
		set[g] = struct{}{}
	}
	for _, g := range b {
		if _, ok := set[g]; ok {
			return true
		}
	}
	return false
}

// RatingsSkeleton returns the item set of the template with actual levels
// zeroed, ready to seed a new assessment.
func (t *Template) RatingsSkeleton() map[uint]int {
	skeleton := make(map[uint]int, len(t.Ratings))
	for itemID := range t.Ratings {
		skeleton[itemID] = 0
	}
	return skeleton
}

// HasItem reports whether itemID is part of the template's rated item set.
func (t *Template) HasItem(itemID uint) bool {
	_, ok := t.Ratings[itemID]
	return ok
}
