package assessment

import (
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusCompleted
}

var ErrInvalidTransition = serrors.NewError(
	"WORKFLOW_INVALID_TRANSITION",
	"the assessment is not in a state that allows this transition",
	"Assessment.Errors.InvalidTransition",
)

// CanTransition encodes the whole workflow: DRAFT→COMPLETED on submit and
// COMPLETED→DRAFT on reopen. Deletion is allowed from either state and is
// not a transition.
func CanTransition(from, to Status) bool {
	switch {
	case from == StatusDraft && to == StatusCompleted:
		return true
	case from == StatusCompleted && to == StatusDraft:
		return true
	}
	return false
}

// SubmitPolicy gates the DRAFT→COMPLETED transition. Whether every template
// item must be rated differs between deployments, so it is configured, not
// hardcoded.
type SubmitPolicy struct {
	RequireFullCoverage bool
}

var ErrNothingRated = serrors.NewError(
	"VALIDATION_NOTHING_RATED",
	"at least one item must be rated before submitting",
	"Assessment.Errors.NothingRated",
)

var ErrIncompleteCoverage = serrors.NewError(
	"VALIDATION_INCOMPLETE_COVERAGE",
	"every template item must be rated before submitting",
	"Assessment.Errors.IncompleteCoverage",
)

// ValidateSubmit checks the policy's coverage gate against the template's
// item set.
func (p SubmitPolicy) ValidateSubmit(a *Assessment, t *template.Template) error {
	if a.RatedCount() == 0 {
		return ErrNothingRated
	}
	if p.RequireFullCoverage {
		for itemID := range t.Ratings {
			rating, ok := a.Ratings[itemID]
			if !ok || !rating.Rated {
				return ErrIncompleteCoverage
			}
		}
	}
	return nil
}
