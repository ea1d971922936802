package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
)

const (
	templateGradeConstraint      = "template_grade_levels_domain_position_grade_key"
	assessmentEmployeeConstraint = "assessments_domain_employee_key"
)

// mapUniqueViolation translates a unique-constraint violation into the
// matching domain duplicate sentinel. The services run an advisory
// pre-check, but under concurrent writers only the constraint fires; the
// caller still needs the duplicate error kind, not a generic database
// failure.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case templateGradeConstraint:
		return template.ErrDuplicate
	case assessmentEmployeeConstraint:
		return assessment.ErrDuplicate
	}
	return err
}
