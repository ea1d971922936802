package persistence

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestMapUniqueViolation(t *testing.T) {
	err := mapUniqueViolation(uniqueViolation(templateGradeConstraint))
	require.ErrorIs(t, err, template.ErrDuplicate)

	err = mapUniqueViolation(uniqueViolation(assessmentEmployeeConstraint))
	require.ErrorIs(t, err, assessment.ErrDuplicate)
}

func TestMapUniqueViolation_SeesThroughWrapping(t *testing.T) {
	// repositories wrap before mapping; the pg error must still be found
	wrapped := errors.Wrap(uniqueViolation(assessmentEmployeeConstraint), "failed to insert assessment")
	require.ErrorIs(t, mapUniqueViolation(wrapped), assessment.ErrDuplicate)
}

func TestMapUniqueViolation_Passthrough(t *testing.T) {
	other := uniqueViolation("assessment_ratings_pkey")
	require.Equal(t, other, mapUniqueViolation(other))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: assessmentEmployeeConstraint}
	require.Equal(t, fk, mapUniqueViolation(fk))

	plain := errors.New("connection reset")
	require.Equal(t, plain, mapUniqueViolation(plain))
}
