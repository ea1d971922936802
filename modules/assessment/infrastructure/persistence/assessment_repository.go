package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/composables"
	"github.com/skillbase-io/skillbase/pkg/mapping"
)

const (
	assessmentFindQuery = `SELECT id, domain, employee_id, template_id, status, assessment_date, created_at, updated_at FROM assessments`

	assessmentRatingsQuery = `SELECT item_id, actual_level, notes, rated FROM assessment_ratings WHERE assessment_id = $1`
)

type AssessmentRepository struct{}

func NewAssessmentRepository() assessment.Repository {
	return &AssessmentRepository{}
}

func (r *AssessmentRepository) GetAll(ctx context.Context, params *assessment.FindParams) ([]*assessment.Assessment, error) {
	query := assessmentFindQuery
	var args []interface{}
	var conditions []string
	if params != nil {
		if params.Domain != "" {
			args = append(args, string(params.Domain))
			conditions = append(conditions, fmt.Sprintf("domain = $%d", len(args)))
		}
		if params.EmployeeID != uuid.Nil {
			args = append(args, params.EmployeeID)
			conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
		}
		if params.Status != "" {
			args = append(args, string(params.Status))
			conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
		}
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	query += " ORDER BY created_at DESC"
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}
	return r.queryAssessments(ctx, query, args...)
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	assessments, err := r.queryAssessments(ctx, assessmentFindQuery+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, assessment.ErrNotFound
	}
	return assessments[0], nil
}

func (r *AssessmentRepository) GetByEmployeeDomain(ctx context.Context, employeeID uuid.UUID, domain catalog.Domain) (*assessment.Assessment, error) {
	query := assessmentFindQuery + " WHERE employee_id = $1 AND domain = $2"
	assessments, err := r.queryAssessments(ctx, query, employeeID, string(domain))
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, assessment.ErrNotFound
	}
	return assessments[0], nil
}

func (r *AssessmentRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO assessments (id, domain, employee_id, template_id, status, assessment_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, string(a.Domain), a.EmployeeID, a.TemplateID, string(a.Status), a.AssessmentDate, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return mapUniqueViolation(errors.Wrap(err, "failed to insert assessment"))
	}
	return r.insertRatings(ctx, a)
}

func (r *AssessmentRepository) UpdateRatings(ctx context.Context, a *assessment.Assessment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, `UPDATE assessments SET updated_at = $1 WHERE id = $2`, a.UpdatedAt, a.ID)
	if err != nil {
		return errors.Wrap(err, "failed to touch assessment")
	}
	if tag.RowsAffected() == 0 {
		return assessment.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM assessment_ratings WHERE assessment_id = $1`, a.ID); err != nil {
		return errors.Wrap(err, "failed to clear ratings")
	}
	return r.insertRatings(ctx, a)
}

// UpdateStatus is a compare-and-swap: the WHERE clause pins the expected
// current status, so a stale caller affects zero rows and gets false back.
func (r *AssessmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to assessment.Status) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(
		ctx,
		`UPDATE assessments SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to update status")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete assessment")
	}
	if tag.RowsAffected() == 0 {
		return assessment.ErrNotFound
	}
	return nil
}

func (r *AssessmentRepository) insertRatings(ctx context.Context, a *assessment.Assessment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	for itemID, rating := range a.Ratings {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO assessment_ratings (assessment_id, item_id, actual_level, notes, rated) VALUES ($1, $2, $3, $4, $5)`,
			a.ID, itemID, rating.Actual, mapping.ValueToSQLNullString(rating.Notes), rating.Rated,
		); err != nil {
			return errors.Wrap(err, "failed to insert rating")
		}
	}
	return nil
}

func (r *AssessmentRepository) queryAssessments(ctx context.Context, query string, args ...interface{}) ([]*assessment.Assessment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var assessments []*assessment.Assessment
	for rows.Next() {
		var a assessment.Assessment
		var domain, status string
		if err := rows.Scan(
			&a.ID,
			&domain,
			&a.EmployeeID,
			&a.TemplateID,
			&status,
			&a.AssessmentDate,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan assessment row")
		}
		a.Domain = catalog.Domain(domain)
		a.Status = assessment.Status(status)
		assessments = append(assessments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	for _, a := range assessments {
		if err := r.loadRatings(ctx, a); err != nil {
			return nil, err
		}
	}
	return assessments, nil
}

func (r *AssessmentRepository) loadRatings(ctx context.Context, a *assessment.Assessment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, assessmentRatingsQuery, a.ID)
	if err != nil {
		return errors.Wrap(err, "failed to query ratings")
	}
	defer rows.Close()

	a.Ratings = make(map[uint]assessment.Rating)
	for rows.Next() {
		var itemID uint
		var rating assessment.Rating
		var notes sql.NullString
		if err := rows.Scan(&itemID, &rating.Actual, &notes, &rating.Rated); err != nil {
			return errors.Wrap(err, "failed to scan rating")
		}
		rating.Notes = mapping.SQLNullStringToValue(notes)
		a.Ratings[itemID] = rating
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "row iteration error")
	}
	return nil
}
