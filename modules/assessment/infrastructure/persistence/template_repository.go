package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

const (
	templateFindQuery = `SELECT id, domain, position_id, created_at, updated_at FROM assessment_templates`

	templateGradeLevelsQuery = `SELECT grade_level FROM template_grade_levels WHERE template_id = $1 ORDER BY grade_level`
	templateRatingsQuery     = `SELECT item_id, required_level FROM template_ratings WHERE template_id = $1`
)

type TemplateRepository struct{}

func NewTemplateRepository() template.Repository {
	return &TemplateRepository{}
}

func (r *TemplateRepository) GetAll(ctx context.Context, params *template.FindParams) ([]*template.Template, error) {
	query := templateFindQuery
	args := []interface{}{}
	where := ""
	if params != nil {
		if params.Domain != "" {
			args = append(args, string(params.Domain))
			where = " WHERE domain = $1"
		}
		if params.PositionID != 0 {
			args = append(args, params.PositionID)
			if where == "" {
				where = " WHERE position_id = $1"
			} else {
				where += " AND position_id = $2"
			}
		}
	}
	query += where + " ORDER BY created_at DESC"
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}
	return r.queryTemplates(ctx, query, args...)
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	templates, err := r.queryTemplates(ctx, templateFindQuery+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, template.ErrNotFound
	}
	return templates[0], nil
}

func (r *TemplateRepository) GetByPositionGrade(ctx context.Context, domain catalog.Domain, positionID uint, gradeLevel string) (*template.Template, error) {
	query := templateFindQuery + `
		WHERE id IN (
			SELECT template_id FROM template_grade_levels
			WHERE domain = $1 AND position_id = $2 AND grade_level = $3
		)`
	templates, err := r.queryTemplates(ctx, query, string(domain), positionID, gradeLevel)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, template.ErrNotFound
	}
	return templates[0], nil
}

func (r *TemplateRepository) FindOverlapping(ctx context.Context, domain catalog.Domain, positionID uint, gradeLevels []string, excludeID *uuid.UUID) ([]*template.Template, error) {
	query := templateFindQuery + `
		WHERE id IN (
			SELECT template_id FROM template_grade_levels
			WHERE domain = $1 AND position_id = $2 AND grade_level = ANY($3)
		)`
	args := []interface{}{string(domain), positionID, gradeLevels}
	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}
	return r.queryTemplates(ctx, query, args...)
}

func (r *TemplateRepository) GradeLevelsForPosition(ctx context.Context, domain catalog.Domain, positionID uint) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(
		ctx,
		`SELECT grade_level FROM template_grade_levels WHERE domain = $1 AND position_id = $2 ORDER BY grade_level`,
		string(domain), positionID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query grade levels")
	}
	defer rows.Close()

	var levels []string
	for rows.Next() {
		var level string
		if err := rows.Scan(&level); err != nil {
			return nil, errors.Wrap(err, "failed to scan grade level")
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return levels, nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *template.Template) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO assessment_templates (id, domain, position_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, string(t.Domain), t.PositionID, t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return errors.Wrap(err, "failed to insert template")
	}
	return r.insertChildren(ctx, t)
}

// Update replaces grade levels and ratings wholesale; the unique
// (domain, position, grade) constraint re-checks overlap on insert.
func (r *TemplateRepository) Update(ctx context.Context, t *template.Template) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(
		ctx,
		`UPDATE assessment_templates SET domain = $1, position_id = $2, updated_at = $3 WHERE id = $4`,
		string(t.Domain), t.PositionID, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update template")
	}
	if tag.RowsAffected() == 0 {
		return template.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM template_grade_levels WHERE template_id = $1`, t.ID); err != nil {
		return errors.Wrap(err, "failed to clear grade levels")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM template_ratings WHERE template_id = $1`, t.ID); err != nil {
		return errors.Wrap(err, "failed to clear template ratings")
	}
	return r.insertChildren(ctx, t)
}

func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, `DELETE FROM assessment_templates WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete template")
	}
	if tag.RowsAffected() == 0 {
		return template.ErrNotFound
	}
	return nil
}

func (r *TemplateRepository) insertChildren(ctx context.Context, t *template.Template) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	for _, gradeLevel := range t.GradeLevels {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO template_grade_levels (template_id, domain, position_id, grade_level) VALUES ($1, $2, $3, $4)`,
			t.ID, string(t.Domain), t.PositionID, gradeLevel,
		); err != nil {
			return mapUniqueViolation(errors.Wrap(err, "failed to insert grade level"))
		}
	}
	for itemID, required := range t.Ratings {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO template_ratings (template_id, item_id, required_level) VALUES ($1, $2, $3)`,
			t.ID, itemID, required,
		); err != nil {
			return errors.Wrap(err, "failed to insert template rating")
		}
	}
	return nil
}

func (r *TemplateRepository) queryTemplates(ctx context.Context, query string, args ...interface{}) ([]*template.Template, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var templates []*template.Template
	for rows.Next() {
		var t template.Template
		var domain string
		if err := rows.Scan(&t.ID, &domain, &t.PositionID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan template row")
		}
		t.Domain = catalog.Domain(domain)
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	for _, t := range templates {
		if err := r.loadChildren(ctx, t); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (r *TemplateRepository) loadChildren(ctx context.Context, t *template.Template) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, templateGradeLevelsQuery, t.ID)
	if err != nil {
		return errors.Wrap(err, "failed to query grade levels")
	}
	defer rows.Close()
	for rows.Next() {
		var level string
		if err := rows.Scan(&level); err != nil {
			return errors.Wrap(err, "failed to scan grade level")
		}
		t.GradeLevels = append(t.GradeLevels, level)
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "row iteration error")
	}

	ratingRows, err := tx.Query(ctx, templateRatingsQuery, t.ID)
	if err != nil {
		return errors.Wrap(err, "failed to query template ratings")
	}
	defer ratingRows.Close()
	t.Ratings = make(map[uint]int)
	for ratingRows.Next() {
		var itemID uint
		var required int
		if err := ratingRows.Scan(&itemID, &required); err != nil {
			return errors.Wrap(err, "failed to scan template rating")
		}
		t.Ratings[itemID] = required
	}
	if err := ratingRows.Err(); err != nil {
		return errors.Wrap(err, "row iteration error")
	}
	return nil
}
