package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

const (
	employeeFindQuery = `SELECT id, name, job_title, grade_level, position_id, position_group, created_at, updated_at FROM employees`
)

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count employees")
	}
	return count, nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context, params *employee.FindParams) ([]*employee.Employee, error) {
	query := employeeFindQuery
	var args []interface{}
	var conditions []string
	if params != nil {
		if params.PositionID != 0 {
			args = append(args, params.PositionID)
			conditions = append(conditions, fmt.Sprintf("position_id = $%d", len(args)))
		}
		if params.GradeLevel != "" {
			args = append(args, params.GradeLevel)
			conditions = append(conditions, fmt.Sprintf("grade_level = $%d", len(args)))
		}
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	query += " ORDER BY name"
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}
	return r.queryEmployees(ctx, query, args...)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	employees, err := r.queryEmployees(ctx, employeeFindQuery+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, employee.ErrNotFound
	}
	return employees[0], nil
}

func (r *EmployeeRepository) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]*employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.JobTitle,
			&e.GradeLevel,
			&e.PositionID,
			&e.PositionGroup,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee row")
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return employees, nil
}
