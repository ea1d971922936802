package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/position"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

const (
	positionFindQuery = `SELECT id, name, description, created_at, updated_at FROM positions`
)

type PositionRepository struct{}

func NewPositionRepository() position.Repository {
	return &PositionRepository{}
}

func (r *PositionRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM positions`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count positions")
	}
	return count, nil
}

func (r *PositionRepository) GetAll(ctx context.Context) ([]*position.Position, error) {
	return r.queryPositions(ctx, positionFindQuery+" ORDER BY name")
}

func (r *PositionRepository) GetPaginated(ctx context.Context, params *position.FindParams) ([]*position.Position, error) {
	query := positionFindQuery + " ORDER BY name"
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}
	return r.queryPositions(ctx, query)
}

func (r *PositionRepository) GetByID(ctx context.Context, id uint) (*position.Position, error) {
	positions, err := r.queryPositions(ctx, positionFindQuery+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, position.ErrNotFound
	}
	return positions[0], nil
}

func (r *PositionRepository) Create(ctx context.Context, data *position.Position) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	return tx.QueryRow(
		ctx,
		`INSERT INTO positions (name, description, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		data.Name, data.Description, data.CreatedAt, data.UpdatedAt,
	).Scan(&data.ID)
}

func (r *PositionRepository) Update(ctx context.Context, data *position.Position) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(
		ctx,
		`UPDATE positions SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		data.Name, data.Description, data.UpdatedAt, data.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update position")
	}
	if tag.RowsAffected() == 0 {
		return position.ErrNotFound
	}
	return nil
}

func (r *PositionRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete position")
	}
	if tag.RowsAffected() == 0 {
		return position.ErrNotFound
	}
	return nil
}

func (r *PositionRepository) queryPositions(ctx context.Context, query string, args ...interface{}) ([]*position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var positions []*position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan position row")
		}
		positions = append(positions, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return positions, nil
}
