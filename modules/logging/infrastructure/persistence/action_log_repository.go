package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/skillbase-io/skillbase/modules/logging/domain/entities/actionlog"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

const (
	actionLogFindQuery  = `SELECT id, actor, action, entity_type, entity_id, payload, created_at FROM action_logs`
	actionLogCountQuery = `SELECT COUNT(*) FROM action_logs`
)

type ActionLogRepository struct{}

func NewActionLogRepository() actionlog.Repository {
	return &ActionLogRepository{}
}

func buildFilters(params *actionlog.FindParams) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	if params == nil {
		return "", nil
	}
	if params.Action != "" {
		args = append(args, params.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if params.EntityType != "" {
		args = append(args, params.EntityType)
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if params.EntityID != "" {
		args = append(args, params.EntityID)
		conditions = append(conditions, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if params.To != nil {
		args = append(args, *params.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	where := " WHERE " + conditions[0]
	for _, condition := range conditions[1:] {
		where += " AND " + condition
	}
	return where, args
}

func (r *ActionLogRepository) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	where, args := buildFilters(params)
	query := actionLogFindQuery + where + " ORDER BY created_at DESC"
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var logs []*actionlog.ActionLog
	for rows.Next() {
		var entry actionlog.ActionLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Actor,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan action log row")
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return logs, nil
}

func (r *ActionLogRepository) Count(ctx context.Context, params *actionlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	where, args := buildFilters(params)
	var count int64
	if err := tx.QueryRow(ctx, actionLogCountQuery+where, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count action logs")
	}
	return count, nil
}

func (r *ActionLogRepository) Create(ctx context.Context, log *actionlog.ActionLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	payload := log.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return tx.QueryRow(
		ctx,
		`INSERT INTO action_logs (actor, action, entity_type, entity_id, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		log.Actor, log.Action, log.EntityType, log.EntityID, payload, log.CreatedAt,
	).Scan(&log.ID)
}
