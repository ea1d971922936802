package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
	"github.com/skillbase-io/skillbase/pkg/composables"
)

const (
	scaleExistsQuery     = `SELECT 1 FROM scales WHERE domain = $1`
	scaleLevelsQuery     = `SELECT value, description FROM scale_levels WHERE domain = $1 ORDER BY value`
	scaleGradeBandsQuery = `SELECT letter, min_percent, max_percent, description FROM grade_bands WHERE domain = $1 ORDER BY min_percent`
)

type ScaleRepository struct{}

func NewScaleRepository() scale.Repository {
	return &ScaleRepository{}
}

func (r *ScaleRepository) GetByDomain(ctx context.Context, domain string) (*scale.Scale, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	var one int
	if err := tx.QueryRow(ctx, scaleExistsQuery, domain).Scan(&one); err != nil {
		return nil, scale.NewConfigurationError("no scale configured for domain " + domain)
	}

	result := &scale.Scale{Domain: domain}

	rows, err := tx.Query(ctx, scaleLevelsQuery, domain)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query scale levels")
	}
	defer rows.Close()
	for rows.Next() {
		var level scale.Level
		if err := rows.Scan(&level.Value, &level.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan scale level")
		}
		result.Levels = append(result.Levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	bandRows, err := tx.Query(ctx, scaleGradeBandsQuery, domain)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query grade bands")
	}
	defer bandRows.Close()
	for bandRows.Next() {
		var band scale.GradeBand
		if err := bandRows.Scan(&band.Letter, &band.MinPercent, &band.MaxPercent, &band.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan grade band")
		}
		result.Bands = append(result.Bands, band)
	}
	if err := bandRows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return result, nil
}

// Save replaces the domain's level set and band table wholesale. Callers
// validate the scale before saving.
func (r *ScaleRepository) Save(ctx context.Context, s *scale.Scale) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	upsert := `
		INSERT INTO scales (domain) VALUES ($1)
		ON CONFLICT (domain) DO UPDATE SET updated_at = now()
	`
	if _, err := tx.Exec(ctx, upsert, s.Domain); err != nil {
		return errors.Wrap(err, "failed to upsert scale")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM scale_levels WHERE domain = $1`, s.Domain); err != nil {
		return errors.Wrap(err, "failed to clear scale levels")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM grade_bands WHERE domain = $1`, s.Domain); err != nil {
		return errors.Wrap(err, "failed to clear grade bands")
	}

	for _, level := range s.Levels {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO scale_levels (domain, value, description) VALUES ($1, $2, $3)`,
			s.Domain, level.Value, level.Description,
		); err != nil {
			return errors.Wrap(err, "failed to insert scale level")
		}
	}
	for _, band := range s.Bands {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO grade_bands (domain, letter, min_percent, max_percent, description) VALUES ($1, $2, $3, $4, $5)`,
			s.Domain, band.Letter, band.MinPercent, band.MaxPercent, band.Description,
		); err != nil {
			return errors.Wrap(err, "failed to insert grade band")
		}
	}
	return nil
}
