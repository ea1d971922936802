package services

import (
	"errors"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
)

func isNotFound(err error) bool {
	return errors.Is(err, assessment.ErrNotFound) ||
		errors.Is(err, template.ErrNotFound) ||
		errors.Is(err, employee.ErrNotFound)
}
