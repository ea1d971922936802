package template

import (
	"fmt"
	"strings"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/pkg/constants"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

type CreateDTO struct {
	Domain      string       `json:"domain" validate:"required,oneof=behavioral core leadership"`
	PositionID  uint         `json:"position_id" validate:"required"`
	GradeLevels []string     `json:"grade_levels" validate:"required,min=1,dive,required"`
	Ratings     map[uint]int `json:"ratings" validate:"required,min=1"`
}

type UpdateDTO struct {
	GradeLevels []string     `json:"grade_levels" validate:"required,min=1,dive,required"`
	Ratings     map[uint]int `json:"ratings" validate:"required,min=1"`
}

func fieldLocaleKey(field string) string {
	return fmt.Sprintf("Assessment.Templates.Fields.%s", field)
}

func (d *CreateDTO) Normalize() {
	d.Domain = strings.TrimSpace(strings.ToLower(d.Domain))
	for i := range d.GradeLevels {
		d.GradeLevels[i] = strings.TrimSpace(d.GradeLevels[i])
	}
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs, err := serrors.Validate(constants.Validate, d, fieldLocaleKey)
	if err != nil {
		return serrors.ValidationErrors{"_": serrors.NewError("VALIDATION_FAILED", err.Error(), "")}, false
	}
	return errs, errs == nil
}

func (d *CreateDTO) ToEntity() *Template {
	return New(catalog.Domain(d.Domain), d.PositionID, d.GradeLevels, d.Ratings)
}

func (d *UpdateDTO) Normalize() {
	for i := range d.GradeLevels {
		d.GradeLevels[i] = strings.TrimSpace(d.GradeLevels[i])
	}
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs, err := serrors.Validate(constants.Validate, d, fieldLocaleKey)
	if err != nil {
		return serrors.ValidationErrors{"_": serrors.NewError("VALIDATION_FAILED", err.Error(), "")}, false
	}
	return errs, errs == nil
}

// Apply replaces the template's grade levels and ratings wholesale.
func (d *UpdateDTO) Apply(t *Template) {
	t.GradeLevels = d.GradeLevels
	t.Ratings = d.Ratings
}
