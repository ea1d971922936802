package assessment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/pkg/constants"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

type RatingDTO struct {
	Actual int    `json:"actual" validate:"gte=0"`
	Notes  string `json:"notes"`
}

type CreateDTO struct {
	Domain     string    `json:"domain" validate:"required,oneof=behavioral core leadership"`
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
}

type SaveDraftDTO struct {
	Ratings map[uint]RatingDTO `json:"ratings" validate:"required"`
}

func fieldLocaleKey(field string) string {
	return fmt.Sprintf("Assessment.Fields.%s", field)
}

func (d *CreateDTO) Normalize() {
	d.Domain = strings.TrimSpace(strings.ToLower(d.Domain))
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs, err := serrors.Validate(constants.Validate, d, fieldLocaleKey)
	if err != nil {
		return serrors.ValidationErrors{"_": serrors.NewError("VALIDATION_FAILED", err.Error(), "")}, false
	}
	return errs, errs == nil
}

func (d *SaveDraftDTO) Ok() (serrors.ValidationErrors, bool) {
	errs, err := serrors.Validate(constants.Validate, d, fieldLocaleKey)
	if err != nil {
		return serrors.ValidationErrors{"_": serrors.NewError("VALIDATION_FAILED", err.Error(), "")}, false
	}
	return errs, errs == nil
}

// ToRatings converts the transport shape into domain ratings.
func (d *SaveDraftDTO) ToRatings() map[uint]Rating {
	ratings := make(map[uint]Rating, len(d.Ratings))
	for itemID, r := range d.Ratings {
		ratings[itemID] = Rating{Actual: r.Actual, Notes: r.Notes, Rated: true}
	}
	return ratings
}
