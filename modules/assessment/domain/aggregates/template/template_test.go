package template

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
)

func TestGradesOverlap(t *testing.T) {
	require.True(t, GradesOverlap([]string{"G4", "G5"}, []string{"G5", "G6"}))
	require.False(t, GradesOverlap([]string{"G4", "G5"}, []string{"G6", "G7"}))
	require.False(t, GradesOverlap(nil, []string{"G6"}))
	require.False(t, GradesOverlap([]string{"G4"}, nil))
}

func TestCoversGrade(t *testing.T) {
	tpl := New(catalog.DomainCore, 1, []string{"G4", "G5"}, map[uint]int{1: 3})
	require.True(t, tpl.CoversGrade("G4"))
	require.False(t, tpl.CoversGrade("G6"))
}

func TestRatingsSkeleton(t *testing.T) {
	tpl := New(catalog.DomainCore, 1, []string{"G4"}, map[uint]int{1: 3, 2: 2})
	skeleton := tpl.RatingsSkeleton()
	require.Len(t, skeleton, 2)
	for _, level := range skeleton {
		require.Zero(t, level)
	}
}

func TestCreateDTO_Validation(t *testing.T) {
	valid := &CreateDTO{
		Domain:      "core",
		PositionID:  1,
		GradeLevels: []string{"G5"},
		Ratings:     map[uint]int{1: 3},
	}
	errs, ok := valid.Ok()
	require.True(t, ok)
	require.Nil(t, errs)

	tests := []struct {
		name   string
		mutate func(*CreateDTO)
	}{
		{"unknown domain", func(d *CreateDTO) { d.Domain = "technical" }},
		{"missing position", func(d *CreateDTO) { d.PositionID = 0 }},
		{"empty grade levels", func(d *CreateDTO) { d.GradeLevels = []string{} }},
		{"empty ratings", func(d *CreateDTO) { d.Ratings = map[uint]int{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := &CreateDTO{
				Domain:      "core",
				PositionID:  1,
				GradeLevels: []string{"G5"},
				Ratings:     map[uint]int{1: 3},
			}
			tt.mutate(dto)
			_, ok := dto.Ok()
			require.False(t, ok)
		})
	}
}

func TestCreateDTO_NormalizesDomain(t *testing.T) {
	dto := &CreateDTO{
		Domain:      "  Core ",
		PositionID:  1,
		GradeLevels: []string{" G5 "},
		Ratings:     map[uint]int{1: 3},
	}
	_, ok := dto.Ok()
	require.True(t, ok)
	require.Equal(t, "core", dto.Domain)
	require.Equal(t, []string{"G5"}, dto.GradeLevels)
}

func TestUpdateDTO_Apply_ReplacesWholesale(t *testing.T) {
	tpl := New(catalog.DomainCore, 1, []string{"G4", "G5"}, map[uint]int{1: 3, 2: 2})
	dto := &UpdateDTO{
		GradeLevels: []string{"G6"},
		Ratings:     map[uint]int{3: 1},
	}
	dto.Apply(tpl)
	require.Equal(t, []string{"G6"}, tpl.GradeLevels)
	require.Equal(t, map[uint]int{3: 1}, tpl.Ratings)
	require.False(t, tpl.HasItem(1))
}
