package scale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validScale() *Scale {
	return &Scale{
		Domain: "core",
		Levels: []Level{{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}},
		Bands: []GradeBand{
			{Letter: "D", MinPercent: 0, MaxPercent: 59},
			{Letter: "C", MinPercent: 60, MaxPercent: 74},
			{Letter: "B", MinPercent: 75, MaxPercent: 89},
			{Letter: "A", MinPercent: 90, MaxPercent: 100},
		},
	}
}

func TestScale_Validate(t *testing.T) {
	require.NoError(t, validScale().Validate())
}

func TestScale_Validate_Misconfigurations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scale)
	}{
		{"no levels", func(s *Scale) { s.Levels = nil }},
		{"duplicate level", func(s *Scale) { s.Levels = append(s.Levels, Level{Value: 2}) }},
		{"no bands", func(s *Scale) { s.Bands = nil }},
		{"does not start at 0", func(s *Scale) { s.Bands[0].MinPercent = 5 }},
		{"does not end at 100", func(s *Scale) { s.Bands[3].MaxPercent = 99 }},
		{"gap between bands", func(s *Scale) { s.Bands[1].MinPercent = 61 }},
		{"overlapping bands", func(s *Scale) { s.Bands[1].MinPercent = 59 }},
		{"min above max", func(s *Scale) { s.Bands[1].MinPercent = 80; s.Bands[1].MaxPercent = 74 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScale()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), "SCALE_NOT_CONFIGURED")
		})
	}
}

func TestScale_ResolveGrade(t *testing.T) {
	s := validScale()

	tests := []struct {
		percentage float64
		letter     string
	}{
		{0, "D"},
		{59, "D"},
		{59.9, "D"},
		{60, "C"},
		{74.99, "C"},
		{75, "B"},
		{83.33, "B"},
		{89.5, "B"},
		{90, "A"},
		{100, "A"},
		{112.5, "A"}, // actual above required clamps into the top band
	}
	for _, tt := range tests {
		band, err := s.ResolveGrade(tt.percentage)
		require.NoError(t, err)
		require.Equal(t, tt.letter, band.Letter, "percentage %.2f", tt.percentage)
	}
}

func TestScale_ResolveGrade_NegativePercentage(t *testing.T) {
	_, err := validScale().ResolveGrade(-1)
	require.Error(t, err)
}

func TestScale_ResolveGrade_InvalidScale(t *testing.T) {
	s := validScale()
	s.Bands = s.Bands[:2]
	_, err := s.ResolveGrade(50)
	require.Error(t, err)
	require.Contains(t, err.Error(), "SCALE_NOT_CONFIGURED")
}
