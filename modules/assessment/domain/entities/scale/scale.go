package scale

import (
	"sort"

	"github.com/skillbase-io/skillbase/pkg/serrors"
)

// Level is one ordinal rating step. Level sets are domain specific and are
// not guaranteed to be contiguous or to start at 0 or 1.
type Level struct {
	Value       int
	Description string
}

// GradeBand maps a percentage range to a qualitative letter. Band bounds are
// whole percents; together the bands of a scale must partition [0,100].
type GradeBand struct {
	Letter      string
	MinPercent  int
	MaxPercent  int
	Description string
}

// Scale is one domain's rating configuration: the level set shared by
// required and actual ratings, plus the grade band table.
type Scale struct {
	Domain string
	Levels []Level
	Bands  []GradeBand
}

func NewConfigurationError(message string) *serrors.BaseError {
	return serrors.NewError("SCALE_NOT_CONFIGURED", message, "Assessment.Errors.ScaleNotConfigured")
}

// Validate checks that the band table fully and exclusively covers [0,100].
// A misconfigured scale is a setup error, never a silent default at
// resolution time.
func (s *Scale) Validate() error {
	if len(s.Levels) == 0 {
		return NewConfigurationError("scale has no rating levels")
	}
	seen := make(map[int]struct{}, len(s.Levels))
	for _, level := range s.Levels {
		if _, ok := seen[level.Value]; ok {
			return NewConfigurationError("duplicate rating level")
		}
		seen[level.Value] = struct{}{}
	}

	if len(s.Bands) == 0 {
		return NewConfigurationError("scale has no grade bands")
	}
	bands := make([]GradeBand, len(s.Bands))
	copy(bands, s.Bands)
	sort.Slice(bands, func(i, j int) bool { return bands[i].MinPercent < bands[j].MinPercent })

	for _, band := range bands {
		if band.MinPercent > band.MaxPercent {
			return NewConfigurationError("grade band has min above max")
		}
	}
	if bands[0].MinPercent != 0 {
		return NewConfigurationError("grade bands do not start at 0")
	}
	if bands[len(bands)-1].MaxPercent != 100 {
		return NewConfigurationError("grade bands do not end at 100")
	}
	for i := 1; i < len(bands); i++ {
		prev, cur := bands[i-1], bands[i]
		if cur.MinPercent <= prev.MaxPercent {
			return NewConfigurationError("grade bands overlap")
		}
		if cur.MinPercent != prev.MaxPercent+1 {
			return NewConfigurationError("grade bands leave a gap")
		}
	}
	return nil
}

// ResolveGrade returns the band containing percentage. Bands are declared
// with whole-percent bounds, so each band effectively covers
// [MinPercent, nextMinPercent) and the top band is closed at 100.
// Percentages above 100 (actual exceeding required) resolve to the top band.
func (s *Scale) ResolveGrade(percentage float64) (GradeBand, error) {
	if err := s.Validate(); err != nil {
		return GradeBand{}, err
	}
	if percentage < 0 {
		return GradeBand{}, NewConfigurationError("percentage below 0 cannot be graded")
	}
	if percentage > 100 {
		percentage = 100
	}

	bands := make([]GradeBand, len(s.Bands))
	copy(bands, s.Bands)
	sort.Slice(bands, func(i, j int) bool { return bands[i].MinPercent < bands[j].MinPercent })

	for i, band := range bands {
		upper := float64(band.MaxPercent)
		if i+1 < len(bands) {
			// fractional values between integer bounds fall into the
			// lower band: [Min, nextMin)
			if percentage >= float64(band.MinPercent) && percentage < float64(bands[i+1].MinPercent) {
				return band, nil
			}
			continue
		}
		if percentage >= float64(band.MinPercent) && percentage <= upper {
			return band, nil
		}
	}
	return GradeBand{}, NewConfigurationError("no grade band matches percentage")
}
