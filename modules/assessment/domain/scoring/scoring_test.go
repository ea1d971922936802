package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
)

func testScale() *scale.Scale {
	return &scale.Scale{
		Domain: "core",
		Levels: []scale.Level{{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}},
		Bands: []scale.GradeBand{
			{Letter: "D", MinPercent: 0, MaxPercent: 59},
			{Letter: "C", MinPercent: 60, MaxPercent: 74},
			{Letter: "B", MinPercent: 75, MaxPercent: 89},
			{Letter: "A", MinPercent: 90, MaxPercent: 100},
		},
	}
}

func TestAggregate_SingleGroup(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"Communication"}, Required: 5, Actual: 5, Rated: true},
		{ItemID: 2, GroupPath: []string{"Communication"}, Required: 5, Actual: 4, Rated: true},
		{ItemID: 3, GroupPath: []string{"Communication"}, Required: 5, Actual: 4, Rated: true},
		{ItemID: 4, GroupPath: []string{"Communication"}, Required: 5, Actual: 5, Rated: true},
	}

	scores, err := Aggregate(items, testScale())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, 20, scores[0].RequiredTotal)
	require.Equal(t, 18, scores[0].ActualTotal)
	require.InDelta(t, 90.0, scores[0].Percentage, 0.001)
	require.Equal(t, "A", scores[0].Grade.Letter)
}

func TestAggregate_PreservesFirstAppearanceOrder(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"Planning"}, Required: 3, Actual: 3},
		{ItemID: 2, GroupPath: []string{"Analysis"}, Required: 3, Actual: 2},
		{ItemID: 3, GroupPath: []string{"Planning"}, Required: 3, Actual: 1},
	}

	scores, err := Aggregate(items, testScale())
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Equal(t, "Planning", scores[0].Key)
	require.Equal(t, "Analysis", scores[1].Key)
	require.Equal(t, 6, scores[0].RequiredTotal)
	require.Equal(t, 4, scores[0].ActualTotal)
}

func TestAggregateByMainGroup(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"Leading Self", "Resilience"}, Required: 3, Actual: 3, Rated: true},
		{ItemID: 2, GroupPath: []string{"Leading Self", "Drive"}, Required: 3, Actual: 2, Rated: true},
		{ItemID: 3, GroupPath: []string{"Leading Others", "Coaching"}, Required: 6, Actual: 5, Rated: true},
		{ItemID: 4, GroupPath: []string{"Leading Others", "Delegation"}, Required: 6, Actual: 5, Rated: true},
	}

	scores, err := AggregateByMainGroup(items, testScale())
	require.NoError(t, err)
	require.Len(t, scores, 2)

	require.Equal(t, "Leading Self", scores[0].Key)
	require.Equal(t, 6, scores[0].RequiredTotal)
	require.Equal(t, 5, scores[0].ActualTotal)
	require.InDelta(t, 83.333, scores[0].Percentage, 0.001)
	require.Equal(t, "B", scores[0].Grade.Letter)

	require.Equal(t, "Leading Others", scores[1].Key)
	require.Equal(t, 12, scores[1].RequiredTotal)
	require.Equal(t, 10, scores[1].ActualTotal)
	require.InDelta(t, 83.333, scores[1].Percentage, 0.001)
}

func TestOverall_FlatSumsNotAverageOfGroups(t *testing.T) {
	// one small group at 100% and one large group at 50%: an average of
	// group percentages would say 75%, the flat sum says 60%
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"Small"}, Required: 2, Actual: 2},
		{ItemID: 2, GroupPath: []string{"Large"}, Required: 8, Actual: 4},
	}

	overall, err := Overall(items, testScale())
	require.NoError(t, err)
	require.Equal(t, 10, overall.RequiredTotal)
	require.Equal(t, 6, overall.ActualTotal)
	require.InDelta(t, 60.0, overall.Percentage, 0.001)
}

func TestAggregate_ZeroRequiredScoresZero(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"Optional"}, Required: 0, Actual: 3, Rated: true},
	}

	scores, err := Aggregate(items, testScale())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, 0.0, scores[0].Percentage)
	require.Equal(t, "D", scores[0].Grade.Letter)
}

func TestAggregate_ExceedingRequiredClampsToTopBand(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"Strength"}, Required: 4, Actual: 6, Rated: true},
	}

	scores, err := Aggregate(items, testScale())
	require.NoError(t, err)
	require.InDelta(t, 150.0, scores[0].Percentage, 0.001)
	require.Equal(t, "A", scores[0].Grade.Letter)
}

func TestRatedItem_Gap(t *testing.T) {
	require.Equal(t, -2, RatedItem{Required: 5, Actual: 3}.Gap())
	require.Equal(t, 1, RatedItem{Required: 2, Actual: 3}.Gap())
	require.Equal(t, 0, RatedItem{Required: 3, Actual: 3}.Gap())
}

func TestCompletion_DistinctFromPercentage(t *testing.T) {
	// all items rated at levels below required: completion is 100 even
	// though the score percentage is far below it
	items := []RatedItem{
		{ItemID: 1, GroupPath: []string{"G"}, Required: 5, Actual: 1, Rated: true},
		{ItemID: 2, GroupPath: []string{"G"}, Required: 5, Actual: 1, Rated: true},
	}
	require.Equal(t, 100.0, Completion(items))

	scores, err := Aggregate(items, testScale())
	require.NoError(t, err)
	require.InDelta(t, 20.0, scores[0].Percentage, 0.001)
}

func TestCompletion_PartialAndEmpty(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, Rated: true},
		{ItemID: 2, Rated: false},
		{ItemID: 3, Rated: true},
		{ItemID: 4, Rated: false},
	}
	require.Equal(t, 50.0, Completion(items))
	require.Equal(t, 0.0, Completion(nil))
}

func TestCompletion_ZeroActualStillCounts(t *testing.T) {
	items := []RatedItem{
		{ItemID: 1, Required: 3, Actual: 0, Rated: true},
	}
	require.Equal(t, 100.0, Completion(items))
}
