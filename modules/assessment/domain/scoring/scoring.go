package scoring

import (
	"strings"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
)

// RatedItem pairs a catalog item's required level with the recorded actual
// level. GroupPath has one element for flat domains and two (main group,
// child group) for leadership.
type RatedItem struct {
	ItemID    uint
	ItemName  string
	GroupPath []string
	Required  int
	Actual    int
	// Rated marks items the assessor has touched at all; it feeds the
	// completion metric, not the percentage.
	Rated bool
}

// Gap is actual minus required for a single item: positive exceeds the
// requirement, negative is a shortfall. It is informational only and never
// feeds the percentage or grade.
func (i RatedItem) Gap() int {
	return i.Actual - i.Required
}

// GroupScore is the roll-up of one group (or of the whole assessment).
type GroupScore struct {
	Key           string
	GroupPath     []string
	RequiredTotal int
	ActualTotal   int
	Percentage    float64
	Grade         scale.GradeBand
}

// GroupKey joins the path segments into a stable map key.
func GroupKey(path []string) string {
	return strings.Join(path, " / ")
}

// percentage computes actual/required*100 with the required-zero rule:
// an empty requirement always scores 0, never a division error.
func percentage(requiredTotal, actualTotal int) float64 {
	if requiredTotal == 0 {
		return 0
	}
	return float64(actualTotal) / float64(requiredTotal) * 100
}

// Aggregate rolls items up by their full group path. Group order follows
// first appearance in items.
func Aggregate(items []RatedItem, sc *scale.Scale) ([]GroupScore, error) {
	return aggregateBy(items, sc, func(item RatedItem) []string {
		return item.GroupPath
	})
}

// AggregateByMainGroup rolls two-level items up by their main group alone.
func AggregateByMainGroup(items []RatedItem, sc *scale.Scale) ([]GroupScore, error) {
	return aggregateBy(items, sc, func(item RatedItem) []string {
		if len(item.GroupPath) == 0 {
			return nil
		}
		return item.GroupPath[:1]
	})
}

func aggregateBy(items []RatedItem, sc *scale.Scale, keyFn func(RatedItem) []string) ([]GroupScore, error) {
	index := make(map[string]int)
	var scores []GroupScore
	for _, item := range items {
		path := keyFn(item)
		key := GroupKey(path)
		i, ok := index[key]
		if !ok {
			i = len(scores)
			index[key] = i
			scores = append(scores, GroupScore{Key: key, GroupPath: path})
		}
		scores[i].RequiredTotal += item.Required
		scores[i].ActualTotal += item.Actual
	}

	for i := range scores {
		scores[i].Percentage = percentage(scores[i].RequiredTotal, scores[i].ActualTotal)
		grade, err := sc.ResolveGrade(scores[i].Percentage)
		if err != nil {
			return nil, err
		}
		scores[i].Grade = grade
	}
	return scores, nil
}

// Overall computes the assessment-wide score over the flat sum of all
// items' levels. It is deliberately NOT an average of group percentages.
func Overall(items []RatedItem, sc *scale.Scale) (GroupScore, error) {
	score := GroupScore{Key: "overall"}
	for _, item := range items {
		score.RequiredTotal += item.Required
		score.ActualTotal += item.Actual
	}
	score.Percentage = percentage(score.RequiredTotal, score.ActualTotal)
	grade, err := sc.ResolveGrade(score.Percentage)
	if err != nil {
		return GroupScore{}, err
	}
	score.Grade = grade
	return score, nil
}

// Completion is the fraction of items that have been rated at all,
// independent of whether the required level was met. It is a distinct
// metric from the percentage-of-required and must not be conflated with it.
func Completion(items []RatedItem) float64 {
	if len(items) == 0 {
		return 0
	}
	rated := 0
	for _, item := range items {
		if item.Rated {
			rated++
		}
	}
	return float64(rated) / float64(len(items)) * 100
}
