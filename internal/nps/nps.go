// Package nps computes Net Promoter Score aggregates.
package nps

import "fmt"

// Aggregate is derived from a set of scores and never stored.
type Aggregate struct {
	Promoters  int
	Detractors int
	Total      int
}

// Compute buckets scores into promoters (>= 9) and detractors (<= 6).
// Scores in between are passives and only count toward the total.
func Compute(scores []int) Aggregate {
	var a Aggregate
	for _, s := range scores {
		a.Total++
		switch {
		case s >= 9:
			a.Promoters++
		case s <= 6:
			a.Detractors++
		}
	}
	return a
}

// Score returns 100 * (promoters - detractors) / total, or 0 with no data.
func (a Aggregate) Score() float64 {
	if a.Total == 0 {
		return 0
	}
	return 100 * float64(a.Promoters-a.Detractors) / float64(a.Total)
}

// ScoreString formats the score to two decimal places.
func (a Aggregate) ScoreString() string {
	return fmt.Sprintf("%.2f", a.Score())
}
