package aggregate

import (
	"math"
	"sort"

	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/rank"
)

type TopOpportunity struct {
	Rank     int     `json:"rank"`
	Company  string  `json:"company"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	DaysAgo  float64 `json:"days_ago"`
}

const topOpportunityCount = 10

// CalculateTopOpportunities scores every record and returns the ten best,
// ranked 1..10. The sort is stable so records with equal scores keep their
// input order. Scores are rounded to one decimal for display.
func CalculateTopOpportunities(jobs []domain.JobRecord) []TopOpportunity {
	scorer := rank.NewScorer(jobs)

	type scored struct {
		job   domain.JobRecord
		score float64
	}
	all := make([]scored, 0, len(jobs))
	for _, j := range jobs {
		all = append(all, scored{job: j, score: scorer.Score(j)})
	}

	sort.SliceStable(all, func(i, k int) bool { return all[i].score > all[k].score })

	n := topOpportunityCount
	if len(all) < n {
		n = len(all)
	}

	out := make([]TopOpportunity, 0, n)
	for i := 0; i < n; i++ {
		daysAgo := 0.0
		if all[i].job.DaysAgo != nil {
			daysAgo = *all[i].job.DaysAgo
		}
		out = append(out, TopOpportunity{
			Rank:     i + 1,
			Company:  all[i].job.Company,
			Title:    all[i].job.Title,
			Category: all[i].job.Category,
			Score:    math.Round(all[i].score*10) / 10,
			DaysAgo:  daysAgo,
		})
	}
	return out
}
