// Package rank scores job records for the top-opportunities list.
package rank

import (
	"math"
	"strings"

	"jobmarket-engine/internal/domain"
)

// Score components. Recency buckets are exclusive: only the tightest matching
// window pays out, no stacking.
const (
	bonusPostedToday    = 20 // daysAgo <= 1
	bonusPostedThisWeek = 15 // daysAgo <= 3
	bonusRecentWeek     = 10 // daysAgo <= 7
	bonusFortnight      = 5  // daysAgo <= 14

	bonusEasyApply = 15

	salaryBonusCap    = 20
	salaryBonusDiv    = 1000
	demandBonusWeight = 10
)

// Scorer holds the per-input category demand counts. Build one per record
// collection; the demand bonus depends on the whole input, not on a single
// record.
type Scorer struct {
	categoryCounts map[string]int
	maxCategory    int
}

func NewScorer(jobs []domain.JobRecord) *Scorer {
	counts := make(map[string]int, 16)
	max := 0
	for _, j := range jobs {
		counts[j.Category]++
		if counts[j.Category] > max {
			max = counts[j.Category]
		}
	}
	return &Scorer{categoryCounts: counts, maxCategory: max}
}

func (s *Scorer) Score(j domain.JobRecord) float64 {
	score := 0.0

	if j.DaysAgo != nil {
		switch d := *j.DaysAgo; {
		case d <= 1:
			score += bonusPostedToday
		case d <= 3:
			score += bonusPostedThisWeek
		case d <= 7:
			score += bonusRecentWeek
		case d <= 14:
			score += bonusFortnight
		}
	}

	if HasEasyApply(j) {
		score += bonusEasyApply
	}

	if j.SalaryMin != nil && *j.SalaryMin > 0 {
		score += math.Min(*j.SalaryMin/salaryBonusDiv, salaryBonusCap)
	}

	if s.maxCategory > 0 {
		score += float64(s.categoryCounts[j.Category]) / float64(s.maxCategory) * demandBonusWeight
	}

	return score
}

// HasEasyApply reports whether the record's tag text mentions the simplified
// application flow. Substring match on the raw tag line, not a boolean field.
func HasEasyApply(j domain.JobRecord) bool {
	return strings.Contains(strings.ToLower(j.Tags), "easy apply")
}
