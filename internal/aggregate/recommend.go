package aggregate

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"jobmarket-engine/internal/domain"
)

const recommendedCategoryCount = 4

// GenerateRecommendations renders presentation text over the aggregates: one
// sentence per top category (salary figures only when known), then the fixed
// recency and easy-apply sentences. A thin formatter, not part of the
// aggregation contract.
func GenerateRecommendations(jobs []domain.JobRecord) []string {
	metrics := CalculateMetrics(jobs)
	groups := groupByCategory(jobs)

	sort.SliceStable(groups, func(i, k int) bool { return len(groups[i].jobs) > len(groups[k].jobs) })
	if len(groups) > recommendedCategoryCount {
		groups = groups[:recommendedCategoryCount]
	}

	var recs []string
	for _, g := range groups {
		st := statsForGroup(g.jobs)
		if st.AvgSalary > 0 {
			recs = append(recs, fmt.Sprintf(
				"Focus on %s - %d positions available (Avg: $%s/yr, Median: $%s/yr)",
				g.name, st.JobCount, humanize.Commaf(st.AvgSalary), humanize.Commaf(st.MedianSalary)))
		} else {
			recs = append(recs, fmt.Sprintf("Focus on %s - %d positions available", g.name, st.JobCount))
		}
	}

	recs = append(recs,
		fmt.Sprintf("Prioritize Recent Jobs - %d jobs posted in the last 7 days", metrics.RecentJobs),
		fmt.Sprintf("Use Easy Apply - %d jobs with simplified application process", metrics.EasyApplyJobs),
	)
	return recs
}
