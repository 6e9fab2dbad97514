package aggregate

import (
	"sort"

	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/rank"
)

type CategoryStat struct {
	JobCount       int     `json:"job_count"`
	AvgSalary      float64 `json:"avg_salary"`
	AvgMaxSalary   float64 `json:"avg_max_salary"`
	RecentJobs     int     `json:"recent_jobs"`
	EasyApplyCount int     `json:"easy_apply_count"`
	MedianSalary   float64 `json:"median_salary"`
}

type categoryGroup struct {
	name string
	jobs []domain.JobRecord
}

// groupByCategory buckets records by exact category string, preserving
// first-seen order so downstream tie-breaks stay deterministic.
func groupByCategory(jobs []domain.JobRecord) []categoryGroup {
	index := make(map[string]int, 16)
	var groups []categoryGroup
	for _, j := range jobs {
		i, ok := index[j.Category]
		if !ok {
			i = len(groups)
			index[j.Category] = i
			groups = append(groups, categoryGroup{name: j.Category})
		}
		groups[i].jobs = append(groups[i].jobs, j)
	}
	return groups
}

// CalculateCategoryStats computes the per-category aggregates. Salary figures
// consider only positive non-nil minimum salaries; a group without any stays
// at 0, not null. The median is the upper median: element floor(n/2) of the
// ascending sort. AvgMaxSalary mirrors AvgSalary; max-salary averaging never
// shipped and the field keeps the simplified value.
func CalculateCategoryStats(jobs []domain.JobRecord) map[string]CategoryStat {
	stats := make(map[string]CategoryStat, 16)
	for _, g := range groupByCategory(jobs) {
		stats[g.name] = statsForGroup(g.jobs)
	}
	return stats
}

func statsForGroup(jobs []domain.JobRecord) CategoryStat {
	st := CategoryStat{JobCount: len(jobs)}

	var salaries []float64
	for _, j := range jobs {
		if j.SalaryMin != nil && *j.SalaryMin > 0 {
			salaries = append(salaries, *j.SalaryMin)
		}
		if isRecent(j) {
			st.RecentJobs++
		}
		if rank.HasEasyApply(j) {
			st.EasyApplyCount++
		}
	}

	if len(salaries) > 0 {
		sum := 0.0
		for _, s := range salaries {
			sum += s
		}
		st.AvgSalary = sum / float64(len(salaries))

		sort.Float64s(salaries)
		st.MedianSalary = salaries[len(salaries)/2]
	}
	st.AvgMaxSalary = st.AvgSalary

	return st
}
