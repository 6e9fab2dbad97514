// Package aggregate derives the dashboard numbers from a record collection.
// Every function here is a pure pass over its input: no shared state, total
// over the empty set, and no NaN or Infinity ever comes out.
package aggregate

import (
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/rank"
)

type Metrics struct {
	TotalJobs       int `json:"total_jobs"`
	UniqueCompanies int `json:"unique_companies"`
	EasyApplyJobs   int `json:"easy_apply_jobs"`
	RecentJobs      int `json:"recent_jobs"`
}

// recentWindowDays bounds the "recent" predicate shared by the metrics and
// the per-category stats.
const recentWindowDays = 7

func isRecent(j domain.JobRecord) bool {
	return j.DaysAgo != nil && *j.DaysAgo <= recentWindowDays
}

// CalculateMetrics computes the headline counters. Company uniqueness is
// case-sensitive exact-string identity.
func CalculateMetrics(jobs []domain.JobRecord) Metrics {
	m := Metrics{TotalJobs: len(jobs)}

	companies := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		companies[j.Company] = struct{}{}
		if rank.HasEasyApply(j) {
			m.EasyApplyJobs++
		}
		if isRecent(j) {
			m.RecentJobs++
		}
	}
	m.UniqueCompanies = len(companies)
	return m
}
