package aggregate

import "jobmarket-engine/internal/domain"

// Snapshot is the full derived view of one record collection. It is a pure
// function of its input: recompute on every ingestion, no incremental path.
type Snapshot struct {
	Metrics            Metrics                 `json:"metrics"`
	CategoryStats      map[string]CategoryStat `json:"categoryStats"`
	TopOpportunities   []TopOpportunity        `json:"topOpportunities"`
	TechnologyInsights []TechnologyInsight     `json:"technologyInsights"`
	Recommendations    []string                `json:"recommendations"`
}

func BuildSnapshot(jobs []domain.JobRecord) Snapshot {
	return Snapshot{
		Metrics:            CalculateMetrics(jobs),
		CategoryStats:      CalculateCategoryStats(jobs),
		TopOpportunities:   CalculateTopOpportunities(jobs),
		TechnologyInsights: CalculateTechnologyInsights(jobs),
		Recommendations:    GenerateRecommendations(jobs),
	}
}
