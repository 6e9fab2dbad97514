package httpapi

import (
	"jobmarket-engine/internal/aggregate"
	"jobmarket-engine/internal/chart"
	"jobmarket-engine/internal/domain"
)

// InsightsResponse is the full derived view plus presentation-ready chart
// series (category and technology demand, capped and colored).
type InsightsResponse struct {
	aggregate.Snapshot
	Charts struct {
		Categories   chart.Series `json:"categories"`
		Technologies chart.Series `json:"technologies"`
	} `json:"charts"`
}

func buildInsights(jobs []domain.JobRecord, maxItems int) InsightsResponse {
	resp := InsightsResponse{Snapshot: aggregate.BuildSnapshot(jobs)}

	// Category counts in first-seen order so chart tie-breaks are stable.
	index := make(map[string]int, 16)
	var cats []chart.Entry
	for _, j := range jobs {
		i, ok := index[j.Category]
		if !ok {
			i = len(cats)
			index[j.Category] = i
			cats = append(cats, chart.Entry{Label: j.Category})
		}
		cats[i].Value++
	}
	resp.Charts.Categories = chart.PrepareSeries(cats, maxItems)

	techs := make([]chart.Entry, 0, len(resp.TechnologyInsights))
	for _, t := range resp.TechnologyInsights {
		techs = append(techs, chart.Entry{Label: t.Technology, Value: t.Count})
	}
	resp.Charts.Technologies = chart.PrepareSeries(techs, maxItems)

	return resp
}
