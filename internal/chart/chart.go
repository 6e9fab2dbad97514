// Package chart reduces label/count data into capped, sorted series for the
// dashboard charts.
package chart

import "sort"

type Entry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Series is a presentation-ready pair of parallel arrays plus a color per
// slot. Its cardinality is capped; the underlying aggregate keeps the rest.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

const DefaultMaxItems = 8

// Fixed 8-color palette, cycled by index.
var palette = [8]string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#9c755f",
}

// PrepareSeries sorts entries descending by value and truncates to maxItems
// (DefaultMaxItems when <= 0). Ties keep the caller's iteration order; no
// secondary sort is imposed.
func PrepareSeries(entries []Entry, maxItems int) Series {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, k int) bool { return sorted[i].Value > sorted[k].Value })
	if len(sorted) > maxItems {
		sorted = sorted[:maxItems]
	}

	s := Series{
		Labels: make([]string, 0, len(sorted)),
		Values: make([]int, 0, len(sorted)),
		Colors: make([]string, 0, len(sorted)),
	}
	for i, e := range sorted {
		s.Labels = append(s.Labels, e.Label)
		s.Values = append(s.Values, e.Value)
		s.Colors = append(s.Colors, palette[i%len(palette)])
	}
	return s
}
