package aggregate

import (
	"sort"
	"strings"

	"jobmarket-engine/internal/domain"
)

type TechnologyInsight struct {
	Technology string `json:"technology"`
	Count      int    `json:"count"`
}

// Fixed technology dictionary, ordered so equal counts keep a stable output
// order. Counts sum per keyword: a title hitting two keywords of the same
// technology counts twice.
var techKeywords = []struct {
	name     string
	keywords []string
}{
	{"React", []string{"react", "reactjs", "react.js"}},
	{"Python", []string{"python"}},
	{"JavaScript", []string{"javascript", "js", "node", "nodejs"}},
	{"Java", []string{"java"}},
	{"PHP", []string{"php"}},
	{"Angular", []string{"angular"}},
	{"Vue", []string{"vue"}},
	{"TypeScript", []string{"typescript", "ts"}},
	{"SQL", []string{"sql", "mysql", "postgresql"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"Docker", []string{"docker"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"DevOps", []string{"devops"}},
	{"Data Science", []string{"machine learning", "ml", "ai", "tensorflow", "pytorch"}},
	{"CSS/HTML", []string{"html", "css", "sass", "scss", "bootstrap"}},
}

// CalculateTechnologyInsights counts keyword hits against lower-cased titles
// and returns one entry per technology with at least one hit, most demanded
// first.
func CalculateTechnologyInsights(jobs []domain.JobRecord) []TechnologyInsight {
	var out []TechnologyInsight
	for _, tech := range techKeywords {
		count := 0
		for _, kw := range tech.keywords {
			for _, j := range jobs {
				if strings.Contains(strings.ToLower(j.Title), kw) {
					count++
				}
			}
		}
		if count > 0 {
			out = append(out, TechnologyInsight{Technology: tech.name, Count: count})
		}
	}

	sort.SliceStable(out, func(i, k int) bool { return out[i].Count > out[k].Count })
	return out
}
