// Package classify assigns a best-effort category to a job title by ordered
// keyword matching. It is a heuristic, not a trained model.
package classify

import "strings"

type rule struct {
	label    string
	keywords []string
}

// Ordered: the first rule with any keyword hit wins, so "Senior Software
// Engineer / Data Analyst" is Software Engineer, never Data Science. Priority
// is positional; the keyword sets are not disjoint.
var rules = []rule{
	{"Software Engineer", []string{"software", "developer", "engineer"}},
	{"Design", []string{"design", "ui", "ux"}},
	{"Marketing", []string{"marketing", "seo", "social"}},
	{"Sales", []string{"sales", "business development"}},
	{"Data Science", []string{"data", "analyst"}},
	{"Customer Support", []string{"customer", "support"}},
	{"Administrative", []string{"assistant", "admin"}},
	{"Human Resources", []string{"hr", "recruiter", "talent"}},
	{"Content Creation", []string{"content", "writer", "editor"}},
	{"Video/Media", []string{"video", "media"}},
	{"Translation", []string{"translator", "interpreter"}},
	{"Finance/Accounting", []string{"finance", "accounting"}},
}

const (
	// DefaultCategory is used when no rule matches.
	DefaultCategory = "Other"

	// HeuristicConfidence is a fixed placeholder for title-derived records,
	// not a computed probability.
	HeuristicConfidence = 50
)

// Title classifies a job title and returns the category label with the fixed
// heuristic confidence.
func Title(title string) (category string, confidence float64) {
	t := strings.ToLower(title)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.label, HeuristicConfidence
			}
		}
	}
	return DefaultCategory, HeuristicConfidence
}
