// Package export writes job records back out in the 12-column CSV schema so a
// dataset survives a parse -> aggregate -> export round trip.
package export

import (
	"strconv"
	"strings"

	"jobmarket-engine/internal/domain"
)

// Header order matches the bulk dataset contract exactly.
var headers = []string{
	"company", "title", "location", "salary", "time_posted", "tags",
	"salary_min", "salary_max", "days_ago",
	"category", "category_confidence", "matched_keywords",
}

// CSV renders records as CSV text. Fields containing a comma, quote or
// newline are wrapped in double quotes with inner quotes doubled; nil numeric
// fields serialize as empty so a re-parse reconstructs the same nil, not 0.
func CSV(jobs []domain.JobRecord) string {
	rows := make([]string, 0, len(jobs)+1)
	rows = append(rows, strings.Join(headers, ","))

	for _, j := range jobs {
		fields := []string{
			j.Company, j.Title, j.Location, j.Salary, j.TimePosted, j.Tags,
			numberField(j.SalaryMin), numberField(j.SalaryMax), numberField(j.DaysAgo),
			j.Category, formatNumber(j.CategoryConfidence), j.MatchedKeywords,
		}
		for i, f := range fields {
			fields[i] = escapeField(f)
		}
		rows = append(rows, strings.Join(fields, ","))
	}
	return strings.Join(rows, "\n")
}

func escapeField(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func numberField(f *float64) string {
	if f == nil {
		return ""
	}
	return formatNumber(*f)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
