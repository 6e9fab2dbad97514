package ingest

import (
	"strings"

	"jobmarket-engine/internal/domain"
)

// The 12-column dataset schema shared by the bulk loader, the upload path and
// the exporter. Header names drive numeric coercion; anything else stays a
// raw string.
const (
	colCompany         = "company"
	colTitle           = "title"
	colLocation        = "location"
	colSalary          = "salary"
	colTimePosted      = "time_posted"
	colTags            = "tags"
	colSalaryMin       = "salary_min"
	colSalaryMax       = "salary_max"
	colDaysAgo         = "days_ago"
	colCategory        = "category"
	colConfidence      = "category_confidence"
	colMatchedKeywords = "matched_keywords"
)

// ParseCSV parses dataset CSV text with the quote-aware splitter. Line 0 is
// the header row; every later non-blank line becomes one record, short rows
// padded with empty fields.
func ParseCSV(text string) []domain.JobRecord {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil
	}
	headers := SplitLine(lines[0])

	var out []domain.JobRecord
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, recordFromRow(headers, SplitLine(line)))
	}
	return out
}

// ParseUploadCSV is the user-upload variant: split on every comma and strip
// all double quotes. Weaker than SplitLine (quoted commas break the row), but
// it is what the upload path has always done. Kept separate on purpose.
func ParseUploadCSV(text string) []domain.JobRecord {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil
	}
	headers := splitNaive(lines[0])

	var out []domain.JobRecord
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, recordFromRow(headers, splitNaive(line)))
	}
	return out
}

// SplitLine splits one CSV line on commas outside double quotes. Each field is
// trimmed, one surrounding quote pair is stripped, and doubled quotes inside a
// quoted field collapse back to single ones. An unbalanced quote leaves the
// rest of the line inside the open field; that is accepted, not an error.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, cleanField(cur.String()))
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `""`, `"`)
	}
	return s
}

func splitNaive(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(p), `"`, "")
	}
	return parts
}

// recordFromRow zips values against headers by position. A row shorter than
// the header set yields empty strings for the missing trailing fields.
func recordFromRow(headers, values []string) domain.JobRecord {
	var rec domain.JobRecord
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		switch h {
		case colCompany:
			rec.Company = v
		case colTitle:
			rec.Title = v
		case colLocation:
			rec.Location = v
		case colSalary:
			rec.Salary = v
		case colTimePosted:
			rec.TimePosted = v
		case colTags:
			rec.Tags = v
		case colSalaryMin:
			rec.SalaryMin = nullableNumber(v)
		case colSalaryMax:
			rec.SalaryMax = nullableNumber(v)
		case colDaysAgo:
			rec.DaysAgo = nullableNumber(v)
		case colConfidence:
			rec.CategoryConfidence = confidenceNumber(v)
		case colCategory:
			rec.Category = v
		case colMatchedKeywords:
			rec.MatchedKeywords = v
		}
	}
	return rec
}

// AttachCountry tags every record with the (normalized) country parameter.
// Country is attached post-parse and opaque to aggregation.
func AttachCountry(jobs []domain.JobRecord, country string) []domain.JobRecord {
	c := domain.NormalizeCountry(country)
	for i := range jobs {
		jobs[i].Country = c
	}
	return jobs
}
