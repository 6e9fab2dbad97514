package ingest

import (
	"regexp"
	"strings"

	"jobmarket-engine/internal/classify"
	"jobmarket-engine/internal/domain"
)

// Site chrome that never belongs to a posting.
var skipMarkers = []string{"Set job alert", "Browse AI"}

// Marker sets for the per-line role scan. The company rule is an exclusion
// test: the first line that looks like none of the other roles.
var (
	notCompanyMarkers = []string{"$", "ago", "Remote", "Argentina", "Easy Apply", "Actively reviewing", "Viewed", "@"}
	locationMarkers   = []string{"Remote", "Argentina", "Buenos Aires", "Latin America"}
	salaryMarkers     = []string{"$", "/month", "/yr"}
	timeMarkers       = []string{"ago", "hours", "days"}
	tagMarkers        = []string{"Easy Apply", "Actively reviewing", "Viewed", "Be an early applicant"}
)

type blockFields struct {
	company    string
	location   string
	salary     string
	timePosted string
	tags       string
}

// lineRoles is evaluated in order for every line after the title; the first
// role whose slot is empty and whose predicate matches claims the line.
// Priority lives in this table, not in nested conditionals. The tags role
// additionally ends the scan for the whole block.
var lineRoles = []struct {
	slot     func(*blockFields) *string
	match    func(string) bool
	terminal bool
}{
	{func(f *blockFields) *string { return &f.company }, func(l string) bool { return !containsAny(l, notCompanyMarkers) }, false},
	{func(f *blockFields) *string { return &f.location }, func(l string) bool { return containsAny(l, locationMarkers) }, false},
	{func(f *blockFields) *string { return &f.salary }, func(l string) bool { return containsAny(l, salaryMarkers) }, false},
	{func(f *blockFields) *string { return &f.timePosted }, func(l string) bool { return containsAny(l, timeMarkers) }, false},
	{func(f *blockFields) *string { return &f.tags }, func(l string) bool { return containsAny(l, tagMarkers) }, true},
}

// ParseLinkedInTXT parses a LinkedIn job-search page saved as plain text.
// Postings arrive as blocks of non-blank lines; a line containing "logo"
// (the company logo alt text) marks the start of the next posting block and is
// itself dropped. Blocks that cannot yield a company and title are skipped
// silently; the caller only ever sees the records that worked.
func ParseLinkedInTXT(text string) []domain.JobRecord {
	var out []domain.JobRecord
	var block []string

	flush := func() {
		if rec, ok := recordFromBlock(block); ok {
			out = append(out, rec)
		}
		block = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || containsAny(line, skipMarkers) {
			continue
		}
		if strings.Contains(line, "logo") {
			if len(block) > 0 {
				flush()
			}
			continue
		}
		block = append(block, line)
	}
	if len(block) > 0 {
		flush()
	}
	return out
}

func recordFromBlock(lines []string) (domain.JobRecord, bool) {
	if len(lines) < 2 {
		return domain.JobRecord{}, false
	}

	title := lines[0]
	var f blockFields

scan:
	for _, line := range lines[1:] {
		for _, role := range lineRoles {
			slot := role.slot(&f)
			if *slot != "" || !role.match(line) {
				continue
			}
			*slot = line
			if role.terminal {
				break scan
			}
			continue scan
		}
	}

	if title == "" || f.company == "" {
		return domain.JobRecord{}, false
	}

	location := f.location
	if location == "" {
		location = "Remote"
	}

	salaryMin, salaryMax := extractSalaryRange(f.salary)
	category, confidence := classify.Title(title)

	return domain.JobRecord{
		Company:            f.company,
		Title:              title,
		Location:           location,
		Salary:             f.salary,
		TimePosted:         f.timePosted,
		Tags:               f.tags,
		SalaryMin:          salaryMin,
		SalaryMax:          salaryMax,
		DaysAgo:            extractDaysAgo(f.timePosted),
		Category:           category,
		CategoryConfidence: confidence,
		MatchedKeywords:    strings.ToLower(title),
	}, true
}

var reMoney = regexp.MustCompile(`\$[\d,]+`)

// extractSalaryRange pulls $-prefixed amounts out of a salary display line.
// Two or more matches mean a range (extras ignored); exactly one sets only the
// minimum. Unparseable amounts stay nil rather than leaking NaN downstream.
func extractSalaryRange(salary string) (min, max *float64) {
	if salary == "" {
		return nil, nil
	}
	matches := reMoney.FindAllString(salary, -1)
	amount := func(m string) *float64 {
		m = strings.NewReplacer("$", "", ",", "").Replace(m)
		f, ok := leadingFloat(m)
		if !ok {
			return nil
		}
		return &f
	}
	switch {
	case len(matches) >= 2:
		return amount(matches[0]), amount(matches[1])
	case len(matches) == 1:
		return amount(matches[0]), nil
	}
	return nil, nil
}

var (
	reDays   = regexp.MustCompile(`(\d+)\s+day`)
	reWeeks  = regexp.MustCompile(`(\d+)\s+week`)
	reMonths = regexp.MustCompile(`(\d+)\s+month`)
)

// extractDaysAgo turns "3 days ago" style text into a day count. Hours round
// down to 0; weeks and months scale by 7 and 30. First matching unit wins.
func extractDaysAgo(timePosted string) *float64 {
	if timePosted == "" {
		return nil
	}
	switch {
	case strings.Contains(timePosted, "hour"):
		zero := 0.0
		return &zero
	case strings.Contains(timePosted, "day"):
		return scaledCount(reDays, timePosted, 1)
	case strings.Contains(timePosted, "week"):
		return scaledCount(reWeeks, timePosted, 7)
	case strings.Contains(timePosted, "month"):
		return scaledCount(reMonths, timePosted, 30)
	}
	return nil
}

func scaledCount(re *regexp.Regexp, s string, factor float64) *float64 {
	m := re.FindStringSubmatch(s)
	if len(m) != 2 {
		return nil
	}
	f, ok := leadingFloat(m[1])
	if !ok {
		return nil
	}
	f *= factor
	return &f
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
