package domain

// JobRecord is the canonical normalized form of one job posting, regardless of
// whether it came from the bulk CSV dataset or a LinkedIn text export.
// Nullable numeric fields are pointers: absent means nil, never 0.
type JobRecord struct {
	Company    string `json:"company"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	Salary     string `json:"salary"`      // raw display string, may be empty
	TimePosted string `json:"time_posted"` // e.g. "3 days ago"
	Tags       string `json:"tags"`        // raw comma-joined tag text

	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
	DaysAgo   *float64 `json:"days_ago"`

	Category           string  `json:"category"`
	CategoryConfidence float64 `json:"category_confidence"`
	MatchedKeywords    string  `json:"matched_keywords"`

	Country string `json:"country,omitempty"`
}

// Countries the salary-lookup UI knows about. Opaque to aggregation.
const (
	CountryArgentina = "argentina"
	CountrySpain     = "spain"

	DefaultCountry = CountryArgentina
)

func ValidCountry(c string) bool {
	return c == CountryArgentina || c == CountrySpain
}

// NormalizeCountry maps unknown or empty values to the default.
func NormalizeCountry(c string) string {
	if ValidCountry(c) {
		return c
	}
	return DefaultCountry
}
