package ingest

import (
	"math"
	"strconv"
	"strings"
)

// leadingFloat parses the longest numeric prefix of s, like a permissive
// float parse: "85000", "1,500" (after comma stripping), "12abc" -> 12.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	seenDigit := false
	seenDot := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			seenDigit = true
		} else if c == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
		i++
	}
	if !seenDigit {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:i], "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// nullableNumber implements the coercion rule for salary_min, salary_max and
// days_ago: empty or unparseable is nil, never NaN and never a stray zero.
func nullableNumber(v string) *float64 {
	if v == "" {
		return nil
	}
	f, ok := leadingFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// confidenceNumber coerces category_confidence, defaulting to 0.
func confidenceNumber(v string) float64 {
	if v == "" {
		return 0
	}
	f, ok := leadingFloat(v)
	if !ok {
		return 0
	}
	return f
}
