package errors

import (
	"regexp"
	"strings"
)

// regionPattern matches two-letter US state / territory abbreviations.
var regionPattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Bounds for the yearly statistics range. The backend has no data before
// 1985 and nothing is published for future years.
const (
	MinYear = 1985
	MaxYear = 2100
)

// ValidateRegion validates a region (state abbreviation) before it is put
// into a backend query string.
func ValidateRegion(region string) error {
	if region == "" {
		return New(ErrCodeInvalidRegion, "region cannot be empty")
	}
	if !regionPattern.MatchString(strings.TrimSpace(region)) {
		return New(ErrCodeInvalidRegion, "region must be a two-letter state abbreviation, got %q", region)
	}
	return nil
}

// ValidateYearRange checks that from..to is an ordered, plausible range.
func ValidateYearRange(from, to int) error {
	if from < MinYear || to > MaxYear {
		return New(ErrCodeInvalidRange, "year range %d-%d outside %d-%d", from, to, MinYear, MaxYear)
	}
	if from > to {
		return New(ErrCodeInvalidRange, "from year %d is after to year %d", from, to)
	}
	return nil
}
