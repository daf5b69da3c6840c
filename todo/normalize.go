package todo

import (
	"errors"

	internalstrings "github.com/amonks/workshop/internal/strings"
	"github.com/amonks/workshop/internal/validation"
)

var (
	// ErrInvalidPriority is returned when parsing an unknown priority.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidFilter is returned when parsing an unknown filter.
	ErrInvalidFilter = errors.New("invalid filter")
)

// ParsePriority parses user input into a priority.
// An empty value yields PriorityMedium.
func ParsePriority(value string) (Priority, error) {
	normalized := Priority(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return PriorityMedium, nil
	}
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(value), ValidPriorities())
	}
	return normalized, nil
}

// ParseFilter parses user input into a filter.
// An empty value yields FilterAll.
func ParseFilter(value string) (Filter, error) {
	normalized := Filter(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return FilterAll, nil
	}
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidFilter, Filter(value), ValidFilters())
	}
	return normalized, nil
}

func normalizePriority(priority Priority) (Priority, bool) {
	normalized := Priority(internalstrings.NormalizeLowerTrimSpace(string(priority)))
	return normalized, normalized.IsValid()
}

func normalizeFilter(filter Filter) (Filter, bool) {
	normalized := Filter(internalstrings.NormalizeLowerTrimSpace(string(filter)))
	return normalized, normalized.IsValid()
}
