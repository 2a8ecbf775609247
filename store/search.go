package store

import (
	"fmt"
	"strings"
)

// MaxSearchLength bounds dashboard search input.
const MaxSearchLength = 200

// NormalizeSearch trims and lowercases a dashboard search term. An empty
// result means "no filter".
func NormalizeSearch(term string) (string, error) {
	term = strings.TrimSpace(term)
	if len(term) > MaxSearchLength {
		return "", fmt.Errorf("search query too long (max %d characters)", MaxSearchLength)
	}
	return strings.ToLower(term), nil
}

// MatchesProject is the case-insensitive substring match on name or
// description. term must already be normalized.
func MatchesProject(name, description, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), term) ||
		strings.Contains(strings.ToLower(description), term)
}
