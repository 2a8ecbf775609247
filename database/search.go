package database

import (
	"strings"

	"s7scheduling/store"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern turns a dashboard search term into an ILIKE pattern. The
// term is matched literally: LIKE wildcards typed by the user are escaped.
// An empty pattern means no filter.
func searchPattern(term string) (string, error) {
	term, err := store.NormalizeSearch(term)
	if err != nil {
		return "", err
	}
	if term == "" {
		return "", nil
	}
	return "%" + likeEscaper.Replace(term) + "%", nil
}
