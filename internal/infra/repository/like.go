package repository

import "strings"

const likeEscape = `ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ciContains is a case-insensitive substring predicate on col.
func ciContains(col string) string {
	return "LOWER(" + col + ") LIKE LOWER(?) " + likeEscape
}
