package http

import (
	"net/http"
	"strings"
)

// sanitizeInput trims whitespace and drops control characters other than tab and newlines.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// highlightFromRequest returns the id to highlight, or 0 for none.
func highlightFromRequest(r *http.Request) int64 {
	id, err := ParseID(r.URL.Query().Get("highlight"))
	if err != nil {
		return 0
	}
	return id
}
