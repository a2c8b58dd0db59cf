package api

import (
	"net/http"
	"strconv"
)

// parsePaginationParams parses pagination parameters from an HTTP request.
// Supports offset-based pagination (?offset=20&limit=10). An absent or
// invalid limit falls back to the default.
func parsePaginationParams(r *http.Request, defaultLimit, maxLimit int) (int, int) {
	query := r.URL.Query()

	// Parse limit with validation; oversized limits clamp to the max.
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	// Parse offset with validation
	offset, _ := strconv.Atoi(query.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)
