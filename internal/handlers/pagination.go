package handlers

import (
	"strconv"
	"strings"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type listQueryParams struct {
	Limit    int
	Offset   int
	Category string
}

func parseListQueryParams(rawLimit, rawOffset, rawCategory string) listQueryParams {
	limit := defaultPageLimit
	if parsed, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && parsed > 0 {
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := 0
	if parsed, err := strconv.Atoi(strings.TrimSpace(rawOffset)); err == nil && parsed >= 0 {
		offset = parsed
	}

	return listQueryParams{
		Limit:    limit,
		Offset:   offset,
		Category: strings.ToLower(strings.TrimSpace(rawCategory)),
	}
}

// page returns the [Offset, Offset+Limit) window of n items as slice bounds.
func (p listQueryParams) page(n int) (int, int) {
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
