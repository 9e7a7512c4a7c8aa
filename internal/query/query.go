// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query turns raw URL query parameters into the typed filter and
// pagination state that drives the book list. The URL is the single source
// of truth for this state; nothing here is persisted between requests.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed number of books per list page.
const PageSize = 10

// filterKeys is the set of query parameters that act as list constraints.
// Anything else in the URL (page, filter_by, tracking junk) is not a filter.
var filterKeys = map[string]bool{
	"category":         true,
	"publication_year": true,
	"pages":            true,
	"rating":           true,
	"query":            true,
	"sort":             true,
}

// Filters is a sparse set of optional list constraints. Absence of a key
// means "no constraint"; values are kept as strings and passed through to
// the backend unchanged.
type Filters map[string]string

// Normalize extracts filters from raw query parameters. Only known filter
// keys with exactly one non-empty, non-whitespace value survive; everything
// else is dropped silently. Normalizing an already-normalized filter set is
// a no-op.
func Normalize(params url.Values) Filters {
	filters := Filters{}
	for key, values := range params {
		if !filterKeys[key] {
			continue
		}
		if len(values) != 1 {
			continue
		}
		if strings.TrimSpace(values[0]) != "" {
			filters[key] = values[0]
		}
	}
	return filters
}

// Values converts the filters back into url.Values for request building.
func (f Filters) Values() url.Values {
	params := url.Values{}
	for key, value := range f {
		params.Set(key, value)
	}
	return params
}

// Active reports whether any constraint is set.
func (f Filters) Active() bool {
	return len(f) > 0
}

// Pagination is the current page and fixed page size, derived from the URL
// on every request.
type Pagination struct {
	CurrentPage int
	Limit       int
}

// ResolvePage parses the raw `page` query value as a base-10 integer.
// Absent, unparseable, or non-positive values default to page 1. There is
// no upper bound: an out-of-range page simply yields an empty result set
// from the backend.
func ResolvePage(raw string) Pagination {
	page := 1
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
		page = n
	}
	return Pagination{CurrentPage: page, Limit: PageSize}
}

// Offset returns the list offset the backend expects for this page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.Limit
}

// TotalPages returns the number of pages needed for totalCount items.
// Zero items still occupy one (empty) page.
func (p Pagination) TotalPages(totalCount int64) int {
	if totalCount <= 0 {
		return 1
	}
	pages := int((totalCount + int64(p.Limit) - 1) / int64(p.Limit))
	return pages
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether another page of results exists after this one.
func (p Pagination) HasNext(totalCount int64) bool {
	return int64(p.CurrentPage*p.Limit) < totalCount
}
