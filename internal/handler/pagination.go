// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides shared request parsing, validation, and
// pagination helpers used by the API handlers.
package handler

import "net/http"

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is the collection-response metadata envelope.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination builds pagination metadata for a collection response.
// Pages is ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// ParsePageParam parses the "page" query parameter.
// Returns 1 if the parameter is missing, empty, or invalid.
func ParsePageParam(r *http.Request) int {
	return ParseIntParam(r, "page", DefaultPage, 1, 0)
}

// ParseLimitParam parses the "limit" query parameter.
// Returns the default if missing or invalid; values are capped at MaxLimit.
func ParseLimitParam(r *http.Request) int {
	return ParseIntParam(r, "limit", DefaultLimit, 1, MaxLimit)
}

// Offset computes the query offset for a page/limit pair.
func Offset(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}
