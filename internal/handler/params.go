package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ParseIDParam parses the {id} URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	return id, nil
}

// ParseTokenParam parses the {token} URL parameter as a UUID.
// Returns "" when the value is not a well-formed UUID.
func ParseTokenParam(r *http.Request) string {
	token := chi.URLParam(r, "token")
	if _, err := uuid.Parse(token); err != nil {
		return ""
	}
	return token
}

// ParseIntParam parses an integer query parameter.
// Returns defaultVal if the parameter is missing, empty, or invalid.
// If minVal > 0, values below minVal return defaultVal.
// If maxVal > 0, values above maxVal are clamped to maxVal.
func ParseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return maxVal
	}
	return val
}

// ParseBoolFilter parses an optional boolean query parameter ("true"/"false",
// "1"/"0"). A missing or unparseable value yields an unset filter.
func ParseBoolFilter(r *http.Request, param string) sql.NullBool {
	str := r.URL.Query().Get(param)
	if str == "" {
		return sql.NullBool{}
	}
	val, err := strconv.ParseBool(str)
	if err != nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: val, Valid: true}
}

// ParseQueryInt64 parses a named query parameter as a positive int64.
// Returns 0 if the parameter is missing, empty, invalid, or not positive.
func ParseQueryInt64(r *http.Request, name string) int64 {
	str := r.URL.Query().Get(name)
	if str == "" {
		return 0
	}
	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil || val <= 0 {
		return 0
	}
	return val
}
