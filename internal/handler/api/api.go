// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api implements the JSON REST handlers mounted under /api/v1.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/cache"
	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/service"
	"github.com/brightpath/brightpath-go/internal/store"
)

// Handler carries the shared dependencies for all API endpoints.
type Handler struct {
	db      *sql.DB
	queries *store.Queries
	issuer  *auth.TokenIssuer
	cache   cache.Cache
	audit   *service.AuditService
	log     *slog.Logger
}

// New creates an API handler.
func New(db *sql.DB, issuer *auth.TokenIssuer, c cache.Cache, audit *service.AuditService, log *slog.Logger) *Handler {
	return &Handler{
		db:      db,
		queries: store.New(db),
		issuer:  issuer,
		cache:   c,
		audit:   audit,
		log:     log,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

type validationBody struct {
	Errors []handler.FieldError `json:"errors"`
}

// WriteJSON writes v as a JSON response with the given status code.
func (h *Handler) WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// WriteEntity writes a single entity wrapped under its singular key,
// e.g. {"program": {...}}.
func (h *Handler) WriteEntity(w http.ResponseWriter, statusCode int, key string, entity any) {
	h.WriteJSON(w, statusCode, map[string]any{key: entity})
}

// WriteList writes a collection wrapped under its plural key alongside
// pagination metadata, e.g. {"programs": [...], "pagination": {...}}.
func (h *Handler) WriteList(w http.ResponseWriter, key string, items any, p handler.Pagination) {
	h.WriteJSON(w, http.StatusOK, map[string]any{
		key:          items,
		"pagination": p,
	})
}

// WriteError writes a single-message error body.
func (h *Handler) WriteError(w http.ResponseWriter, statusCode int, message string) {
	h.WriteJSON(w, statusCode, errorBody{Message: message})
}

// WriteValidationErrors writes a 400 with every collected field error.
func (h *Handler) WriteValidationErrors(w http.ResponseWriter, errs []handler.FieldError) {
	h.WriteJSON(w, http.StatusBadRequest, validationBody{Errors: errs})
}

func (h *Handler) WriteNotFound(w http.ResponseWriter, message string) {
	h.WriteError(w, http.StatusNotFound, message)
}

func (h *Handler) WriteConflict(w http.ResponseWriter, message string) {
	h.WriteError(w, http.StatusConflict, message)
}

func (h *Handler) WriteForbidden(w http.ResponseWriter, message string) {
	h.WriteError(w, http.StatusForbidden, message)
}

// WriteInternalError logs the underlying error and writes a generic 500.
// The real error never reaches the client.
func (h *Handler) WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
	h.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON decodes the request body into dst. Unknown fields are
// rejected so typos in field names surface as 400s instead of silently
// dropped input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// isAdminCaller reports whether the request carries an admin account.
// Public list endpoints use OptionalAuth, so the account may be absent.
func isAdminCaller(r *http.Request) bool {
	account := middleware.GetAccount(r)
	return account != nil && account.IsAdmin()
}

// isNotFound reports whether err means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// Matched textually so both sqlite drivers are covered.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return containsAny(msg, "UNIQUE constraint failed", "constraint failed: UNIQUE")
}

// isFKViolation reports whether err is a FOREIGN KEY constraint failure.
func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(), "FOREIGN KEY constraint failed")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
