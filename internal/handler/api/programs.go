// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/util"
)

// ListPrograms handles GET /programs (public, cached). Non-admin callers
// only see active programs; the status filter is an admin privilege. The
// cache is bypassed for admins so their wider view never leaks into it.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	admin := isAdminCaller(r)

	key := requestCacheKey(cachePrefixPrograms, r)
	if !admin && h.serveFromCache(w, r, key) {
		return
	}

	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)
	filter := store.ProgramFilter{
		Status:   r.URL.Query().Get("status"),
		Featured: handler.ParseBoolFilter(r, "featured"),
	}
	if !admin {
		filter.Status = model.ProgramStatusActive
	}

	programs, err := h.queries.ListPrograms(r.Context(), store.ListProgramsParams{
		Filter: filter,
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountPrograms(r.Context(), filter)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	body := map[string]any{
		"programs":   newProgramViews(programs),
		"pagination": handler.NewPagination(page, limit, total),
	}
	if admin {
		h.WriteJSON(w, http.StatusOK, body)
		return
	}
	h.writeAndCache(w, r, key, body)
}

// GetProgram handles GET /programs/{id} (public, cached).
func (h *Handler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	key := requestCacheKey(cachePrefixPrograms, r)
	if h.serveFromCache(w, r, key) {
		return
	}

	program, err := h.queries.GetProgramByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Program not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.writeAndCache(w, r, key, map[string]any{"program": newProgramView(program)})
}

// GetProgramBySlug handles GET /programs/slug/{slug} (public, cached).
func (h *Handler) GetProgramBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		h.WriteError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	key := requestCacheKey(cachePrefixPrograms, r)
	if h.serveFromCache(w, r, key) {
		return
	}

	program, err := h.queries.GetProgramBySlug(r.Context(), slug)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Program not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.writeAndCache(w, r, key, map[string]any{"program": newProgramView(program)})
}

type createProgramRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Status      string   `json:"status"`
	Featured    bool     `json:"featured"`
	ImageURL    string   `json:"image_url"`
}

// CreateProgram handles POST /programs (admin only).
// A missing slug is derived from the title.
func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status == "" {
		req.Status = model.ProgramStatusDraft
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}

	var v handler.Validator
	v.Required("title", req.Title)
	v.MinLength("title", req.Title, 3)
	v.Required("summary", req.Summary)
	v.OneOf("status", req.Status, model.ValidProgramStatuses)
	if !util.IsValidSlug(req.Slug) {
		v.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}
	for _, f := range req.Features {
		if f == "" {
			v.Add("features", "features must not contain empty entries")
			break
		}
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	// Checked up front for a clean conflict message; the unique index
	// still backstops concurrent creates.
	taken, err := h.queries.ProgramSlugExists(r.Context(), req.Slug, 0)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	if taken {
		h.WriteConflict(w, "A program with this slug already exists")
		return
	}

	now := time.Now()
	program, err := h.queries.CreateProgram(r.Context(), store.CreateProgramParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Features:    model.StringList(req.Features),
		Status:      req.Status,
		Featured:    req.Featured,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			h.WriteConflict(w, "A program with this slug already exists")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	h.invalidate(r.Context(), cachePrefixPrograms)
	h.auditContentChange(r, "program created", program.ID)

	h.WriteEntity(w, http.StatusCreated, "program", newProgramView(program))
}

type updateProgramRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Summary     *string   `json:"summary"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
	Status      *string   `json:"status"`
	Featured    *bool     `json:"featured"`
	ImageURL    *string   `json:"image_url"`
}

// UpdateProgram handles PUT /programs/{id} (admin only). Absent fields
// keep their stored values.
func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	var req updateProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	if req.Title != nil {
		v.Required("title", *req.Title)
		v.MinLength("title", *req.Title, 3)
	}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		v.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}
	if req.Summary != nil {
		v.Required("summary", *req.Summary)
	}
	if req.Status != nil {
		v.OneOf("status", *req.Status, model.ValidProgramStatuses)
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	var features *model.StringList
	if req.Features != nil {
		list := model.StringList(*req.Features)
		features = &list
	}

	program, err := h.queries.UpdateProgram(r.Context(), store.UpdateProgramParams{
		ID:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Features:    features,
		Status:      req.Status,
		Featured:    req.Featured,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case err == store.ErrNoFields:
			h.WriteError(w, http.StatusBadRequest, "No fields to update")
		case isNotFound(err):
			h.WriteNotFound(w, "Program not found")
		case isUniqueViolation(err):
			h.WriteConflict(w, "A program with this slug already exists")
		default:
			h.WriteInternalError(w, r, err)
		}
		return
	}

	h.invalidate(r.Context(), cachePrefixPrograms)
	h.auditContentChange(r, "program updated", id)

	h.WriteEntity(w, http.StatusOK, "program", newProgramView(program))
}

// DeleteProgram handles DELETE /programs/{id} (admin only).
// Programs referenced by applications cannot be deleted.
func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid program ID")
		return
	}

	if err := h.queries.DeleteProgram(r.Context(), id); err != nil {
		switch {
		case isNotFound(err):
			h.WriteNotFound(w, "Program not found")
		case isFKViolation(err):
			h.WriteConflict(w, "Program has applications and cannot be deleted")
		default:
			h.WriteInternalError(w, r, err)
		}
		return
	}

	h.invalidate(r.Context(), cachePrefixPrograms)
	h.auditContentChange(r, "program deleted", id)

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Program deleted"})
}

// auditContentChange records an admin content mutation.
func (h *Handler) auditContentChange(r *http.Request, message string, resourceID int64) {
	var accountID *int64
	if acct := middleware.GetAccount(r); acct != nil {
		id := acct.ID
		accountID = &id
	}
	h.audit.LogInfo(r.Context(), model.AuditCategoryContent, message,
		accountID, middleware.ClientIP(r), map[string]any{"resource_id": resourceID})
}
