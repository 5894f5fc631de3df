// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
)

// ListTestimonials handles GET /testimonials (public, cached).
// Non-admin callers only see published testimonials.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	admin := isAdminCaller(r)

	key := requestCacheKey(cachePrefixTestimonials, r)
	if !admin && h.serveFromCache(w, r, key) {
		return
	}

	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)
	filter := store.TestimonialFilter{
		Status:   r.URL.Query().Get("status"),
		Featured: handler.ParseBoolFilter(r, "featured"),
	}
	if !admin {
		filter.Status = model.TestimonialStatusPublished
	}

	testimonials, err := h.queries.ListTestimonials(r.Context(), store.ListTestimonialsParams{
		Filter: filter,
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountTestimonials(r.Context(), filter)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	body := map[string]any{
		"testimonials": newTestimonialViews(testimonials),
		"pagination":   handler.NewPagination(page, limit, total),
	}
	if admin {
		h.WriteJSON(w, http.StatusOK, body)
		return
	}
	h.writeAndCache(w, r, key, body)
}

// GetTestimonial handles GET /testimonials/{id} (public, cached).
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	key := requestCacheKey(cachePrefixTestimonials, r)
	if h.serveFromCache(w, r, key) {
		return
	}

	testimonial, err := h.queries.GetTestimonialByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Testimonial not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.writeAndCache(w, r, key, map[string]any{"testimonial": newTestimonialView(testimonial)})
}

type createTestimonialRequest struct {
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role"`
	Quote      string `json:"quote"`
	Rating     *int64 `json:"rating"`
	Status     string `json:"status"`
	Featured   bool   `json:"featured"`
}

// CreateTestimonial handles POST /testimonials (admin only).
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req createTestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status == "" {
		req.Status = model.TestimonialStatusPending
	}

	var v handler.Validator
	v.Required("author_name", req.AuthorName)
	v.MinLength("author_name", req.AuthorName, 2)
	v.Required("quote", req.Quote)
	v.MinLength("quote", req.Quote, 10)
	v.OneOf("status", req.Status, model.ValidTestimonialStatuses)
	if req.Rating != nil {
		v.Range("rating", *req.Rating, 1, 5)
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	var rating sql.NullInt64
	if req.Rating != nil {
		rating = sql.NullInt64{Int64: *req.Rating, Valid: true}
	}

	now := time.Now()
	testimonial, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		AuthorName: req.AuthorName,
		AuthorRole: req.AuthorRole,
		Quote:      req.Quote,
		Rating:     rating,
		Status:     req.Status,
		Featured:   req.Featured,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.invalidate(r.Context(), cachePrefixTestimonials)
	h.auditContentChange(r, "testimonial created", testimonial.ID)

	h.WriteEntity(w, http.StatusCreated, "testimonial", newTestimonialView(testimonial))
}

type updateTestimonialRequest struct {
	AuthorName *string `json:"author_name"`
	AuthorRole *string `json:"author_role"`
	Quote      *string `json:"quote"`
	Rating     *int64  `json:"rating"`
	Status     *string `json:"status"`
	Featured   *bool   `json:"featured"`
}

// UpdateTestimonial handles PUT /testimonials/{id} (admin only).
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	var req updateTestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	if req.AuthorName != nil {
		v.Required("author_name", *req.AuthorName)
		v.MinLength("author_name", *req.AuthorName, 2)
	}
	if req.Quote != nil {
		v.Required("quote", *req.Quote)
		v.MinLength("quote", *req.Quote, 10)
	}
	if req.Rating != nil {
		v.Range("rating", *req.Rating, 1, 5)
	}
	if req.Status != nil {
		v.OneOf("status", *req.Status, model.ValidTestimonialStatuses)
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	var rating *sql.NullInt64
	if req.Rating != nil {
		rating = &sql.NullInt64{Int64: *req.Rating, Valid: true}
	}

	testimonial, err := h.queries.UpdateTestimonial(r.Context(), store.UpdateTestimonialParams{
		ID:         id,
		AuthorName: req.AuthorName,
		AuthorRole: req.AuthorRole,
		Quote:      req.Quote,
		Rating:     rating,
		Status:     req.Status,
		Featured:   req.Featured,
	})
	if err != nil {
		switch {
		case err == store.ErrNoFields:
			h.WriteError(w, http.StatusBadRequest, "No fields to update")
		case isNotFound(err):
			h.WriteNotFound(w, "Testimonial not found")
		default:
			h.WriteInternalError(w, r, err)
		}
		return
	}

	h.invalidate(r.Context(), cachePrefixTestimonials)
	h.auditContentChange(r, "testimonial updated", id)

	h.WriteEntity(w, http.StatusOK, "testimonial", newTestimonialView(testimonial))
}

// DeleteTestimonial handles DELETE /testimonials/{id} (admin only).
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	if err := h.queries.DeleteTestimonial(r.Context(), id); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Testimonial not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	h.invalidate(r.Context(), cachePrefixTestimonials)
	h.auditContentChange(r, "testimonial deleted", id)

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Testimonial deleted"})
}
