// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/util"
)

// ListEvents handles GET /events (public, cached).
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	key := requestCacheKey(cachePrefixEvents, r)
	if h.serveFromCache(w, r, key) {
		return
	}

	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)
	filter := store.EventFilter{
		Status:   r.URL.Query().Get("status"),
		Featured: handler.ParseBoolFilter(r, "featured"),
	}

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Filter: filter,
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountEvents(r.Context(), filter)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.writeAndCache(w, r, key, map[string]any{
		"events":     newEventViews(events),
		"pagination": handler.NewPagination(page, limit, total),
	})
}

// GetEvent handles GET /events/{id} (public, cached).
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	key := requestCacheKey(cachePrefixEvents, r)
	if h.serveFromCache(w, r, key) {
		return
	}

	event, err := h.queries.GetEventByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Event not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.writeAndCache(w, r, key, map[string]any{"event": newEventView(event)})
}

// GetEventBySlug handles GET /events/slug/{slug} (public, cached).
func (h *Handler) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		h.WriteError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	key := requestCacheKey(cachePrefixEvents, r)
	if h.serveFromCache(w, r, key) {
		return
	}

	event, err := h.queries.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Event not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.writeAndCache(w, r, key, map[string]any{"event": newEventView(event)})
}

type createEventRequest struct {
	Title                string `json:"title"`
	Slug                 string `json:"slug"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	StartsAt             string `json:"starts_at"`
	EndsAt               string `json:"ends_at"`
	Capacity             *int64 `json:"capacity"`
	RegistrationRequired bool   `json:"registration_required"`
	Status               string `json:"status"`
	Featured             bool   `json:"featured"`
}

// CreateEvent handles POST /events (admin only).
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status == "" {
		req.Status = model.EventStatusUpcoming
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}

	var v handler.Validator
	v.Required("title", req.Title)
	v.MinLength("title", req.Title, 3)
	v.Required("starts_at", req.StartsAt)
	startsAt := v.Timestamp("starts_at", req.StartsAt)
	endsAt := v.Timestamp("ends_at", req.EndsAt)
	v.OneOf("status", req.Status, model.ValidEventStatuses)
	if !util.IsValidSlug(req.Slug) {
		v.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}
	if req.Capacity != nil {
		v.NonNegative("capacity", *req.Capacity)
	}
	if req.EndsAt != "" && !endsAt.IsZero() && !startsAt.IsZero() && endsAt.Before(startsAt) {
		v.Add("ends_at", "ends_at must not be before starts_at")
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	// Checked up front for a clean conflict message; the unique index
	// still backstops concurrent creates.
	taken, err := h.queries.EventSlugExists(r.Context(), req.Slug, 0)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	if taken {
		h.WriteConflict(w, "An event with this slug already exists")
		return
	}

	var capacity sql.NullInt64
	if req.Capacity != nil {
		capacity = sql.NullInt64{Int64: *req.Capacity, Valid: true}
	}
	var ends sql.NullTime
	if req.EndsAt != "" {
		ends = sql.NullTime{Time: endsAt, Valid: true}
	}

	now := time.Now()
	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Title:                req.Title,
		Slug:                 req.Slug,
		Description:          req.Description,
		Location:             req.Location,
		StartsAt:             startsAt,
		EndsAt:               ends,
		Capacity:             capacity,
		RegistrationRequired: req.RegistrationRequired,
		Status:               req.Status,
		Featured:             req.Featured,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			h.WriteConflict(w, "An event with this slug already exists")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	h.invalidate(r.Context(), cachePrefixEvents)
	h.auditContentChange(r, "event created", event.ID)

	h.WriteEntity(w, http.StatusCreated, "event", newEventView(event))
}

type updateEventRequest struct {
	Title                *string `json:"title"`
	Slug                 *string `json:"slug"`
	Description          *string `json:"description"`
	Location             *string `json:"location"`
	StartsAt             *string `json:"starts_at"`
	EndsAt               *string `json:"ends_at"`
	Capacity             *int64  `json:"capacity"`
	RegistrationRequired *bool   `json:"registration_required"`
	Status               *string `json:"status"`
	Featured             *bool   `json:"featured"`
}

// UpdateEvent handles PUT /events/{id} (admin only).
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	var startsAt, endsAt time.Time
	if req.Title != nil {
		v.Required("title", *req.Title)
		v.MinLength("title", *req.Title, 3)
	}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		v.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}
	if req.StartsAt != nil {
		v.Required("starts_at", *req.StartsAt)
		startsAt = v.Timestamp("starts_at", *req.StartsAt)
	}
	if req.EndsAt != nil && *req.EndsAt != "" {
		endsAt = v.Timestamp("ends_at", *req.EndsAt)
	}
	if req.Capacity != nil {
		v.NonNegative("capacity", *req.Capacity)
	}
	if req.Status != nil {
		v.OneOf("status", *req.Status, model.ValidEventStatuses)
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	params := store.UpdateEventParams{
		ID:                   id,
		Title:                req.Title,
		Slug:                 req.Slug,
		Description:          req.Description,
		Location:             req.Location,
		RegistrationRequired: req.RegistrationRequired,
		Status:               req.Status,
		Featured:             req.Featured,
	}
	if req.StartsAt != nil {
		params.StartsAt = &startsAt
	}
	if req.EndsAt != nil {
		// An explicit empty string clears the end time.
		ends := sql.NullTime{Time: endsAt, Valid: *req.EndsAt != ""}
		params.EndsAt = &ends
	}
	if req.Capacity != nil {
		capacity := sql.NullInt64{Int64: *req.Capacity, Valid: true}
		params.Capacity = &capacity
	}

	event, err := h.queries.UpdateEvent(r.Context(), params)
	if err != nil {
		switch {
		case err == store.ErrNoFields:
			h.WriteError(w, http.StatusBadRequest, "No fields to update")
		case isNotFound(err):
			h.WriteNotFound(w, "Event not found")
		case isUniqueViolation(err):
			h.WriteConflict(w, "An event with this slug already exists")
		default:
			h.WriteInternalError(w, r, err)
		}
		return
	}

	h.invalidate(r.Context(), cachePrefixEvents)
	h.auditContentChange(r, "event updated", id)

	h.WriteEntity(w, http.StatusOK, "event", newEventView(event))
}

// DeleteEvent handles DELETE /events/{id} (admin only).
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := h.queries.DeleteEvent(r.Context(), id); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Event not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	h.invalidate(r.Context(), cachePrefixEvents)
	h.auditContentChange(r, "event deleted", id)

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

// RegisterForEvent handles POST /events/{id}/register (public).
// The capacity check and the increment are a single conditional UPDATE,
// so concurrent registrations can never oversubscribe an event.
func (h *Handler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	registered, err := h.queries.RegisterForEvent(r.Context(), id)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	if !registered {
		// The conditional update matched nothing. Re-read to tell the
		// caller which precondition failed.
		event, err := h.queries.GetEventByID(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				h.WriteNotFound(w, "Event not found")
				return
			}
			h.WriteInternalError(w, r, err)
			return
		}
		if event.Status == model.EventStatusUpcoming && !event.HasCapacity() {
			h.WriteConflict(w, "Event is at full capacity")
			return
		}
		h.WriteConflict(w, "Registration is closed for this event")
		return
	}

	event, err := h.queries.GetEventByID(r.Context(), id)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.invalidate(r.Context(), cachePrefixEvents)

	h.WriteEntity(w, http.StatusOK, "event", newEventView(event))
}
