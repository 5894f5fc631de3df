// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/render"
	"github.com/brightpath/brightpath-go/internal/store"
)

type createContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CreateContactMessage handles POST /contact (public, rate limited).
// Free-text fields are stripped of markup before storage.
func (h *Handler) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("name", req.Name)
	v.MinLength("name", req.Name, 2)
	v.Required("email", req.Email)
	v.Email("email", req.Email)
	v.Required("subject", req.Subject)
	v.Required("body", req.Body)
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	now := time.Now()
	message, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:      render.StripTags(req.Name),
		Email:     req.Email,
		Subject:   render.StripTags(req.Subject),
		Body:      render.StripTags(req.Body),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.audit.LogInfo(r.Context(), model.AuditCategoryContent, "contact message received",
		nil, middleware.ClientIP(r), map[string]any{"message_id": message.ID})

	h.WriteEntity(w, http.StatusCreated, "contact_message", message)
}

// ListContactMessages handles GET /contact (admin only).
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)
	status := r.URL.Query().Get("status")

	messages, err := h.queries.ListContactMessages(r.Context(), store.ListContactMessagesParams{
		Status: status,
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountContactMessages(r.Context(), status)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.WriteList(w, "contact_messages", messages, handler.NewPagination(page, limit, total))
}

// GetContactMessage handles GET /contact/{id} (admin only).
func (h *Handler) GetContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	message, err := h.queries.GetContactMessageByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Contact message not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteEntity(w, http.StatusOK, "contact_message", message)
}

type updateContactStatusRequest struct {
	Status string `json:"status"`
}

// UpdateContactMessageStatus handles PUT /contact/{id} (admin only).
// Status moves only by explicit admin action.
func (h *Handler) UpdateContactMessageStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	var req updateContactStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("status", req.Status)
	v.OneOf("status", req.Status, model.ValidContactStatuses)
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	message, err := h.queries.UpdateContactMessageStatus(r.Context(), id, req.Status)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Contact message not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteEntity(w, http.StatusOK, "contact_message", message)
}

// DeleteContactMessage handles DELETE /contact/{id} (admin only).
func (h *Handler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	if err := h.queries.DeleteContactMessage(r.Context(), id); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Contact message not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contact message deleted"})
}
