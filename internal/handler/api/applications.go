// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/render"
	"github.com/brightpath/brightpath-go/internal/store"
)

type createApplicationRequest struct {
	ProgramID     int64  `json:"program_id"`
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Message       string `json:"message"`
}

// CreateApplication handles POST /applications (public, rate limited).
// The referenced program must exist and be accepting applications.
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req createApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("applicant_name", req.ApplicantName)
	v.MinLength("applicant_name", req.ApplicantName, 2)
	v.Required("email", req.Email)
	v.Email("email", req.Email)
	if req.ProgramID <= 0 {
		v.Add("program_id", "program_id is required")
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	program, err := h.queries.GetProgramByID(r.Context(), req.ProgramID)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Program not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	if program.Status != model.ProgramStatusActive {
		h.WriteConflict(w, "Program is not accepting applications")
		return
	}

	now := time.Now()
	application, err := h.queries.CreateApplication(r.Context(), store.CreateApplicationParams{
		ProgramID:     req.ProgramID,
		ApplicantName: render.StripTags(req.ApplicantName),
		Email:         req.Email,
		Phone:         req.Phone,
		Message:       render.StripTags(req.Message),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.audit.LogInfo(r.Context(), model.AuditCategoryContent, "application submitted",
		nil, middleware.ClientIP(r), map[string]any{
			"application_id": application.ID,
			"program_id":     req.ProgramID,
		})

	h.WriteEntity(w, http.StatusCreated, "application", newApplicationView(application))
}

// ListApplications handles GET /applications (admin only).
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)
	filter := store.ApplicationFilter{
		Status: r.URL.Query().Get("status"),
	}
	if programID := handler.ParseQueryInt64(r, "program_id"); programID > 0 {
		filter.ProgramID = sql.NullInt64{Int64: programID, Valid: true}
	}

	applications, err := h.queries.ListApplications(r.Context(), store.ListApplicationsParams{
		Filter: filter,
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountApplications(r.Context(), filter)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.WriteList(w, "applications", newApplicationViews(applications), handler.NewPagination(page, limit, total))
}

// GetApplication handles GET /applications/{id} (admin only).
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	application, err := h.queries.GetApplicationByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Application not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteEntity(w, http.StatusOK, "application", newApplicationView(application))
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// UpdateApplicationStatus handles PUT /applications/{id} (admin only).
// Review moves an application from pending to a terminal state.
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req updateApplicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("status", req.Status)
	v.OneOf("status", req.Status, model.ValidApplicationStatuses)
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	application, err := h.queries.UpdateApplicationStatus(r.Context(), id, req.Status)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Application not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	h.auditContentChange(r, "application reviewed", id)

	h.WriteEntity(w, http.StatusOK, "application", newApplicationView(application))
}

// DeleteApplication handles DELETE /applications/{id} (admin only).
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	if err := h.queries.DeleteApplication(r.Context(), id); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Application not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Application deleted"})
}
