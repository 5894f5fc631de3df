// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string      `json:"token"`
	Account accountView `json:"account"`
}

// Register handles POST /auth/register. New accounts always get the
// user role; promotion to admin is an admin-only account update.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("email", req.Email)
	v.Email("email", req.Email)
	v.Required("password", req.Password)
	v.MinLength("password", req.Password, 6)
	v.Required("name", req.Name)
	v.MinLength("name", req.Name, 2)
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	now := time.Now()
	account, err := h.queries.CreateAccount(r.Context(), store.CreateAccountParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			h.WriteConflict(w, "An account with this email already exists")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	token, err := h.issuer.Issue(&account)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	accID := account.ID
	h.audit.LogInfo(r.Context(), model.AuditCategoryAuth, "account registered",
		&accID, middleware.ClientIP(r), map[string]any{"email": account.Email})

	h.WriteJSON(w, http.StatusCreated, authResponse{Token: token, Account: newAccountView(account)})
}

// Login handles POST /auth/login. An unknown email and a wrong password
// produce the same response; CheckPassword runs against a fixed dummy
// hash when the account is missing so timing does not leak existence.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("email", req.Email)
	v.Required("password", req.Password)
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	account, err := h.queries.GetAccountByEmail(r.Context(), req.Email)
	if err != nil {
		if isNotFound(err) {
			auth.CheckPassword(req.Password, auth.DummyHash)
			h.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	ok, err := auth.CheckPassword(req.Password, account.PasswordHash)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	if !ok {
		accID := account.ID
		h.audit.LogWarning(r.Context(), model.AuditCategoryAuth, "failed login attempt",
			&accID, middleware.ClientIP(r), map[string]any{"email": req.Email})
		h.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.issuer.Issue(&account)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	if err := h.queries.UpdateAccountLastLogin(r.Context(), account.ID, time.Now()); err != nil {
		h.log.Warn("failed to record last login", "account_id", account.ID, "error", err)
	}

	h.WriteJSON(w, http.StatusOK, authResponse{Token: token, Account: newAccountView(account)})
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r)
	if account == nil {
		h.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	h.WriteEntity(w, http.StatusOK, "account", newAccountView(*account))
}
