// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
)

// canActOnAccount implements the self-or-admin tier: the caller may act
// on their own account, and admins may act on anyone's.
func canActOnAccount(caller *model.Account, targetID int64) bool {
	return caller.IsAdmin() || caller.ID == targetID
}

// ListAccounts handles GET /accounts (admin only).
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)

	accounts, err := h.queries.ListAccounts(r.Context(), store.ListAccountsParams{
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountAccounts(r.Context())
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.WriteList(w, "accounts", newAccountViews(accounts), handler.NewPagination(page, limit, total))
}

// GetAccount handles GET /accounts/{id} (self or admin).
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	caller := middleware.GetAccount(r)
	if !canActOnAccount(caller, id) {
		h.WriteForbidden(w, "You can only access your own account")
		return
	}

	account, err := h.queries.GetAccountByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Account not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteEntity(w, http.StatusOK, "account", newAccountView(account))
}

type updateAccountRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

// UpdateAccount handles PUT /accounts/{id} (self or admin).
// Only admins may change roles.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	caller := middleware.GetAccount(r)
	if !canActOnAccount(caller, id) {
		h.WriteForbidden(w, "You can only update your own account")
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	if req.Email != nil {
		v.Required("email", *req.Email)
		v.Email("email", *req.Email)
	}
	if req.Name != nil {
		v.Required("name", *req.Name)
		v.MinLength("name", *req.Name, 2)
	}
	if req.Role != nil {
		if !caller.IsAdmin() {
			h.WriteForbidden(w, "Only admins can change roles")
			return
		}
		v.OneOf("role", *req.Role, model.ValidRoles)
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	account, err := h.queries.UpdateAccount(r.Context(), store.UpdateAccountParams{
		ID:    id,
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		switch {
		case err == store.ErrNoFields:
			h.WriteError(w, http.StatusBadRequest, "No fields to update")
		case isNotFound(err):
			h.WriteNotFound(w, "Account not found")
		case isUniqueViolation(err):
			h.WriteConflict(w, "An account with this email already exists")
		default:
			h.WriteInternalError(w, r, err)
		}
		return
	}

	callerID := caller.ID
	h.audit.LogInfo(r.Context(), model.AuditCategoryAccount, "account updated",
		&callerID, middleware.ClientIP(r), map[string]any{"account_id": id})

	h.WriteEntity(w, http.StatusOK, "account", newAccountView(account))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles PUT /accounts/{id}/password (self or admin).
// A self-change must supply the current password; an admin changing
// another account's password does not.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	caller := middleware.GetAccount(r)
	if !canActOnAccount(caller, id) {
		h.WriteForbidden(w, "You can only change your own password")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	selfChange := caller.ID == id

	var v handler.Validator
	v.Required("new_password", req.NewPassword)
	v.MinLength("new_password", req.NewPassword, 6)
	if selfChange {
		v.Required("current_password", req.CurrentPassword)
	}
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	target, err := h.queries.GetAccountByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Account not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	if selfChange {
		ok, err := auth.CheckPassword(req.CurrentPassword, target.PasswordHash)
		if err != nil {
			h.WriteInternalError(w, r, err)
			return
		}
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	if err := h.queries.UpdateAccountPassword(r.Context(), id, hash); err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	callerID := caller.ID
	h.audit.LogInfo(r.Context(), model.AuditCategoryAccount, "password changed",
		&callerID, middleware.ClientIP(r), map[string]any{"account_id": id})

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// DeleteAccount handles DELETE /accounts/{id} (admin only).
// An admin may not delete their own account.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}
	caller := middleware.GetAccount(r)
	if caller.ID == id {
		h.WriteForbidden(w, "You cannot delete your own account")
		return
	}

	// The admin count and the delete run in one transaction so two
	// concurrent deletes cannot remove the last two admins together.
	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	defer func() { _ = tx.Rollback() }()
	qtx := h.queries.WithTx(tx)

	target, err := qtx.GetAccountByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Account not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	if target.IsAdmin() {
		admins, err := qtx.CountAccountsByRole(r.Context(), model.RoleAdmin)
		if err != nil {
			h.WriteInternalError(w, r, err)
			return
		}
		if admins <= 1 {
			h.WriteForbidden(w, "Cannot delete the last admin account")
			return
		}
	}

	if err := qtx.DeleteAccount(r.Context(), id); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Account not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	callerID := caller.ID
	h.audit.LogWarning(r.Context(), model.AuditCategoryAccount, "account deleted",
		&callerID, middleware.ClientIP(r), map[string]any{"account_id": id})

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}
