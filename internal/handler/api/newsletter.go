// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-go/internal/handler"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
)

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe handles POST /newsletter/subscribe (public, rate limited).
// Subscribing an already-known email reactivates it instead of erroring.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var v handler.Validator
	v.Required("email", req.Email)
	v.Email("email", req.Email)
	if !v.Valid() {
		h.WriteValidationErrors(w, v.Errors())
		return
	}

	now := time.Now()
	subscription, created, err := h.queries.UpsertSubscription(r.Context(), store.UpsertSubscriptionParams{
		Email:            req.Email,
		Name:             req.Name,
		UnsubscribeToken: uuid.NewString(),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	h.audit.LogInfo(r.Context(), model.AuditCategoryNewsletter, "newsletter subscription",
		nil, middleware.ClientIP(r), map[string]any{"subscription_id": subscription.ID})

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	h.WriteEntity(w, status, "subscription", subscription)
}

// Unsubscribe handles POST /newsletter/unsubscribe/{token} (public).
// The token is the per-subscription secret issued at subscribe time.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := handler.ParseTokenParam(r)
	if token == "" {
		h.WriteError(w, http.StatusBadRequest, "Invalid unsubscribe token")
		return
	}

	if err := h.queries.UnsubscribeByToken(r.Context(), token); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Subscription not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed"})
}

// subscriptionAdminView surfaces the unsubscribe token in admin listings.
// There is no outbound mail yet, so operators relay tokens to subscribers
// who ask to be removed.
type subscriptionAdminView struct {
	model.Subscription
	UnsubscribeToken string `json:"unsubscribe_token"`
}

// ListSubscriptions handles GET /newsletter (admin only).
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePageParam(r)
	limit := handler.ParseLimitParam(r)
	status := r.URL.Query().Get("status")

	subscriptions, err := h.queries.ListSubscriptions(r.Context(), store.ListSubscriptionsParams{
		Status: status,
		Limit:  int64(limit),
		Offset: handler.Offset(page, limit),
	})
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	total, err := h.queries.CountSubscriptions(r.Context(), status)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}

	views := make([]subscriptionAdminView, 0, len(subscriptions))
	for _, s := range subscriptions {
		views = append(views, subscriptionAdminView{Subscription: s, UnsubscribeToken: s.UnsubscribeToken})
	}
	h.WriteList(w, "subscriptions", views, handler.NewPagination(page, limit, total))
}

// DeleteSubscription handles DELETE /newsletter/{id} (admin only).
func (h *Handler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	subscription, err := h.queries.GetSubscriptionByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Subscription not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	if err := h.queries.DeleteSubscription(r.Context(), id); err != nil {
		if isNotFound(err) {
			h.WriteNotFound(w, "Subscription not found")
			return
		}
		h.WriteInternalError(w, r, err)
		return
	}

	caller := middleware.GetAccount(r)
	h.audit.LogInfo(r.Context(), model.AuditCategoryNewsletter, "subscription deleted",
		&caller.ID, middleware.ClientIP(r), map[string]any{"subscription_id": id, "email": subscription.Email})

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Subscription deleted"})
}
