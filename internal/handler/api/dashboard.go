// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"
)

// DashboardStats handles GET /dashboard/stats (admin only).
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.GetDashboardStats(r.Context())
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteEntity(w, http.StatusOK, "stats", stats)
}

// RecentActivity handles GET /dashboard/activity (admin only).
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListRecentAuditEntries(r.Context(), 50)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	h.WriteEntity(w, http.StatusOK, "activity", entries)
}

// Health handles GET /health. Pings the database so load balancers see
// a failing dependency, not just a live process.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		h.log.Error("health check failed", "error", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	h.WriteJSON(w, code, map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
