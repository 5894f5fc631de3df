// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func createEvent(t *testing.T, srv *httptest.Server, token string, payload map[string]any) map[string]any {
	t.Helper()
	if _, ok := payload["starts_at"]; !ok {
		payload["starts_at"] = time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	}
	resp := doJSON(t, srv, http.MethodPost, "/events", token, payload)
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: status %d, body %v", resp.StatusCode, body)
	}
	event, _ := body["event"].(map[string]any)
	return event
}

func TestCreateEventValidation(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	t.Run("collects all violations", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/events", adminToken, map[string]any{
			"title":     "",
			"starts_at": "next tuesday",
			"capacity":  -5,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		errs, _ := body["errors"].([]any)
		if len(errs) < 3 {
			t.Errorf("expected title, starts_at and capacity errors, got %v", errs)
		}
	})

	t.Run("ends before start", func(t *testing.T) {
		start := time.Now().Add(48 * time.Hour).UTC()
		resp := doJSON(t, srv, http.MethodPost, "/events", adminToken, map[string]any{
			"title":     "Backwards Event",
			"starts_at": start.Format(time.RFC3339),
			"ends_at":   start.Add(-time.Hour).Format(time.RFC3339),
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status %d, want 400", resp.StatusCode)
		}
	})
}

func TestRegisterForEvent(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	t.Run("successful registration increments count", func(t *testing.T) {
		event := createEvent(t, srv, adminToken, map[string]any{
			"title": "Open House", "capacity": 10,
		})
		id := int64(event["id"].(float64))

		resp := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/events/%d/register", id), "", nil)
		body := decodeBody(t, resp)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d, body %v", resp.StatusCode, body)
		}
		ev, _ := body["event"].(map[string]any)
		if ev["registered"] != float64(1) {
			t.Errorf("registered = %v, want 1", ev["registered"])
		}
	})

	t.Run("full event rejects registration", func(t *testing.T) {
		event := createEvent(t, srv, adminToken, map[string]any{
			"title": "Tiny Workshop", "capacity": 1,
		})
		id := int64(event["id"].(float64))
		path := fmt.Sprintf("/events/%d/register", id)

		resp := doJSON(t, srv, http.MethodPost, path, "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("first registration: status %d", resp.StatusCode)
		}

		resp = doJSON(t, srv, http.MethodPost, path, "", nil)
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("second registration: status %d, want 409", resp.StatusCode)
		}
		if msg := errorMessage(t, resp); msg != "Event is at full capacity" {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("non-upcoming event is closed", func(t *testing.T) {
		event := createEvent(t, srv, adminToken, map[string]any{
			"title": "Past Gala", "status": "completed",
		})
		id := int64(event["id"].(float64))

		resp := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/events/%d/register", id), "", nil)
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("status %d, want 409", resp.StatusCode)
		}
		if msg := errorMessage(t, resp); msg != "Registration is closed for this event" {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("unlimited capacity always accepts", func(t *testing.T) {
		event := createEvent(t, srv, adminToken, map[string]any{
			"title": "Community Picnic",
		})
		id := int64(event["id"].(float64))
		path := fmt.Sprintf("/events/%d/register", id)

		for i := 0; i < 3; i++ {
			resp := doJSON(t, srv, http.MethodPost, path, "", nil)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("registration %d: status %d", i+1, resp.StatusCode)
			}
		}
	})

	t.Run("absent event", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/events/99999/register", "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status %d, want 404", resp.StatusCode)
		}
	})
}

func TestUpdateEventClearsEndTime(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	start := time.Now().Add(48 * time.Hour).UTC()
	event := createEvent(t, srv, adminToken, map[string]any{
		"title":     "Evening Talk",
		"starts_at": start.Format(time.RFC3339),
		"ends_at":   start.Add(2 * time.Hour).Format(time.RFC3339),
	})
	id := int64(event["id"].(float64))
	if event["ends_at"] == nil {
		t.Fatal("ends_at not set on create")
	}

	resp := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/events/%d", id), adminToken,
		map[string]any{"ends_at": ""})
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}
	updated, _ := body["event"].(map[string]any)
	if updated["ends_at"] != nil {
		t.Errorf("ends_at = %v, want null after clearing", updated["ends_at"])
	}
}

func TestEventNullableFieldsInResponse(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	event := createEvent(t, srv, adminToken, map[string]any{"title": "No Limits"})
	if event["capacity"] != nil {
		t.Errorf("capacity = %v, want null for unlimited events", event["capacity"])
	}
	if event["ends_at"] != nil {
		t.Errorf("ends_at = %v, want null when not provided", event["ends_at"])
	}

	capped := createEvent(t, srv, adminToken, map[string]any{"title": "Limited", "capacity": 25})
	if capped["capacity"] != float64(25) {
		t.Errorf("capacity = %v, want 25", capped["capacity"])
	}
}

func TestCreateEventDuplicateSlug(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	createEvent(t, srv, adminToken, map[string]any{"title": "Spring Gala"})

	resp := doJSON(t, srv, http.MethodPost, "/events", adminToken, map[string]any{
		"title":     "Another Gala",
		"slug":      "spring-gala",
		"starts_at": time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %d, want 409", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "An event with this slug already exists" {
		t.Errorf("message = %q", msg)
	}
}
