// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCreateTestimonial(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	t.Run("with rating", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/testimonials", adminToken, map[string]any{
			"author_name": "Priya N.",
			"quote":       "The mentorship program changed my outlook completely.",
			"rating":      5,
			"status":      "published",
		})
		body := decodeBody(t, resp)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d, body %v", resp.StatusCode, body)
		}
		tm, _ := body["testimonial"].(map[string]any)
		if tm["rating"] != float64(5) {
			t.Errorf("rating = %v, want 5", tm["rating"])
		}
	})

	t.Run("without rating", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/testimonials", adminToken, map[string]any{
			"author_name": "Anonymous",
			"quote":       "Great people, great cause.",
		})
		body := decodeBody(t, resp)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d, body %v", resp.StatusCode, body)
		}
		tm, _ := body["testimonial"].(map[string]any)
		if _, present := tm["rating"]; present && tm["rating"] != nil {
			t.Errorf("rating = %v, want absent", tm["rating"])
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/testimonials", adminToken, map[string]any{
			"author_name": "Grumpy",
			"quote":       "meh",
			"rating":      7,
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status %d, want 400", resp.StatusCode)
		}
	})
}

func TestUpdateTestimonialRating(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	resp := doJSON(t, srv, http.MethodPost, "/testimonials", adminToken, map[string]any{
		"author_name": "Jon", "quote": "Solid program.", "rating": 3,
	})
	body := decodeBody(t, resp)
	tm, _ := body["testimonial"].(map[string]any)
	id := int64(tm["id"].(float64))

	resp = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/testimonials/%d", id), adminToken,
		map[string]any{"rating": 4})
	body = decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, body %v", resp.StatusCode, body)
	}
	tm, _ = body["testimonial"].(map[string]any)
	if tm["rating"] != float64(4) {
		t.Errorf("rating = %v, want 4", tm["rating"])
	}
	if tm["quote"] != "Solid program." {
		t.Errorf("quote changed by partial update: %v", tm["quote"])
	}
}

func TestListTestimonialsPublic(t *testing.T) {
	srv, q := newTestServer(t)
	_, adminToken := seedAccount(t, srv, q, "admin@example.org", "admin")

	for i, status := range []string{"published", "published", "pending"} {
		resp := doJSON(t, srv, http.MethodPost, "/testimonials", adminToken, map[string]any{
			"author_name": fmt.Sprintf("Author %d", i),
			"quote":       "A wonderful quote.",
			"status":      status,
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed testimonial %d: status %d", i, resp.StatusCode)
		}
	}

	resp := doJSON(t, srv, http.MethodGet, "/testimonials?status=published", "", nil)
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	items, _ := body["testimonials"].([]any)
	if len(items) != 2 {
		t.Errorf("got %d testimonials, want 2", len(items))
	}
}
