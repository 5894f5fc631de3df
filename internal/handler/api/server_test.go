// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/cache"
	"github.com/brightpath/brightpath-go/internal/handler/api"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/service"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/testutil"
)

const testJWTSecret = "test-secret-key-0123456789abcdef"

// newTestServer wires a full API stack against a temporary database.
func newTestServer(t *testing.T) (*httptest.Server, *store.Queries) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	issuer, err := auth.NewTokenIssuer(testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
	})
	t.Cleanup(func() { _ = c.Close() })

	h := api.New(db, issuer, c, service.NewAuditService(db), testutil.TestLogger())
	authn := middleware.NewAuthenticator(issuer, db)
	// Generous limits so tests never trip the public rate limiter.
	limiter := middleware.NewRateLimiter(1000, 1000)

	srv := httptest.NewServer(h.Routes(authn, limiter))
	t.Cleanup(srv.Close)

	return srv, store.New(db)
}

// seedAccount inserts an account directly and returns its id and a token.
func seedAccount(t *testing.T, srv *httptest.Server, q *store.Queries, email, role string) (int64, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now().UTC()
	acct, err := q.CreateAccount(context.Background(), store.CreateAccountParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Account",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	resp := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    email,
		"password": "password123",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login for %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	return acct.ID, body.Token
}

// doJSON issues a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// decodeBody decodes a response body into a generic map and closes it.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return m
}

// errorMessage extracts the "message" field from an error response.
func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	m := decodeBody(t, resp)
	msg, _ := m["message"].(string)
	return msg
}
