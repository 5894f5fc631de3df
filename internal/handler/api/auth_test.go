// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "maria@example.org",
		"password": "secret123",
		"name":     "Maria",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d, want 201", resp.StatusCode)
	}
	var reg struct {
		Token   string `json:"token"`
		Account struct {
			ID    float64 `json:"id"`
			Email string  `json:"email"`
			Role  string  `json:"role"`
		} `json:"account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}
	resp.Body.Close()
	if reg.Token == "" {
		t.Error("register returned no token")
	}
	if reg.Account.Role != "user" {
		t.Errorf("new account role = %q, want %q", reg.Account.Role, "user")
	}

	resp = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "maria@example.org",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d, want 200", resp.StatusCode)
	}
	var login struct {
		Token   string `json:"token"`
		Account struct {
			ID float64 `json:"id"`
		} `json:"account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	resp.Body.Close()
	if login.Account.ID != reg.Account.ID {
		t.Errorf("login account id = %v, register id = %v", login.Account.ID, reg.Account.ID)
	}

	// The token works against a protected endpoint.
	resp = doJSON(t, srv, http.MethodGet, "/auth/me", login.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("me: status %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "not-an-email",
		"password": "abc",
		"name":     "",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	errs, ok := body["errors"].([]any)
	if !ok {
		t.Fatalf("expected errors array, got %v", body)
	}
	if len(errs) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(errs), errs)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := map[string]any{
		"email":    "dup@example.org",
		"password": "secret123",
		"name":     "First",
	}
	resp := doJSON(t, srv, http.MethodPost, "/auth/register", "", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: status %d", resp.StatusCode)
	}

	resp = doJSON(t, srv, http.MethodPost, "/auth/register", "", payload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second register: status %d, want 409", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "An account with this email already exists" {
		t.Errorf("message = %q", msg)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, q := newTestServer(t)
	seedAccount(t, srv, q, "user@example.org", "user")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "user@example.org", password: "wrong-password"},
		{name: "unknown email", email: "nobody@example.org", password: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
				"email":    tt.email,
				"password": tt.password,
			})
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status %d, want 401", resp.StatusCode)
			}
			if msg := errorMessage(t, resp); msg != "Invalid credentials" {
				t.Errorf("message = %q, want %q", msg, "Invalid credentials")
			}
		})
	}
}

func TestMeRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/auth/me", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, srv, http.MethodGet, "/auth/me", "not-a-jwt", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", resp.StatusCode)
	}
}
