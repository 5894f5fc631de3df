// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/middleware"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
	"github.com/brightpath/brightpath-go/internal/testutil"
)

func setupAuthenticator(t *testing.T) (*middleware.Authenticator, *auth.TokenIssuer, *store.Queries) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	issuer, err := auth.NewTokenIssuer("test-secret-key-0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return middleware.NewAuthenticator(issuer, db), issuer, store.New(db)
}

func insertAccount(t *testing.T, q *store.Queries, email, role string) model.Account {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now().UTC()
	acct, err := q.CreateAccount(context.Background(), store.CreateAccountParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return acct
}

func TestRequireAuth(t *testing.T) {
	authn, issuer, q := setupAuthenticator(t)
	acct := insertAccount(t, q, "user@example.org", "user")
	token, err := issuer.Issue(&acct)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotAccount *model.Account
	handler := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = middleware.GetAccount(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAccount = nil
			r := httptest.NewRequest("GET", "/", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotAccount == nil || gotAccount.ID != acct.ID {
					t.Errorf("context account = %+v, want id %d", gotAccount, acct.ID)
				}
			}
		})
	}
}

func TestRequireAuthDeletedAccount(t *testing.T) {
	authn, issuer, q := setupAuthenticator(t)
	acct := insertAccount(t, q, "gone@example.org", "user")
	token, err := issuer.Issue(&acct)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := q.DeleteAccount(context.Background(), acct.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	handler := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401 for a token of a deleted account", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	authn, issuer, q := setupAuthenticator(t)
	admin := insertAccount(t, q, "admin@example.org", "admin")
	user := insertAccount(t, q, "user@example.org", "user")

	adminToken, err := issuer.Issue(&admin)
	if err != nil {
		t.Fatalf("Issue(admin): %v", err)
	}
	userToken, err := issuer.Issue(&user)
	if err != nil {
		t.Fatalf("Issue(user): %v", err)
	}

	handler := authn.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "admin passes", token: adminToken, wantStatus: http.StatusOK},
		{name: "user forbidden", token: userToken, wantStatus: http.StatusForbidden},
		{name: "anonymous unauthorized", token: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			if w.Code != tt.wantStatus {
				t.Errorf("status %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	authn, issuer, q := setupAuthenticator(t)
	acct := insertAccount(t, q, "user@example.org", "user")
	token, err := issuer.Issue(&acct)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotAccount *model.Account
	handler := authn.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = middleware.GetAccount(r)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous: status %d", w.Code)
	}
	if gotAccount != nil {
		t.Errorf("anonymous request resolved an account: %+v", gotAccount)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if gotAccount == nil || gotAccount.ID != acct.ID {
		t.Errorf("authenticated request: account = %+v", gotAccount)
	}
}
