// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brightpath/brightpath-go/internal/auth"
	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
)

// ContextKey is the type used for request context keys.
type ContextKey string

// ContextKeyAccount is the context key for the authenticated account.
const ContextKeyAccount ContextKey = "account"

// errorBody is the JSON error response shape.
type errorBody struct {
	Message string `json:"message"`
}

// writeAuthError writes a JSON error response.
func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{Message: message})
}

// Authenticator validates bearer tokens and resolves them to accounts.
type Authenticator struct {
	issuer  *auth.TokenIssuer
	queries *store.Queries
}

// NewAuthenticator creates an Authenticator backed by the given token issuer
// and database.
func NewAuthenticator(issuer *auth.TokenIssuer, db *sql.DB) *Authenticator {
	return &Authenticator{issuer: issuer, queries: store.New(db)}
}

// resolveAccount parses the Authorization header, verifies the token, and
// loads the account. If required is true and resolution fails, an error
// response is written; the second return value reports that case.
func (a *Authenticator) resolveAccount(w http.ResponseWriter, r *http.Request, required bool) (*model.Account, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if required {
			writeAuthError(w, http.StatusUnauthorized, "Missing Authorization header")
			return nil, true
		}
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		if required {
			writeAuthError(w, http.StatusUnauthorized, "Invalid Authorization header format. Use: Bearer <token>")
			return nil, true
		}
		return nil, false
	}

	claims, err := a.issuer.Verify(parts[1])
	if err != nil {
		if required {
			writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
			return nil, true
		}
		return nil, false
	}

	account, err := a.queries.GetAccountByID(r.Context(), claims.AccountID)
	if err != nil {
		if required {
			if errors.Is(err, sql.ErrNoRows) {
				writeAuthError(w, http.StatusUnauthorized, "Account no longer exists")
			} else {
				slog.Error("failed to resolve account from token", "error", err)
				writeAuthError(w, http.StatusInternalServerError, "Failed to validate credentials")
			}
			return nil, true
		}
		return nil, false
	}

	return &account, false
}

// RequireAuth rejects requests without a valid bearer token and puts the
// resolved account into the request context.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, errorWritten := a.resolveAccount(w, r, true)
		if errorWritten {
			return
		}
		ctx := context.WithValue(r.Context(), ContextKeyAccount, *account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose caller does not hold the admin role.
// It implies RequireAuth.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := GetAccount(r)
		if account == nil || !account.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// OptionalAuth puts the account into context when a valid bearer token is
// present but never rejects the request. Public list endpoints use this to
// widen their output for admin callers.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, _ := a.resolveAccount(w, r, false)
		if account == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), ContextKeyAccount, *account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAccount retrieves the authenticated account from the request context.
// Returns nil if the request is unauthenticated.
func GetAccount(r *http.Request) *model.Account {
	account, ok := r.Context().Value(ContextKeyAccount).(model.Account)
	if !ok {
		return nil
	}
	return &account
}
