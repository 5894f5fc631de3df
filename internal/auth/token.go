// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightpath/brightpath-go/internal/model"
)

// DefaultTokenTTL is the lifetime of an issued bearer token.
const DefaultTokenTTL = 24 * time.Hour

// Claims holds the identity claims carried by a bearer token.
type Claims struct {
	AccountID int64
	Email     string
	Role      string
}

// TokenIssuer signs and verifies HS256 bearer tokens for accounts.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given shared secret.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a bearer token for the account.
func (i *TokenIssuer) Issue(account *model.Account) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatInt(account.ID, 10),
		"email": account.Email,
		"role":  account.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	})

	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token and extracts its claims.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	raw, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("parse claims: unsupported claim type %T", tok.Claims)
	}

	claims := &Claims{}
	sub, ok := raw["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("parse claims: missing subject")
	}
	claims.AccountID, err = strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse claims: invalid subject %q", sub)
	}
	if email, ok := raw["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := raw["role"].(string); ok {
		claims.Role = role
	}

	return claims, nil
}
