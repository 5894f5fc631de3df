// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including Account, Program, Event, and the other content entities.
package model

import (
	"database/sql"
	"time"
)

// Account roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRoles lists the roles an account may hold.
var ValidRoles = []string{RoleAdmin, RoleUser}

// Account represents a back-office account.
type Account struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// IsAdmin returns true if the account has the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
