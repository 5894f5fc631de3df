// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic shared across handlers,
// including audit logging for admin and auth activity.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
	"github.com/brightpath/brightpath-go/internal/store"
)

// AuditService writes audit trail entries.
type AuditService struct {
	queries *store.Queries
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{queries: store.New(db)}
}

// Log creates a new audit log entry.
func (s *AuditService) Log(ctx context.Context, level, category, message string, accountID *int64, ipAddress string, metadata map[string]any) error {
	var nullAccountID sql.NullInt64
	if accountID != nil {
		nullAccountID = sql.NullInt64{Int64: *accountID, Valid: true}
	}

	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
		Level:     level,
		Category:  category,
		Message:   message,
		AccountID: nullAccountID,
		IPAddress: ipAddress,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to write audit entry", "error", err)
		return err
	}

	return nil
}

// LogInfo logs an info-level audit entry.
func (s *AuditService) LogInfo(ctx context.Context, category, message string, accountID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, model.AuditLevelInfo, category, message, accountID, ipAddress, metadata)
}

// LogWarning logs a warning-level audit entry.
func (s *AuditService) LogWarning(ctx context.Context, category, message string, accountID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, model.AuditLevelWarning, category, message, accountID, ipAddress, metadata)
}

// LogError logs an error-level audit entry.
func (s *AuditService) LogError(ctx context.Context, category, message string, accountID *int64, ipAddress string, metadata map[string]any) error {
	return s.Log(ctx, model.AuditLevelError, category, message, accountID, ipAddress, metadata)
}
