package model

import (
	"database/sql"
	"time"
)

// Audit log levels.
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit log categories.
const (
	AuditCategoryAuth       = "auth"
	AuditCategoryAccount    = "account"
	AuditCategoryContent    = "content"
	AuditCategoryNewsletter = "newsletter"
	AuditCategorySystem     = "system"
)

// AuditEntry represents a row in the audit log.
type AuditEntry struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	AccountID sql.NullInt64
	IPAddress string
	Metadata  string // JSON string
	CreatedAt time.Time
}
