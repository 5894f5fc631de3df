package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const auditColumns = "id, level, category, message, account_id, ip_address, metadata, created_at"

func scanAuditEntry(row rowScanner) (model.AuditEntry, error) {
	var e model.AuditEntry
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.AccountID,
		&e.IPAddress, &e.Metadata, &e.CreatedAt)
	return e, err
}

// CreateAuditEntryParams holds the fields for writing an audit log entry.
type CreateAuditEntryParams struct {
	Level     string
	Category  string
	Message   string
	AccountID sql.NullInt64
	IPAddress string
	Metadata  string
	CreatedAt time.Time
}

// CreateAuditEntry appends an entry to the audit log.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) (model.AuditEntry, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO audit_log (level, category, message, account_id, ip_address, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+auditColumns,
		arg.Level, arg.Category, arg.Message, arg.AccountID, arg.IPAddress,
		arg.Metadata, arg.CreatedAt)
	return scanAuditEntry(row)
}

// ListRecentAuditEntries returns the newest audit log entries.
func (q *Queries) ListRecentAuditEntries(ctx context.Context, limit int64) ([]model.AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+auditColumns+" FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
