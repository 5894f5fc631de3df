package store

import (
	"context"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const contactColumns = "id, name, email, subject, body, status, created_at, updated_at"

func scanContactMessage(row rowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateContactMessageParams holds the fields for creating a contact message.
type CreateContactMessageParams struct {
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateContactMessage inserts a contact message in the unread state.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, body, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+contactColumns,
		arg.Name, arg.Email, arg.Subject, arg.Body, model.ContactStatusUnread,
		arg.CreatedAt, arg.UpdatedAt)
	return scanContactMessage(row)
}

// GetContactMessageByID fetches a contact message by id.
func (q *Queries) GetContactMessageByID(ctx context.Context, id int64) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contact_messages WHERE id = ?", id)
	return scanContactMessage(row)
}

// ListContactMessagesParams holds filters and pagination for listing messages.
type ListContactMessagesParams struct {
	Status string
	Limit  int64
	Offset int64
}

func contactWhere(status string) (string, []any) {
	if status == "" {
		return "", nil
	}
	return " WHERE status = ?", []any{status}
}

// ListContactMessages returns messages ordered newest first.
func (q *Queries) ListContactMessages(ctx context.Context, arg ListContactMessagesParams) ([]model.ContactMessage, error) {
	where, args := contactWhere(arg.Status)
	args = append(args, arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contact_messages"+where+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountContactMessages returns the number of messages matching the same
// filter predicate as ListContactMessages.
func (q *Queries) CountContactMessages(ctx context.Context, status string) (int64, error) {
	where, args := contactWhere(status)
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages"+where, args...).Scan(&count)
	return count, err
}

// UpdateContactMessageStatus moves a message to a new state and returns the row.
func (q *Queries) UpdateContactMessageStatus(ctx context.Context, id int64, status string) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		"UPDATE contact_messages SET status = ?, updated_at = ? WHERE id = ? RETURNING "+contactColumns,
		status, time.Now(), id)
	return scanContactMessage(row)
}

// DeleteContactMessage removes a message by id.
// Returns sql.ErrNoRows when the message does not exist.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
}
