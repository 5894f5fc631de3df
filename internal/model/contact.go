package model

import "time"

// Contact message statuses. Transitions are admin-driven only.
const (
	ContactStatusUnread  = "unread"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ValidContactStatuses lists the statuses a contact message may hold.
var ValidContactStatuses = []string{ContactStatusUnread, ContactStatusRead, ContactStatusReplied}

// ContactMessage represents a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidContactStatus checks if a status is one of the known contact statuses.
func IsValidContactStatus(status string) bool {
	for _, s := range ValidContactStatuses {
		if s == status {
			return true
		}
	}
	return false
}
