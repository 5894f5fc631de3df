package model

import (
	"database/sql"
	"time"
)

// Application statuses. Transitions are admin-driven only.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
	ApplicationStatusWaitlist = "waitlist"
)

// ValidApplicationStatuses lists the statuses an application may hold.
var ValidApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
	ApplicationStatusWaitlist,
}

// Application represents a program application submitted from the public site.
// ProgramID is nullable at the schema level but required at submission time.
type Application struct {
	ID            int64         `json:"id"`
	ProgramID     sql.NullInt64 `json:"-"`
	ApplicantName string        `json:"applicant_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	Message       string        `json:"message,omitempty"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsValidApplicationStatus checks if a status is one of the known application statuses.
func IsValidApplicationStatus(status string) bool {
	for _, s := range ValidApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
