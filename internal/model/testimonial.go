package model

import (
	"database/sql"
	"time"
)

// Testimonial statuses.
const (
	TestimonialStatusPending   = "pending"
	TestimonialStatusPublished = "published"
	TestimonialStatusArchived  = "archived"
)

// ValidTestimonialStatuses lists the statuses a testimonial may hold.
var ValidTestimonialStatuses = []string{
	TestimonialStatusPending,
	TestimonialStatusPublished,
	TestimonialStatusArchived,
}

// Testimonial represents a participant quote shown on the public site.
type Testimonial struct {
	ID         int64         `json:"id"`
	AuthorName string        `json:"author_name"`
	AuthorRole string        `json:"author_role,omitempty"`
	Quote      string        `json:"quote"`
	Rating     sql.NullInt64 `json:"-"`
	Status     string        `json:"status"`
	Featured   bool          `json:"featured"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// IsValidTestimonialStatus checks if a status is one of the known testimonial statuses.
func IsValidTestimonialStatus(status string) bool {
	for _, s := range ValidTestimonialStatuses {
		if s == status {
			return true
		}
	}
	return false
}
