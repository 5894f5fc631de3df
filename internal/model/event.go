package model

import (
	"database/sql"
	"time"
)

// Event statuses.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// ValidEventStatuses lists the statuses an event may hold.
var ValidEventStatuses = []string{
	EventStatusUpcoming,
	EventStatusOngoing,
	EventStatusCompleted,
	EventStatusCancelled,
}

// Event represents a community event with optional capacity-limited registration.
type Event struct {
	ID                   int64         `json:"id"`
	Title                string        `json:"title"`
	Slug                 string        `json:"slug"`
	Description          string        `json:"description"` // Markdown source
	Location             string        `json:"location,omitempty"`
	StartsAt             time.Time     `json:"starts_at"`
	EndsAt               sql.NullTime  `json:"-"`
	Capacity             sql.NullInt64 `json:"-"`
	Registered           int64         `json:"registered"`
	RegistrationRequired bool          `json:"registration_required"`
	Status               string        `json:"status"`
	Featured             bool          `json:"featured"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// HasCapacity returns true if the event still has open registration slots.
// Events without a capacity limit always have capacity.
func (e *Event) HasCapacity() bool {
	if !e.Capacity.Valid {
		return true
	}
	return e.Registered < e.Capacity.Int64
}
