package model

import "time"

// Newsletter subscription statuses.
const (
	SubscriptionStatusActive       = "active"
	SubscriptionStatusUnsubscribed = "unsubscribed"
)

// Subscription represents a newsletter subscription keyed by unique email.
// Subscribing with an existing email reactivates rather than erroring.
type Subscription struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name,omitempty"`
	Status           string    `json:"status"`
	UnsubscribeToken string    `json:"-"` // Never expose in JSON
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
