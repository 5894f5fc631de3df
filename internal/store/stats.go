package store

import (
	"context"
	"fmt"

	"github.com/brightpath/brightpath-go/internal/model"
)

// DashboardStats holds the aggregate counts shown on the admin dashboard.
// Each count is an independent query; no snapshot isolation is implied.
type DashboardStats struct {
	Accounts            int64 `json:"accounts"`
	Programs            int64 `json:"programs"`
	ActivePrograms      int64 `json:"active_programs"`
	Testimonials        int64 `json:"testimonials"`
	Events              int64 `json:"events"`
	UpcomingEvents      int64 `json:"upcoming_events"`
	ContactMessages     int64 `json:"contact_messages"`
	UnreadMessages      int64 `json:"unread_messages"`
	ActiveSubscribers   int64 `json:"active_subscribers"`
	Applications        int64 `json:"applications"`
	PendingApplications int64 `json:"pending_applications"`
}

// GetDashboardStats assembles the admin dashboard aggregate counts.
func (q *Queries) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		name string
		dest *int64
		fn   func(context.Context) (int64, error)
	}{
		{"accounts", &stats.Accounts, q.CountAccounts},
		{"programs", &stats.Programs, func(ctx context.Context) (int64, error) {
			return q.CountPrograms(ctx, ProgramFilter{})
		}},
		{"active programs", &stats.ActivePrograms, func(ctx context.Context) (int64, error) {
			return q.CountPrograms(ctx, ProgramFilter{Status: model.ProgramStatusActive})
		}},
		{"testimonials", &stats.Testimonials, func(ctx context.Context) (int64, error) {
			return q.CountTestimonials(ctx, TestimonialFilter{})
		}},
		{"events", &stats.Events, func(ctx context.Context) (int64, error) {
			return q.CountEvents(ctx, EventFilter{})
		}},
		{"upcoming events", &stats.UpcomingEvents, func(ctx context.Context) (int64, error) {
			return q.CountEvents(ctx, EventFilter{Status: model.EventStatusUpcoming})
		}},
		{"contact messages", &stats.ContactMessages, func(ctx context.Context) (int64, error) {
			return q.CountContactMessages(ctx, "")
		}},
		{"unread messages", &stats.UnreadMessages, func(ctx context.Context) (int64, error) {
			return q.CountContactMessages(ctx, model.ContactStatusUnread)
		}},
		{"active subscribers", &stats.ActiveSubscribers, func(ctx context.Context) (int64, error) {
			return q.CountSubscriptions(ctx, model.SubscriptionStatusActive)
		}},
		{"applications", &stats.Applications, func(ctx context.Context) (int64, error) {
			return q.CountApplications(ctx, ApplicationFilter{})
		}},
		{"pending applications", &stats.PendingApplications, func(ctx context.Context) (int64, error) {
			return q.CountApplications(ctx, ApplicationFilter{Status: model.ApplicationStatusPending})
		}},
	}

	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			return DashboardStats{}, fmt.Errorf("counting %s: %w", c.name, err)
		}
		*c.dest = n
	}

	return stats, nil
}
