package store

import (
	"context"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const subscriptionColumns = "id, email, name, status, unsubscribe_token, created_at, updated_at"

func scanSubscription(row rowScanner) (model.Subscription, error) {
	var s model.Subscription
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Status, &s.UnsubscribeToken,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// UpsertSubscriptionParams holds the fields for subscribing an email.
type UpsertSubscriptionParams struct {
	Email            string
	Name             string
	UnsubscribeToken string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UpsertSubscription subscribes an email. Subscribing an already-known email
// reactivates the existing row instead of erroring; the original unsubscribe
// token is kept and the name is only overwritten when a new one was given.
// The second return value reports whether a new row was created.
func (q *Queries) UpsertSubscription(ctx context.Context, arg UpsertSubscriptionParams) (model.Subscription, bool, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO newsletter_subscriptions (email, name, status, unsubscribe_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			status = ?,
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE name END,
			updated_at = excluded.updated_at
		RETURNING `+subscriptionColumns,
		arg.Email, arg.Name, model.SubscriptionStatusActive, arg.UnsubscribeToken,
		arg.CreatedAt, arg.UpdatedAt, model.SubscriptionStatusActive)
	sub, err := scanSubscription(row)
	if err != nil {
		return sub, false, err
	}
	// A fresh insert stores the token we just generated; a conflict keeps
	// the original one, so the comparison tells the two paths apart.
	return sub, sub.UnsubscribeToken == arg.UnsubscribeToken, nil
}

// GetSubscriptionByID fetches a subscription by id.
func (q *Queries) GetSubscriptionByID(ctx context.Context, id int64) (model.Subscription, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+subscriptionColumns+" FROM newsletter_subscriptions WHERE id = ?", id)
	return scanSubscription(row)
}

// GetSubscriptionByToken fetches a subscription by its unsubscribe token.
func (q *Queries) GetSubscriptionByToken(ctx context.Context, token string) (model.Subscription, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+subscriptionColumns+" FROM newsletter_subscriptions WHERE unsubscribe_token = ?", token)
	return scanSubscription(row)
}

// UnsubscribeByToken marks the matching subscription as unsubscribed.
// Returns sql.ErrNoRows when the token is unknown.
func (q *Queries) UnsubscribeByToken(ctx context.Context, token string) error {
	return q.execAffectingOne(ctx,
		"UPDATE newsletter_subscriptions SET status = ?, updated_at = ? WHERE unsubscribe_token = ?",
		model.SubscriptionStatusUnsubscribed, time.Now(), token)
}

// ListSubscriptionsParams holds filters and pagination for listing subscriptions.
type ListSubscriptionsParams struct {
	Status string
	Limit  int64
	Offset int64
}

func subscriptionWhere(status string) (string, []any) {
	if status == "" {
		return "", nil
	}
	return " WHERE status = ?", []any{status}
}

// ListSubscriptions returns subscriptions ordered newest first.
func (q *Queries) ListSubscriptions(ctx context.Context, arg ListSubscriptionsParams) ([]model.Subscription, error) {
	where, args := subscriptionWhere(arg.Status)
	args = append(args, arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+subscriptionColumns+" FROM newsletter_subscriptions"+where+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CountSubscriptions returns the number of subscriptions matching the same
// filter predicate as ListSubscriptions.
func (q *Queries) CountSubscriptions(ctx context.Context, status string) (int64, error) {
	where, args := subscriptionWhere(status)
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM newsletter_subscriptions"+where, args...).Scan(&count)
	return count, err
}

// DeleteSubscription removes a subscription by id.
// Returns sql.ErrNoRows when the subscription does not exist.
func (q *Queries) DeleteSubscription(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM newsletter_subscriptions WHERE id = ?", id)
}
