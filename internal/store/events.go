package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const eventColumns = "id, title, slug, description, location, starts_at, ends_at, capacity, registered, registration_required, status, featured, created_at, updated_at"

func scanEvent(row rowScanner) (model.Event, error) {
	var e model.Event
	var regRequired, featured int64
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.Capacity, &e.Registered, &regRequired,
		&e.Status, &featured, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	e.RegistrationRequired = regRequired != 0
	e.Featured = featured != 0
	return e, nil
}

// CreateEventParams holds the fields for creating an event.
type CreateEventParams struct {
	Title                string
	Slug                 string
	Description          string
	Location             string
	StartsAt             time.Time
	EndsAt               sql.NullTime
	Capacity             sql.NullInt64
	RegistrationRequired bool
	Status               string
	Featured             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CreateEvent inserts an event and returns the created row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (title, slug, description, location, starts_at, ends_at, capacity, registration_required, status, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		arg.Title, arg.Slug, arg.Description, arg.Location, arg.StartsAt, arg.EndsAt,
		arg.Capacity, boolToInt(arg.RegistrationRequired), arg.Status,
		boolToInt(arg.Featured), arg.CreatedAt, arg.UpdatedAt)
	return scanEvent(row)
}

// GetEventByID fetches an event by id.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (model.Event, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	return scanEvent(row)
}

// GetEventBySlug fetches an event by its unique slug.
func (q *Queries) GetEventBySlug(ctx context.Context, slug string) (model.Event, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE slug = ?", slug)
	return scanEvent(row)
}

// EventSlugExists reports whether a slug is taken, optionally excluding one id.
func (q *Queries) EventSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE slug = ? AND id != ?", slug, excludeID).Scan(&count)
	return count > 0, err
}

// EventFilter holds the equality filters shared by list and count queries.
type EventFilter struct {
	Status   string
	Featured sql.NullBool
}

func (f EventFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Featured.Valid {
		conds = append(conds, "featured = ?")
		args = append(args, boolToInt(f.Featured.Bool))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListEventsParams holds filters and pagination for listing events.
type ListEventsParams struct {
	Filter EventFilter
	Limit  int64
	Offset int64
}

// ListEvents returns events ordered featured-first, then by start date descending.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	where, args := arg.Filter.where()
	args = append(args, arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events"+where+
			" ORDER BY featured DESC, starts_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the number of events matching the same filter
// predicate as ListEvents.
func (q *Queries) CountEvents(ctx context.Context, filter EventFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events"+where, args...).Scan(&count)
	return count, err
}

// UpdateEventParams holds the partial field set for updating an event.
// Nil fields are left untouched.
type UpdateEventParams struct {
	ID                   int64
	Title                *string
	Slug                 *string
	Description          *string
	Location             *string
	StartsAt             *time.Time
	EndsAt               *sql.NullTime
	Capacity             *sql.NullInt64
	RegistrationRequired *bool
	Status               *string
	Featured             *bool
}

// UpdateEvent applies a partial update and returns the updated row.
// Returns ErrNoFields when every field is nil.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error) {
	var sets []string
	var args []any

	if arg.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *arg.Title)
	}
	if arg.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *arg.Slug)
	}
	if arg.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *arg.Description)
	}
	if arg.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *arg.Location)
	}
	if arg.StartsAt != nil {
		sets = append(sets, "starts_at = ?")
		args = append(args, *arg.StartsAt)
	}
	if arg.EndsAt != nil {
		sets = append(sets, "ends_at = ?")
		args = append(args, *arg.EndsAt)
	}
	if arg.Capacity != nil {
		sets = append(sets, "capacity = ?")
		args = append(args, *arg.Capacity)
	}
	if arg.RegistrationRequired != nil {
		sets = append(sets, "registration_required = ?")
		args = append(args, boolToInt(*arg.RegistrationRequired))
	}
	if arg.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *arg.Status)
	}
	if arg.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, boolToInt(*arg.Featured))
	}
	if len(sets) == 0 {
		return model.Event{}, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), arg.ID)

	row := q.db.QueryRowContext(ctx,
		"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING "+eventColumns,
		args...)
	return scanEvent(row)
}

// DeleteEvent removes an event by id.
// Returns sql.ErrNoRows when the event does not exist.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM events WHERE id = ?", id)
}

// RegisterForEvent atomically claims one registration slot. The capacity
// check and the increment are a single conditional statement so two
// concurrent registrations at the capacity boundary cannot both succeed.
// Returns true when a slot was claimed, false when the event is not
// upcoming or is already full, and sql.ErrNoRows is never used here:
// callers distinguish the false cases by re-reading the event.
func (q *Queries) RegisterForEvent(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE events
		SET registered = registered + 1, updated_at = ?
		WHERE id = ?
		  AND status = ?
		  AND (capacity IS NULL OR registered < capacity)`,
		time.Now(), id, model.EventStatusUpcoming)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// MarkEventsOngoing moves upcoming events whose start time has passed to
// the ongoing status. Returns the affected events.
func (q *Queries) MarkEventsOngoing(ctx context.Context, now time.Time) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		UPDATE events
		SET status = ?, updated_at = ?
		WHERE status = ? AND starts_at <= ?
		RETURNING `+eventColumns,
		model.EventStatusOngoing, now, model.EventStatusUpcoming, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// MarkEventsCompleted moves ongoing events whose end time has passed to
// the completed status. Events without an end time complete a day after
// they start. Returns the affected events.
func (q *Queries) MarkEventsCompleted(ctx context.Context, now time.Time) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		UPDATE events
		SET status = ?, updated_at = ?
		WHERE status = ?
		  AND ((ends_at IS NOT NULL AND ends_at <= ?)
		       OR (ends_at IS NULL AND starts_at <= ?))
		RETURNING `+eventColumns,
		model.EventStatusCompleted, now, model.EventStatusOngoing,
		now, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}
