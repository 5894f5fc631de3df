package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const testimonialColumns = "id, author_name, author_role, quote, rating, status, featured, created_at, updated_at"

func scanTestimonial(row rowScanner) (model.Testimonial, error) {
	var t model.Testimonial
	var featured int64
	err := row.Scan(&t.ID, &t.AuthorName, &t.AuthorRole, &t.Quote, &t.Rating,
		&t.Status, &featured, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Testimonial{}, err
	}
	t.Featured = featured != 0
	return t, nil
}

// CreateTestimonialParams holds the fields for creating a testimonial.
type CreateTestimonialParams struct {
	AuthorName string
	AuthorRole string
	Quote      string
	Rating     sql.NullInt64
	Status     string
	Featured   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateTestimonial inserts a testimonial and returns the created row.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (author_name, author_role, quote, rating, status, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+testimonialColumns,
		arg.AuthorName, arg.AuthorRole, arg.Quote, arg.Rating, arg.Status,
		boolToInt(arg.Featured), arg.CreatedAt, arg.UpdatedAt)
	return scanTestimonial(row)
}

// GetTestimonialByID fetches a testimonial by id.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id)
	return scanTestimonial(row)
}

// TestimonialFilter holds the equality filters shared by list and count queries.
type TestimonialFilter struct {
	Status   string
	Featured sql.NullBool
}

func (f TestimonialFilter) where() (string, []any) {
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

// ListTestimonialsParams holds filters and pagination for listing testimonials.
type ListTestimonialsParams struct {
	Filter TestimonialFilter
	Limit  int64
	Offset int64
}

// ListTestimonials returns testimonials ordered featured-first, then newest.
func (q *Queries) ListTestimonials(ctx context.Context, arg ListTestimonialsParams) ([]model.Testimonial, error) {
	where, args := arg.Filter.where()
	args = append(args, arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials"+where+
			" ORDER BY featured DESC, created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

// CountTestimonials returns the number of testimonials matching the same
// filter predicate as ListTestimonials.
func (q *Queries) CountTestimonials(ctx context.Context, filter TestimonialFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM testimonials"+where, args...).Scan(&count)
	return count, err
}

// UpdateTestimonialParams holds the partial field set for updating a testimonial.
// Nil fields are left untouched.
type UpdateTestimonialParams struct {
	ID         int64
	AuthorName *string
	AuthorRole *string
	Quote      *string
	Rating     *sql.NullInt64
	Status     *string
	Featured   *bool
}

// UpdateTestimonial applies a partial update and returns the updated row.
// Returns ErrNoFields when every field is nil.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (model.Testimonial, error) {
	var sets []string
	var args []any

	if arg.AuthorName != nil {
		sets = append(sets, "author_name = ?")
		args = append(args, *arg.AuthorName)
	}
	if arg.AuthorRole != nil {
		sets = append(sets, "author_role = ?")
		args = append(args, *arg.AuthorRole)
	}
	if arg.Quote != nil {
		sets = append(sets, "quote = ?")
		args = append(args, *arg.Quote)
	}
	if arg.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *arg.Rating)
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
		return model.Testimonial{}, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), arg.ID)

	row := q.db.QueryRowContext(ctx,
		"UPDATE testimonials SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING "+testimonialColumns,
		args...)
	return scanTestimonial(row)
}

// DeleteTestimonial removes a testimonial by id.
// Returns sql.ErrNoRows when the testimonial does not exist.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM testimonials WHERE id = ?", id)
}
