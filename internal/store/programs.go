package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const programColumns = "id, title, slug, summary, description, features, status, featured, image_url, created_at, updated_at"

// boolToInt encodes a flag for storage. Flags live in INTEGER columns; the
// conversion happens only here at the adapter boundary.
func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func scanProgram(row rowScanner) (model.Program, error) {
	var p model.Program
	var features string
	var featured int64
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description,
		&features, &p.Status, &featured, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Program{}, err
	}
	p.Featured = featured != 0
	p.Features, err = model.DecodeStringList(features)
	if err != nil {
		return model.Program{}, err
	}
	return p, nil
}

// CreateProgramParams holds the fields for creating a program.
type CreateProgramParams struct {
	Title       string
	Slug        string
	Summary     string
	Description string
	Features    model.StringList
	Status      string
	Featured    bool
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProgram inserts a program and returns the created row.
func (q *Queries) CreateProgram(ctx context.Context, arg CreateProgramParams) (model.Program, error) {
	features, err := model.EncodeStringList(arg.Features)
	if err != nil {
		return model.Program{}, err
	}
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO programs (title, slug, summary, description, features, status, featured, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+programColumns,
		arg.Title, arg.Slug, arg.Summary, arg.Description, features, arg.Status,
		boolToInt(arg.Featured), arg.ImageURL, arg.CreatedAt, arg.UpdatedAt)
	return scanProgram(row)
}

// GetProgramByID fetches a program by id.
func (q *Queries) GetProgramByID(ctx context.Context, id int64) (model.Program, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+programColumns+" FROM programs WHERE id = ?", id)
	return scanProgram(row)
}

// GetProgramBySlug fetches a program by its unique slug.
func (q *Queries) GetProgramBySlug(ctx context.Context, slug string) (model.Program, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+programColumns+" FROM programs WHERE slug = ?", slug)
	return scanProgram(row)
}

// ProgramSlugExists reports whether a slug is taken, optionally excluding one id.
func (q *Queries) ProgramSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM programs WHERE slug = ? AND id != ?", slug, excludeID).Scan(&count)
	return count > 0, err
}

// ProgramFilter holds the equality filters shared by list and count queries.
type ProgramFilter struct {
	Status   string
	Featured sql.NullBool
}

func (f ProgramFilter) where() (string, []any) {
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

// ListProgramsParams holds filters and pagination for listing programs.
type ListProgramsParams struct {
	Filter ProgramFilter
	Limit  int64
	Offset int64
}

// ListPrograms returns programs ordered featured-first, then newest.
func (q *Queries) ListPrograms(ctx context.Context, arg ListProgramsParams) ([]model.Program, error) {
	where, args := arg.Filter.where()
	args = append(args, arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+programColumns+" FROM programs"+where+
			" ORDER BY featured DESC, created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// CountPrograms returns the number of programs matching the same filter
// predicate as ListPrograms.
func (q *Queries) CountPrograms(ctx context.Context, filter ProgramFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM programs"+where, args...).Scan(&count)
	return count, err
}

// UpdateProgramParams holds the partial field set for updating a program.
// Nil fields are left untouched.
type UpdateProgramParams struct {
	ID          int64
	Title       *string
	Slug        *string
	Summary     *string
	Description *string
	Features    *model.StringList
	Status      *string
	Featured    *bool
	ImageURL    *string
}

// UpdateProgram applies a partial update and returns the updated row.
// Returns ErrNoFields when every field is nil.
func (q *Queries) UpdateProgram(ctx context.Context, arg UpdateProgramParams) (model.Program, error) {
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
	if arg.Summary != nil {
		sets = append(sets, "summary = ?")
		args = append(args, *arg.Summary)
	}
	if arg.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *arg.Description)
	}
	if arg.Features != nil {
		features, err := model.EncodeStringList(*arg.Features)
		if err != nil {
			return model.Program{}, err
		}
		sets = append(sets, "features = ?")
		args = append(args, features)
	}
	if arg.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *arg.Status)
	}
	if arg.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, boolToInt(*arg.Featured))
	}
	if arg.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *arg.ImageURL)
	}
	if len(sets) == 0 {
		return model.Program{}, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), arg.ID)

	row := q.db.QueryRowContext(ctx,
		"UPDATE programs SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING "+programColumns,
		args...)
	return scanProgram(row)
}

// DeleteProgram removes a program by id.
// Returns sql.ErrNoRows when the program does not exist. Deleting a program
// with applications fails with a foreign key constraint error (restrict policy).
func (q *Queries) DeleteProgram(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM programs WHERE id = ?", id)
}
