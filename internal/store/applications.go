package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const applicationColumns = "id, program_id, applicant_name, email, phone, message, status, created_at, updated_at"

func scanApplication(row rowScanner) (model.Application, error) {
	var a model.Application
	err := row.Scan(&a.ID, &a.ProgramID, &a.ApplicantName, &a.Email, &a.Phone,
		&a.Message, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateApplicationParams holds the fields for submitting an application.
type CreateApplicationParams struct {
	ProgramID     int64
	ApplicantName string
	Email         string
	Phone         string
	Message       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateApplication inserts an application in the pending state.
func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) (model.Application, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO applications (program_id, applicant_name, email, phone, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+applicationColumns,
		arg.ProgramID, arg.ApplicantName, arg.Email, arg.Phone, arg.Message,
		model.ApplicationStatusPending, arg.CreatedAt, arg.UpdatedAt)
	return scanApplication(row)
}

// GetApplicationByID fetches an application by id.
func (q *Queries) GetApplicationByID(ctx context.Context, id int64) (model.Application, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE id = ?", id)
	return scanApplication(row)
}

// ApplicationFilter holds the equality filters shared by list and count queries.
type ApplicationFilter struct {
	Status    string
	ProgramID sql.NullInt64
}

func (f ApplicationFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.ProgramID.Valid {
		conds = append(conds, "program_id = ?")
		args = append(args, f.ProgramID.Int64)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListApplicationsParams holds filters and pagination for listing applications.
type ListApplicationsParams struct {
	Filter ApplicationFilter
	Limit  int64
	Offset int64
}

// ListApplications returns applications ordered newest first.
func (q *Queries) ListApplications(ctx context.Context, arg ListApplicationsParams) ([]model.Application, error) {
	where, args := arg.Filter.where()
	args = append(args, arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+applicationColumns+" FROM applications"+where+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// CountApplications returns the number of applications matching the same
// filter predicate as ListApplications.
func (q *Queries) CountApplications(ctx context.Context, filter ApplicationFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications"+where, args...).Scan(&count)
	return count, err
}

// UpdateApplicationStatus moves an application to a new state and returns the row.
func (q *Queries) UpdateApplicationStatus(ctx context.Context, id int64, status string) (model.Application, error) {
	row := q.db.QueryRowContext(ctx,
		"UPDATE applications SET status = ?, updated_at = ? WHERE id = ? RETURNING "+applicationColumns,
		status, time.Now(), id)
	return scanApplication(row)
}

// DeleteApplication removes an application by id.
// Returns sql.ErrNoRows when the application does not exist.
func (q *Queries) DeleteApplication(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM applications WHERE id = ?", id)
}
