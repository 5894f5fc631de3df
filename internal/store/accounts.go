package store

import (
	"context"
	"strings"
	"time"

	"github.com/brightpath/brightpath-go/internal/model"
)

const accountColumns = "id, email, password_hash, name, role, created_at, updated_at, last_login_at"

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role,
		&a.CreatedAt, &a.UpdatedAt, &a.LastLoginAt)
	return a, err
}

// CreateAccountParams holds the fields for creating an account.
type CreateAccountParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAccount inserts an account and returns the created row.
func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (model.Account, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, password_hash, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+accountColumns,
		arg.Email, arg.PasswordHash, arg.Name, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	return scanAccount(row)
}

// GetAccountByID fetches an account by id.
func (q *Queries) GetAccountByID(ctx context.Context, id int64) (model.Account, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	return scanAccount(row)
}

// GetAccountByEmail fetches an account by its unique email.
func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (model.Account, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email = ?", email)
	return scanAccount(row)
}

// ListAccountsParams holds pagination for listing accounts.
type ListAccountsParams struct {
	Limit  int64
	Offset int64
}

// ListAccounts returns accounts ordered by creation time descending.
func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]model.Account, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// CountAccounts returns the total number of accounts.
func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count)
	return count, err
}

// CountAccountsByRole returns the number of accounts holding a role.
func (q *Queries) CountAccountsByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE role = ?", role).Scan(&count)
	return count, err
}

// UpdateAccountParams holds the partial field set for updating an account.
// Nil fields are left untouched.
type UpdateAccountParams struct {
	ID    int64
	Email *string
	Name  *string
	Role  *string
}

// UpdateAccount applies a partial update and returns the updated row.
// Returns ErrNoFields when every field is nil.
func (q *Queries) UpdateAccount(ctx context.Context, arg UpdateAccountParams) (model.Account, error) {
	var sets []string
	var args []any

	if arg.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *arg.Email)
	}
	if arg.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *arg.Name)
	}
	if arg.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *arg.Role)
	}
	if len(sets) == 0 {
		return model.Account{}, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), arg.ID)

	row := q.db.QueryRowContext(ctx,
		"UPDATE accounts SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING "+accountColumns,
		args...)
	return scanAccount(row)
}

// UpdateAccountPassword replaces the stored credential hash.
func (q *Queries) UpdateAccountPassword(ctx context.Context, id int64, passwordHash string) error {
	return q.execAffectingOne(ctx,
		"UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now(), id)
}

// UpdateAccountLastLogin records a successful login.
func (q *Queries) UpdateAccountLastLogin(ctx context.Context, id int64, at time.Time) error {
	return q.execAffectingOne(ctx,
		"UPDATE accounts SET last_login_at = ? WHERE id = ?", at, id)
}

// DeleteAccount removes an account by id.
// Returns sql.ErrNoRows when the account does not exist.
func (q *Queries) DeleteAccount(ctx context.Context, id int64) error {
	return q.execAffectingOne(ctx, "DELETE FROM accounts WHERE id = ?", id)
}
