package repository

import (
	"context"
	"database/sql"

	"finledger/internal/domain"
)

// UserRepo persists users. Email lookups use case-sensitive equality, which
// is what SQLite's default BINARY collation on the unique index gives us.
type UserRepo struct {
	write *sql.DB
	read  *sql.DB
}

// NewUserRepo creates a UserRepo on the given write/read pool pair.
func NewUserRepo(write, read *sql.DB) *UserRepo {
	return &UserRepo{write: write, read: read}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.write.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_digest) VALUES (?, ?, ?)
		 RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordDigest)

	created := *u
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.read.QueryRowContext(ctx,
		`SELECT id, name, email, password_digest, created_at FROM users WHERE id = ?`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.read.QueryRowContext(ctx,
		`SELECT id, name, email, password_digest, created_at FROM users WHERE email = ?`, email))
}

func (r *UserRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	var total int64
	if err := r.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.read.QueryContext(ctx,
		`SELECT id, name, email, password_digest, created_at FROM users ORDER BY id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordDigest, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateDigest replaces the stored password digest. Used by the auth service
// to migrate legacy digests on successful login.
func (r *UserRepo) UpdateDigest(ctx context.Context, id int64, digest string) error {
	res, err := r.write.ExecContext(ctx,
		`UPDATE users SET password_digest = ? WHERE id = ?`, digest, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %d not found", id)
	}
	return nil
}

// Delete removes a user. Owned accounts, categories, and transactions go
// with it via foreign-key cascades.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %d not found", id)
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordDigest, &u.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &u, nil
}
