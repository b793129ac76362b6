package repository

import (
	"context"
	"database/sql"

	"finledger/internal/domain"
)

// CategoryRepo persists income/expense categories.
type CategoryRepo struct {
	write *sql.DB
	read  *sql.DB
}

// NewCategoryRepo creates a CategoryRepo on the given write/read pool pair.
func NewCategoryRepo(write, read *sql.DB) *CategoryRepo {
	return &CategoryRepo{write: write, read: read}
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	row := r.write.QueryRowContext(ctx,
		`INSERT INTO categories (name, type, user_id) VALUES (?, ?, ?)
		 RETURNING id, created_at`,
		c.Name, c.Type, c.UserID)

	created := *c
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *CategoryRepo) Get(ctx context.Context, userID, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.read.QueryRowContext(ctx,
		`SELECT id, name, type, user_id, created_at
		 FROM categories WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.Name, &c.Type, &c.UserID, &c.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &c, nil
}

// ListByUser returns the user's categories, optionally filtered by flow
// type ("" means no filter).
func (r *CategoryRepo) ListByUser(ctx context.Context, userID int64, flowType string) ([]domain.Category, error) {
	query := `SELECT id, name, type, user_id, created_at FROM categories WHERE user_id = ?`
	args := []any{userID}
	if flowType != "" {
		query += ` AND type = ?`
		args = append(args, flowType)
	}
	query += ` ORDER BY id`

	rows, err := r.read.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, userID, id int64, name, flowType string) error {
	res, err := r.write.ExecContext(ctx,
		`UPDATE categories SET name = ?, type = ? WHERE id = ? AND user_id = ?`,
		name, flowType, id, userID)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("category %d not found", id)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.write.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("category %d not found", id)
	}
	return nil
}
