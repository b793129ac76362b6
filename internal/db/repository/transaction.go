package repository

import (
	"context"
	"database/sql"
	"fmt"

	"finledger/internal/domain"
)

// TransactionRepo persists ledger entries. Create and Delete run inside a
// single SQL transaction on the write pool so the ledger row and the owning
// account's balance can never diverge.
type TransactionRepo struct {
	write *sql.DB
	read  *sql.DB
}

// NewTransactionRepo creates a TransactionRepo on the given write/read pool
// pair. Create and Delete always go through the write pool.
func NewTransactionRepo(write, read *sql.DB) *TransactionRepo {
	return &TransactionRepo{write: write, read: read}
}

// Create inserts the entry and applies its balance delta to the account.
// The account and category must exist and belong to t.UserID.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.write.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var accountID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE id = ? AND user_id = ?`,
		t.AccountID, t.UserID).Scan(&accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound("account %d not found", t.AccountID)
		}
		return nil, err
	}

	var categoryID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE id = ? AND user_id = ?`,
		t.CategoryID, t.UserID).Scan(&categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound("category %d not found", t.CategoryID)
		}
		return nil, err
	}

	created := *t
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions (amount_cents, date, description, type, user_id, account_id, category_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id, created_at`,
		t.AmountCents, formatDate(t.Date), t.Description, t.Type, t.UserID, t.AccountID, t.CategoryID).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance_cents = balance_cents + ? WHERE id = ?`,
		created.BalanceDelta(), t.AccountID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &created, nil
}

func (r *TransactionRepo) Get(ctx context.Context, userID, id int64) (*domain.Transaction, error) {
	row := r.read.QueryRowContext(ctx,
		`SELECT id, amount_cents, date, description, type, user_id, account_id, category_id, created_at
		 FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	return scanTransaction(row)
}

// List returns the user's entries newest-date first, with optional
// account/category filters and offset pagination.
func (r *TransactionRepo) List(ctx context.Context, userID int64, f domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error) {
	where := `WHERE user_id = ?`
	args := []any{userID}
	if f.AccountID != 0 {
		where += ` AND account_id = ?`
		args = append(args, f.AccountID)
	}
	if f.CategoryID != 0 {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}

	var total int64
	if err := r.read.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listArgs := append(args, page.Limit(), page.Offset())
	rows, err := r.read.QueryContext(ctx,
		`SELECT id, amount_cents, date, description, type, user_id, account_id, category_id, created_at
		 FROM transactions `+where+` ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *t)
	}
	return entries, total, rows.Err()
}

// Delete removes the entry and reverses its balance delta on the account.
func (r *TransactionRepo) Delete(ctx context.Context, userID, id int64) error {
	tx, err := r.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRowContext(ctx,
		`SELECT id, amount_cents, date, description, type, user_id, account_id, category_id, created_at
		 FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance_cents = balance_cents - ? WHERE id = ?`,
		t.BalanceDelta(), t.AccountID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	var date string
	err := row.Scan(&t.ID, &t.AmountCents, &date, &t.Description, &t.Type,
		&t.UserID, &t.AccountID, &t.CategoryID, &t.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	t.Date = parseDate(date)
	return &t, nil
}
