package repository

import (
	"context"
	"database/sql"

	"finledger/internal/domain"
)

// AccountRepo persists accounts. Balance changes flow exclusively through
// TransactionRepo, which updates the balance in the same SQL transaction as
// the ledger row; AccountRepo itself only sets the opening balance.
type AccountRepo struct {
	write *sql.DB
	read  *sql.DB
}

// NewAccountRepo creates an AccountRepo on the given write/read pool pair.
func NewAccountRepo(write, read *sql.DB) *AccountRepo {
	return &AccountRepo{write: write, read: read}
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	row := r.write.QueryRowContext(ctx,
		`INSERT INTO accounts (name, balance_cents, type, user_id) VALUES (?, ?, ?, ?)
		 RETURNING id, created_at`,
		a.Name, a.BalanceCents, a.Type, a.UserID)

	created := *a
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *AccountRepo) Get(ctx context.Context, userID, id int64) (*domain.Account, error) {
	var a domain.Account
	err := r.read.QueryRowContext(ctx,
		`SELECT id, name, balance_cents, type, user_id, created_at
		 FROM accounts WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&a.ID, &a.Name, &a.BalanceCents, &a.Type, &a.UserID, &a.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &a, nil
}

func (r *AccountRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := r.read.QueryContext(ctx,
		`SELECT id, name, balance_cents, type, user_id, created_at
		 FROM accounts WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.BalanceCents, &a.Type, &a.UserID, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Update renames or retypes an account. The balance is not updatable here.
func (r *AccountRepo) Update(ctx context.Context, userID, id int64, name, accountType string) error {
	res, err := r.write.ExecContext(ctx,
		`UPDATE accounts SET name = ?, type = ? WHERE id = ? AND user_id = ?`,
		name, accountType, id, userID)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("account %d not found", id)
	}
	return nil
}

// Delete removes an account and, via cascade, its transactions.
func (r *AccountRepo) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.write.ExecContext(ctx,
		`DELETE FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("account %d not found", id)
	}
	return nil
}
