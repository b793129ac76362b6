package domain

import "time"

// Well-known account types. The column is free-form TEXT; these are the
// values the seed data and clients use.
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
	AccountWallet   = "wallet"
)

// Account is a money container owned by exactly one user.
// BalanceCents is an integer amount in cents; it is adjusted atomically
// when transactions against the account are created or deleted.
type Account struct {
	ID           int64
	Name         string
	BalanceCents int64
	Type         string
	UserID       int64
	CreatedAt    time.Time
}
