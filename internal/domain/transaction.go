package domain

import "time"

// Transaction is a single money movement against an account, labeled by a
// category. AmountCents is always positive; Type determines the direction
// the owning account's balance moves.
type Transaction struct {
	ID          int64
	AmountCents int64
	Date        time.Time // date component only, normalized to UTC midnight
	Description string
	Type        string // FlowIncome or FlowExpense
	UserID      int64
	AccountID   int64
	CategoryID  int64
	CreatedAt   time.Time
}

// BalanceDelta returns the signed change the transaction applies to its
// account's balance.
func (t *Transaction) BalanceDelta() int64 {
	if t.Type == FlowExpense {
		return -t.AmountCents
	}
	return t.AmountCents
}

// TransactionFilter narrows transaction listings. Zero values mean no filter.
type TransactionFilter struct {
	AccountID  int64
	CategoryID int64
}
