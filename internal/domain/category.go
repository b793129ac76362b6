package domain

import "time"

// Flow direction shared by categories and transactions.
const (
	FlowIncome  = "income"
	FlowExpense = "expense"
)

// ValidFlow reports whether t is a recognized flow direction.
func ValidFlow(t string) bool {
	return t == FlowIncome || t == FlowExpense
}

// Category labels transactions as a kind of income or expense.
type Category struct {
	ID        int64
	Name      string
	Type      string // FlowIncome or FlowExpense
	UserID    int64
	CreatedAt time.Time
}
