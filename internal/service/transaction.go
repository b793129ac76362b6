package service

import (
	"context"
	"strings"
	"time"

	"finledger/internal/domain"
)

// TransactionStore is the persistence surface TransactionService needs.
type TransactionStore interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	Get(ctx context.Context, userID, id int64) (*domain.Transaction, error)
	List(ctx context.Context, userID int64, f domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error)
	Delete(ctx context.Context, userID, id int64) error
}

// TransactionService records and queries money movements. Creation and
// deletion adjust the owning account's balance atomically (delegated to the
// store, which runs both writes in one SQL transaction).
type TransactionService struct {
	transactions TransactionStore
	now          func() time.Time
}

// NewTransactionService creates a TransactionService. now may be nil, in
// which case time.Now is used (it supplies the default entry date).
func NewTransactionService(transactions TransactionStore, now func() time.Time) *TransactionService {
	if now == nil {
		now = time.Now
	}
	return &TransactionService{transactions: transactions, now: now}
}

// CreateTransactionInput carries the caller-supplied fields for Create.
type CreateTransactionInput struct {
	AmountCents int64
	Date        time.Time // zero means today
	Description string
	Type        string
	AccountID   int64
	CategoryID  int64
}

// Create validates and records an entry for the principal's account.
func (s *TransactionService) Create(ctx context.Context, p domain.ContextPrincipal, in CreateTransactionInput) (*domain.Transaction, error) {
	if in.AmountCents <= 0 {
		return nil, domain.ErrValidation("amount must be positive")
	}
	if !domain.ValidFlow(in.Type) {
		return nil, domain.ErrValidation("type must be %q or %q", domain.FlowIncome, domain.FlowExpense)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrValidation("description is required")
	}
	if in.AccountID == 0 || in.CategoryID == 0 {
		return nil, domain.ErrValidation("account_id and category_id are required")
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	return s.transactions.Create(ctx, &domain.Transaction{
		AmountCents: in.AmountCents,
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		UserID:      p.UserID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
	})
}

// Get returns one of the principal's entries.
func (s *TransactionService) Get(ctx context.Context, p domain.ContextPrincipal, id int64) (*domain.Transaction, error) {
	return s.transactions.Get(ctx, p.UserID, id)
}

// List returns the principal's entries with optional filters.
func (s *TransactionService) List(ctx context.Context, p domain.ContextPrincipal, f domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error) {
	return s.transactions.List(ctx, p.UserID, f, page)
}

// Delete removes an entry and reverses its effect on the account balance.
func (s *TransactionService) Delete(ctx context.Context, p domain.ContextPrincipal, id int64) error {
	return s.transactions.Delete(ctx, p.UserID, id)
}
