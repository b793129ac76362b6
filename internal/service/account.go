package service

import (
	"context"
	"strings"

	"finledger/internal/domain"
)

// AccountService manages money containers for a single principal.
type AccountService struct {
	accounts AccountStore
}

// NewAccountService creates an AccountService.
func NewAccountService(accounts AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

// Create opens an account. The opening balance may be zero or negative
// (e.g. an account migrated mid-overdraft).
func (s *AccountService) Create(ctx context.Context, p domain.ContextPrincipal, name, accountType string, openingBalanceCents int64) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	accountType = strings.TrimSpace(accountType)
	if name == "" {
		return nil, domain.ErrValidation("account name is required")
	}
	if accountType == "" {
		return nil, domain.ErrValidation("account type is required")
	}

	return s.accounts.Create(ctx, &domain.Account{
		Name:         name,
		BalanceCents: openingBalanceCents,
		Type:         accountType,
		UserID:       p.UserID,
	})
}

// Get returns one of the principal's accounts.
func (s *AccountService) Get(ctx context.Context, p domain.ContextPrincipal, id int64) (*domain.Account, error) {
	return s.accounts.Get(ctx, p.UserID, id)
}

// List returns all of the principal's accounts.
func (s *AccountService) List(ctx context.Context, p domain.ContextPrincipal) ([]domain.Account, error) {
	return s.accounts.ListByUser(ctx, p.UserID)
}

// Update renames or retypes an account.
func (s *AccountService) Update(ctx context.Context, p domain.ContextPrincipal, id int64, name, accountType string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	accountType = strings.TrimSpace(accountType)
	if name == "" {
		return nil, domain.ErrValidation("account name is required")
	}
	if accountType == "" {
		return nil, domain.ErrValidation("account type is required")
	}
	if err := s.accounts.Update(ctx, p.UserID, id, name, accountType); err != nil {
		return nil, err
	}
	return s.accounts.Get(ctx, p.UserID, id)
}

// Delete removes an account and its transactions.
func (s *AccountService) Delete(ctx context.Context, p domain.ContextPrincipal, id int64) error {
	return s.accounts.Delete(ctx, p.UserID, id)
}
