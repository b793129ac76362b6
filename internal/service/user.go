// Package service contains the per-resource business logic between the HTTP
// handlers and the repositories. Services validate input, enforce ownership,
// and translate everything into domain types and typed errors.
package service

import (
	"context"
	"strings"

	"finledger/internal/auth"
	"finledger/internal/domain"
)

const minPasswordLen = 6

// UserStore is the persistence surface UserService needs.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error)
	Delete(ctx context.Context, id int64) error
}

// AccountStore, CategoryStore, and TransactionStore are the repository
// surfaces the services consume. Declared here so handler tests can stub
// storage without a database.
type AccountStore interface {
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	Get(ctx context.Context, userID, id int64) (*domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
	Update(ctx context.Context, userID, id int64, name, accountType string) error
	Delete(ctx context.Context, userID, id int64) error
}

type CategoryStore interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Get(ctx context.Context, userID, id int64) (*domain.Category, error)
	ListByUser(ctx context.Context, userID int64, flowType string) ([]domain.Category, error)
	Update(ctx context.Context, userID, id int64, name, flowType string) error
	Delete(ctx context.Context, userID, id int64) error
}

// UserService handles registration and user reads.
type UserService struct {
	users        UserStore
	accounts     AccountStore
	categories   CategoryStore
	transactions TransactionStore
	hasher       auth.PasswordHasher
}

// NewUserService creates a UserService. The account/category/transaction
// stores are only used by Profile.
func NewUserService(users UserStore, accounts AccountStore, categories CategoryStore, transactions TransactionStore, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		users:        users,
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		hasher:       hasher,
	}
}

// Register creates a user with a freshly hashed password digest.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.ErrValidation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrValidation("a valid email is required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrValidation("password must be at least %d characters", minPasswordLen)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &domain.User{
		Name:           name,
		Email:          email,
		PasswordDigest: digest,
	})
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail returns a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns a page of users plus the total count.
func (s *UserService) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	return s.users.List(ctx, page)
}

// Profile returns the user together with all owned resources.
func (s *UserService) Profile(ctx context.Context, id int64) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accounts.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByUser(ctx, id, "")
	if err != nil {
		return nil, err
	}
	transactions, _, err := s.transactions.List(ctx, id, domain.TransactionFilter{}, domain.PageRequest{PageSize: domain.MaxPageSize})
	if err != nil {
		return nil, err
	}
	return &domain.Profile{
		User:         *user,
		Accounts:     accounts,
		Categories:   categories,
		Transactions: transactions,
	}, nil
}

// Delete removes a user. Callers may only delete themselves.
func (s *UserService) Delete(ctx context.Context, requester domain.ContextPrincipal, id int64) error {
	if requester.UserID != id {
		return domain.ErrAccessDenied("users can only delete their own account")
	}
	return s.users.Delete(ctx, id)
}
