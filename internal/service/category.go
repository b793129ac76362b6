package service

import (
	"context"
	"strings"

	"finledger/internal/domain"
)

// CategoryService manages income/expense labels for a single principal.
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, p domain.ContextPrincipal, name, flowType string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation("category name is required")
	}
	if !domain.ValidFlow(flowType) {
		return nil, domain.ErrValidation("type must be %q or %q", domain.FlowIncome, domain.FlowExpense)
	}

	return s.categories.Create(ctx, &domain.Category{
		Name:   name,
		Type:   flowType,
		UserID: p.UserID,
	})
}

// Get returns one of the principal's categories.
func (s *CategoryService) Get(ctx context.Context, p domain.ContextPrincipal, id int64) (*domain.Category, error) {
	return s.categories.Get(ctx, p.UserID, id)
}

// List returns the principal's categories, optionally filtered by flow type.
func (s *CategoryService) List(ctx context.Context, p domain.ContextPrincipal, flowType string) ([]domain.Category, error) {
	if flowType != "" && !domain.ValidFlow(flowType) {
		return nil, domain.ErrValidation("type must be %q or %q", domain.FlowIncome, domain.FlowExpense)
	}
	return s.categories.ListByUser(ctx, p.UserID, flowType)
}

// Update renames or retypes a category.
func (s *CategoryService) Update(ctx context.Context, p domain.ContextPrincipal, id int64, name, flowType string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation("category name is required")
	}
	if !domain.ValidFlow(flowType) {
		return nil, domain.ErrValidation("type must be %q or %q", domain.FlowIncome, domain.FlowExpense)
	}
	if err := s.categories.Update(ctx, p.UserID, id, name, flowType); err != nil {
		return nil, err
	}
	return s.categories.Get(ctx, p.UserID, id)
}

// Delete removes a category and its transactions.
func (s *CategoryService) Delete(ctx context.Context, p domain.ContextPrincipal, id int64) error {
	return s.categories.Delete(ctx, p.UserID, id)
}
