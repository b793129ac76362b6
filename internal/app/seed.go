package app

import (
	"context"
	"errors"
	"time"

	"finledger/internal/domain"
	"finledger/internal/service"
)

// Seed inserts a small demo dataset so a fresh instance has something to log
// in with. It is idempotent: users that already exist are left untouched,
// including their resources.
func (a *App) Seed(ctx context.Context) error {
	if err := a.seedUser(ctx, "João Silva", "joao@email.com", "senha123"); err != nil {
		return err
	}
	return a.seedUser(ctx, "Maria Souza", "maria@email.com", "senha123")
}

func (a *App) seedUser(ctx context.Context, name, email, password string) error {
	if existing, err := a.Users.GetByEmail(ctx, email); err == nil {
		a.Logger.Info("seed user already present", "email", existing.Email)
		return nil
	} else {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	user, err := a.Users.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	p := domain.ContextPrincipal{UserID: user.ID, Email: user.Email}

	checking, err := a.Accounts.Create(ctx, p, "Conta Corrente", domain.AccountChecking, 0)
	if err != nil {
		return err
	}
	if _, err := a.Accounts.Create(ctx, p, "Poupança", domain.AccountSavings, 0); err != nil {
		return err
	}

	salary, err := a.Categories.Create(ctx, p, "Salário", domain.FlowIncome)
	if err != nil {
		return err
	}
	groceries, err := a.Categories.Create(ctx, p, "Alimentação", domain.FlowExpense)
	if err != nil {
		return err
	}
	if _, err := a.Categories.Create(ctx, p, "Transporte", domain.FlowExpense); err != nil {
		return err
	}

	// Balance lands at 3500.00 - 250.50 = 3249.50 through the ledger.
	firstOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1)
	if _, err := a.Transactions.Create(ctx, p, service.CreateTransactionInput{
		AmountCents: 350000,
		Date:        firstOfMonth,
		Description: "Salário mensal",
		Type:        domain.FlowIncome,
		AccountID:   checking.ID,
		CategoryID:  salary.ID,
	}); err != nil {
		return err
	}
	if _, err := a.Transactions.Create(ctx, p, service.CreateTransactionInput{
		AmountCents: 25050,
		Date:        firstOfMonth.AddDate(0, 0, 2),
		Description: "Supermercado",
		Type:        domain.FlowExpense,
		AccountID:   checking.ID,
		CategoryID:  groceries.ID,
	}); err != nil {
		return err
	}

	a.Logger.Info("seeded demo user", "email", email, "user_id", user.ID)
	return nil
}
