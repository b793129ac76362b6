package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/auth"
	internaldb "finledger/internal/db"
	"finledger/internal/db/repository"
	"finledger/internal/domain"
)

type fixture struct {
	users        *UserService
	accounts     *AccountService
	categories   *CategoryService
	transactions *TransactionService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestDB(t)

	userRepo := repository.NewUserRepo(writeDB, readDB)
	accountRepo := repository.NewAccountRepo(writeDB, readDB)
	categoryRepo := repository.NewCategoryRepo(writeDB, readDB)
	transactionRepo := repository.NewTransactionRepo(writeDB, readDB)

	hasher := auth.NewArgon2Hasher()
	return &fixture{
		users:        NewUserService(userRepo, accountRepo, categoryRepo, transactionRepo, hasher),
		accounts:     NewAccountService(accountRepo),
		categories:   NewCategoryService(categoryRepo),
		transactions: NewTransactionService(transactionRepo, nil),
	}
}

func (f *fixture) registered(t *testing.T, email string) domain.ContextPrincipal {
	t.Helper()
	user, err := f.users.Register(context.Background(), "Test User", email, "senha123")
	require.NoError(t, err)
	return domain.ContextPrincipal{UserID: user.ID, Email: user.Email}
}

func TestUserService_Register(t *testing.T) {
	f := setup(t)

	user, err := f.users.Register(context.Background(), "  João Silva  ", "joao@email.com", "senha123")
	require.NoError(t, err)
	assert.Equal(t, "João Silva", user.Name)
	assert.Positive(t, user.ID)
	// Digest is hashed, never the raw password.
	assert.NotEqual(t, "senha123", user.PasswordDigest)
	assert.Contains(t, user.PasswordDigest, "$argon2id$")
}

func TestUserService_Register_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var validation *domain.ValidationError
	_, err := f.users.Register(ctx, "", "joao@email.com", "senha123")
	assert.ErrorAs(t, err, &validation)
	_, err = f.users.Register(ctx, "João", "not-an-email", "senha123")
	assert.ErrorAs(t, err, &validation)
	_, err = f.users.Register(ctx, "João", "joao@email.com", "short")
	assert.ErrorAs(t, err, &validation)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "João", "joao@email.com", "senha123")
	require.NoError(t, err)

	_, err = f.users.Register(ctx, "Outro João", "joao@email.com", "senha456")
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserService_Delete_SelfOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	joao := f.registered(t, "joao@email.com")
	maria := f.registered(t, "maria@email.com")

	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, f.users.Delete(ctx, joao, maria.UserID), &accessDenied)

	require.NoError(t, f.users.Delete(ctx, joao, joao.UserID))
	_, err := f.users.Get(ctx, joao.UserID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_Profile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.registered(t, "joao@email.com")

	account, err := f.accounts.Create(ctx, p, "Conta Corrente", domain.AccountChecking, 0)
	require.NoError(t, err)
	category, err := f.categories.Create(ctx, p, "Salário", domain.FlowIncome)
	require.NoError(t, err)
	_, err = f.transactions.Create(ctx, p, CreateTransactionInput{
		AmountCents: 1000, Description: "pay", Type: domain.FlowIncome,
		AccountID: account.ID, CategoryID: category.ID,
	})
	require.NoError(t, err)

	profile, err := f.users.Profile(ctx, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, profile.User.ID)
	assert.Len(t, profile.Accounts, 1)
	assert.Len(t, profile.Categories, 1)
	assert.Len(t, profile.Transactions, 1)
}

func TestAccountService_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.registered(t, "joao@email.com")

	account, err := f.accounts.Create(ctx, p, "Conta Corrente", domain.AccountChecking, 12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), account.BalanceCents)

	updated, err := f.accounts.Update(ctx, p, account.ID, "Carteira", domain.AccountWallet)
	require.NoError(t, err)
	assert.Equal(t, "Carteira", updated.Name)
	assert.Equal(t, domain.AccountWallet, updated.Type)
	// Balance untouched by metadata updates.
	assert.Equal(t, int64(12345), updated.BalanceCents)
}

func TestCategoryService_FlowValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.registered(t, "joao@email.com")

	var validation *domain.ValidationError
	_, err := f.categories.Create(ctx, p, "Misc", "sideways")
	assert.ErrorAs(t, err, &validation)

	_, err = f.categories.List(ctx, p, "sideways")
	assert.ErrorAs(t, err, &validation)

	income, err := f.categories.Create(ctx, p, "Salário", domain.FlowIncome)
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, p, "Alimentação", domain.FlowExpense)
	require.NoError(t, err)

	onlyIncome, err := f.categories.List(ctx, p, domain.FlowIncome)
	require.NoError(t, err)
	require.Len(t, onlyIncome, 1)
	assert.Equal(t, income.ID, onlyIncome[0].ID)
}

func TestTransactionService_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.registered(t, "joao@email.com")

	cases := []CreateTransactionInput{
		{AmountCents: 0, Description: "x", Type: domain.FlowIncome, AccountID: 1, CategoryID: 1},
		{AmountCents: -100, Description: "x", Type: domain.FlowIncome, AccountID: 1, CategoryID: 1},
		{AmountCents: 100, Description: "x", Type: "sideways", AccountID: 1, CategoryID: 1},
		{AmountCents: 100, Description: "   ", Type: domain.FlowIncome, AccountID: 1, CategoryID: 1},
		{AmountCents: 100, Description: "x", Type: domain.FlowIncome},
	}
	for _, in := range cases {
		_, err := f.transactions.Create(ctx, p, in)
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation, "input %+v", in)
	}
}

func TestTransactionService_DefaultsDateToToday(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestDB(t)
	userRepo := repository.NewUserRepo(writeDB, readDB)
	accountRepo := repository.NewAccountRepo(writeDB, readDB)
	categoryRepo := repository.NewCategoryRepo(writeDB, readDB)
	transactionRepo := repository.NewTransactionRepo(writeDB, readDB)

	today := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	svc := NewTransactionService(transactionRepo, func() time.Time { return today })
	users := NewUserService(userRepo, accountRepo, categoryRepo, transactionRepo, auth.NewArgon2Hasher())

	ctx := context.Background()
	user, err := users.Register(ctx, "João", "joao@email.com", "senha123")
	require.NoError(t, err)
	p := domain.ContextPrincipal{UserID: user.ID, Email: user.Email}

	account, err := accountRepo.Create(ctx, &domain.Account{Name: "a", Type: domain.AccountChecking, UserID: user.ID})
	require.NoError(t, err)
	category, err := categoryRepo.Create(ctx, &domain.Category{Name: "c", Type: domain.FlowIncome, UserID: user.ID})
	require.NoError(t, err)

	entry, err := svc.Create(ctx, p, CreateTransactionInput{
		AmountCents: 100, Description: "x", Type: domain.FlowIncome,
		AccountID: account.ID, CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", entry.Date.Format("2006-01-02"))
}
