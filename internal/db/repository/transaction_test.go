package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/domain"
)

type ledgerFixture struct {
	users        *UserRepo
	accounts     *AccountRepo
	categories   *CategoryRepo
	transactions *TransactionRepo

	user    *domain.User
	account *domain.Account
	income  *domain.Category
	expense *domain.Category
}

func setupLedger(t *testing.T) *ledgerFixture {
	t.Helper()
	users, accounts, categories, transactions := setupRepos(t)
	ctx := context.Background()

	user := createUser(t, users, "joao@email.com")
	account, err := accounts.Create(ctx, &domain.Account{
		Name: "Conta Corrente", Type: domain.AccountChecking, UserID: user.ID,
	})
	require.NoError(t, err)
	income, err := categories.Create(ctx, &domain.Category{
		Name: "Salário", Type: domain.FlowIncome, UserID: user.ID,
	})
	require.NoError(t, err)
	expense, err := categories.Create(ctx, &domain.Category{
		Name: "Alimentação", Type: domain.FlowExpense, UserID: user.ID,
	})
	require.NoError(t, err)

	return &ledgerFixture{
		users: users, accounts: accounts, categories: categories, transactions: transactions,
		user: user, account: account, income: income, expense: expense,
	}
}

func (f *ledgerFixture) balance(t *testing.T) int64 {
	t.Helper()
	account, err := f.accounts.Get(context.Background(), f.user.ID, f.account.ID)
	require.NoError(t, err)
	return account.BalanceCents
}

func TestTransactionRepo_CreateAdjustsBalance(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	_, err := f.transactions.Create(ctx, &domain.Transaction{
		AmountCents: 350000, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Salário", Type: domain.FlowIncome,
		UserID: f.user.ID, AccountID: f.account.ID, CategoryID: f.income.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(350000), f.balance(t))

	_, err = f.transactions.Create(ctx, &domain.Transaction{
		AmountCents: 25050, Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Description: "Supermercado", Type: domain.FlowExpense,
		UserID: f.user.ID, AccountID: f.account.ID, CategoryID: f.expense.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(324950), f.balance(t))
}

func TestTransactionRepo_DeleteReversesBalance(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	entry, err := f.transactions.Create(ctx, &domain.Transaction{
		AmountCents: 5000, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Jantar", Type: domain.FlowExpense,
		UserID: f.user.ID, AccountID: f.account.ID, CategoryID: f.expense.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-5000), f.balance(t))

	require.NoError(t, f.transactions.Delete(ctx, f.user.ID, entry.ID))
	assert.Equal(t, int64(0), f.balance(t))

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, f.transactions.Delete(ctx, f.user.ID, entry.ID), &notFound)
}

func TestTransactionRepo_CreateRejectsForeignResources(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	other := createUser(t, f.users, "maria@email.com")

	// Another user's account and category are invisible.
	var notFound *domain.NotFoundError
	_, err := f.transactions.Create(ctx, &domain.Transaction{
		AmountCents: 100, Description: "x", Type: domain.FlowExpense,
		UserID: other.ID, AccountID: f.account.ID, CategoryID: f.expense.ID,
	})
	assert.ErrorAs(t, err, &notFound)

	// Failed creation must not touch the balance.
	assert.Equal(t, int64(0), f.balance(t))
}

func TestTransactionRepo_OwnershipScoping(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	entry, err := f.transactions.Create(ctx, &domain.Transaction{
		AmountCents: 100, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Café", Type: domain.FlowExpense,
		UserID: f.user.ID, AccountID: f.account.ID, CategoryID: f.expense.ID,
	})
	require.NoError(t, err)

	other := createUser(t, f.users, "maria@email.com")

	// Reads and deletes from another user look like the row doesn't exist.
	var notFound *domain.NotFoundError
	_, err = f.transactions.Get(ctx, other.ID, entry.ID)
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorAs(t, f.transactions.Delete(ctx, other.ID, entry.ID), &notFound)

	entries, total, err := f.transactions.List(ctx, other.ID, domain.TransactionFilter{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}

func TestTransactionRepo_ListFiltersAndOrder(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	second, err := f.accounts.Create(ctx, &domain.Account{
		Name: "Poupança", Type: domain.AccountSavings, UserID: f.user.ID,
	})
	require.NoError(t, err)

	dates := []time.Time{
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}
	accountIDs := []int64{f.account.ID, f.account.ID, second.ID}
	for i, date := range dates {
		_, err := f.transactions.Create(ctx, &domain.Transaction{
			AmountCents: 100, Date: date, Description: "entry", Type: domain.FlowExpense,
			UserID: f.user.ID, AccountID: accountIDs[i], CategoryID: f.expense.ID,
		})
		require.NoError(t, err)
	}

	// Unfiltered, newest date first.
	entries, total, err := f.transactions.List(ctx, f.user.ID, domain.TransactionFilter{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, dates[1], entries[0].Date)
	assert.Equal(t, dates[2], entries[1].Date)
	assert.Equal(t, dates[0], entries[2].Date)

	// Account filter.
	entries, total, err = f.transactions.List(ctx, f.user.ID,
		domain.TransactionFilter{AccountID: second.ID}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].AccountID)

	// Category filter matches everything here.
	_, total, err = f.transactions.List(ctx, f.user.ID,
		domain.TransactionFilter{CategoryID: f.expense.ID}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Pagination.
	entries, total, err = f.transactions.List(ctx, f.user.ID,
		domain.TransactionFilter{}, domain.PageRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 2)
}
