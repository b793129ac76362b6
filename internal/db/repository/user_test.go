package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "finledger/internal/db"
	"finledger/internal/domain"
)

func setupRepos(t *testing.T) (*UserRepo, *AccountRepo, *CategoryRepo, *TransactionRepo) {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestDB(t)
	return NewUserRepo(writeDB, readDB),
		NewAccountRepo(writeDB, readDB),
		NewCategoryRepo(writeDB, readDB),
		NewTransactionRepo(writeDB, readDB)
}

func createUser(t *testing.T, users *UserRepo, email string) *domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), &domain.User{
		Name:           "Test User",
		Email:          email,
		PasswordDigest: "$argon2id$fake",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	users, _, _, _ := setupRepos(t)
	ctx := context.Background()

	created := createUser(t, users, "joao@email.com")
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "joao@email.com", byID.Email)

	byEmail, err := users.GetByEmail(ctx, "joao@email.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	users, _, _, _ := setupRepos(t)

	createUser(t, users, "joao@email.com")
	_, err := users.Create(context.Background(), &domain.User{
		Name:           "Impostor",
		Email:          "joao@email.com",
		PasswordDigest: "x",
	})
	require.Error(t, err)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepo_GetMissing(t *testing.T) {
	users, _, _, _ := setupRepos(t)

	_, err := users.GetByID(context.Background(), 999)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = users.GetByEmail(context.Background(), "nobody@email.com")
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepo_UpdateDigest(t *testing.T) {
	users, _, _, _ := setupRepos(t)
	ctx := context.Background()

	u := createUser(t, users, "joao@email.com")
	require.NoError(t, users.UpdateDigest(ctx, u.ID, "$argon2id$new"))

	reloaded, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$new", reloaded.PasswordDigest)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, users.UpdateDigest(ctx, 999, "x"), &notFound)
}

func TestUserRepo_List(t *testing.T) {
	users, _, _, _ := setupRepos(t)
	ctx := context.Background()

	for _, email := range []string{"a@email.com", "b@email.com", "c@email.com"} {
		createUser(t, users, email)
	}

	page, total, err := users.List(ctx, domain.PageRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	next := domain.NextPageToken(0, 2, total)
	rest, _, err := users.List(ctx, domain.PageRequest{PageSize: 2, PageToken: next})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestUserRepo_DeleteCascades(t *testing.T) {
	users, accounts, categories, transactions := setupRepos(t)
	ctx := context.Background()

	u := createUser(t, users, "joao@email.com")
	account, err := accounts.Create(ctx, &domain.Account{Name: "Checking", Type: domain.AccountChecking, UserID: u.ID})
	require.NoError(t, err)
	category, err := categories.Create(ctx, &domain.Category{Name: "Salary", Type: domain.FlowIncome, UserID: u.ID})
	require.NoError(t, err)
	entry, err := transactions.Create(ctx, &domain.Transaction{
		AmountCents: 1000, Description: "pay", Type: domain.FlowIncome,
		UserID: u.ID, AccountID: account.ID, CategoryID: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, u.ID))

	var notFound *domain.NotFoundError
	_, err = accounts.Get(ctx, u.ID, account.ID)
	assert.ErrorAs(t, err, &notFound)
	_, err = categories.Get(ctx, u.ID, category.ID)
	assert.ErrorAs(t, err, &notFound)
	_, err = transactions.Get(ctx, u.ID, entry.ID)
	assert.ErrorAs(t, err, &notFound)

	assert.ErrorAs(t, users.Delete(ctx, u.ID), &notFound)
}
