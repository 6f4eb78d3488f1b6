//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/MGTheTrain/rsa-sign-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-sign-vault/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/rsa-sign-vault/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEntryPostgresRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	entry := CreateTestKeyEntry(t, "Ada Lovelace")
	err := ctx.KeyEntryRepo.Create(context.Background(), entry)
	require.NoError(t, err)

	var created models.KeyEntryModel
	err = ctx.DB.First(&created, "id = ?", entry.ID).Error
	require.NoError(t, err)
	assert.Equal(t, entry.Name, created.Name)
	assert.Equal(t, entry.PublicKey, created.PublicKey)
}

func TestKeyEntryPostgresRepository_CreateInvalid(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	entry := CreateTestKeyEntry(t, "Ada Lovelace")
	entry.PublicKey = "not-a-key"

	err := ctx.KeyEntryRepo.Create(context.Background(), entry)
	assert.Error(t, err)
}

func TestKeyEntryPostgresRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	entry := CreateTestKeyEntryWithOptions(t, "Grace Hopper", TestDepartmentLegal, TestKeySize2048)
	require.NoError(t, ctx.KeyEntryRepo.Create(context.Background(), entry))

	fetched, err := ctx.KeyEntryRepo.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, fetched.ID)
	assert.Equal(t, "Grace Hopper (Legal)", fetched.Signer())
	assert.Equal(t, uint32(TestKeySize2048), fetched.KeySize)
}

func TestKeyEntryPostgresRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	_, err := ctx.KeyEntryRepo.GetByID(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, keys.ErrKeyEntryNotFound)
}

func TestKeyEntryPostgresRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	first := CreateTestKeyEntryWithOptions(t, "Ada Lovelace", TestDepartmentEngineering, TestKeySize512)
	first.DateTimeCreated = time.Now().Add(-time.Hour)
	second := CreateTestKeyEntryWithOptions(t, "Grace Hopper", TestDepartmentLegal, TestKeySize1024)
	third := CreateTestKeyEntryWithOptions(t, "Alan Turing", TestDepartmentEngineering, TestKeySize2048)

	for _, entry := range []*keys.KeyEntry{first, second, third} {
		require.NoError(t, ctx.KeyEntryRepo.Create(context.Background(), entry))
	}

	t.Run("All", func(t *testing.T) {
		entries, err := ctx.KeyEntryRepo.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("ByDepartment", func(t *testing.T) {
		query := keys.NewKeyEntryQuery()
		query.Department = TestDepartmentEngineering

		entries, err := ctx.KeyEntryRepo.List(context.Background(), query)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("SortedAndPaged", func(t *testing.T) {
		query := &keys.KeyEntryQuery{SortBy: "key_size", SortOrder: "asc", Limit: 2, Offset: 1}

		entries, err := ctx.KeyEntryRepo.List(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, uint32(TestKeySize1024), entries[0].KeySize)
		assert.Equal(t, uint32(TestKeySize2048), entries[1].KeySize)
	})

	t.Run("InvalidQuery", func(t *testing.T) {
		_, err := ctx.KeyEntryRepo.List(context.Background(), &keys.KeyEntryQuery{SortBy: "public_key; DROP TABLE"})
		assert.Error(t, err)
	})
}

func TestKeyEntryPostgresRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	entry := CreateTestKeyEntry(t, "Ada Lovelace")
	require.NoError(t, ctx.KeyEntryRepo.Create(context.Background(), entry))

	require.NoError(t, ctx.KeyEntryRepo.DeleteByID(context.Background(), entry.ID))

	_, err := ctx.KeyEntryRepo.GetByID(context.Background(), entry.ID)
	assert.ErrorIs(t, err, keys.ErrKeyEntryNotFound)

	err = ctx.KeyEntryRepo.DeleteByID(context.Background(), entry.ID)
	assert.ErrorIs(t, err, keys.ErrKeyEntryNotFound)
}
