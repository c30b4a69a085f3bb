package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/storage"
)

func TestTokenStore_InsertAndGetByMint(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	before := time.Now().Add(-time.Second)
	token, err := store.Insert(ctx, &domain.InsertToken{
		Name:          "Foo",
		Symbol:        "FOO",
		MintAddress:   "Mint1",
		InitialSupply: "1000000",
		CreatorWallet: "WalletA",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), token.ID)
	assert.Equal(t, domain.DefaultDecimals, token.Decimals)
	assert.Nil(t, token.Description)
	assert.Equal(t, "1000000", token.InitialSupply)
	assert.True(t, token.CreatedAt.After(before), "created_at should be stamped by the database")

	retrieved, err := store.GetByMint(ctx, "Mint1")
	require.NoError(t, err)

	assert.Equal(t, token.ID, retrieved.ID)
	assert.Equal(t, token.Name, retrieved.Name)
	assert.Equal(t, token.Symbol, retrieved.Symbol)
	assert.Equal(t, token.CreatorWallet, retrieved.CreatorWallet)
	assert.True(t, token.CreatedAt.Equal(retrieved.CreatedAt))
	assert.Equal(t, time.UTC, token.CreatedAt.Location())
	assert.Equal(t, time.UTC, retrieved.CreatedAt.Location())
}

func TestTokenStore_OptionalFields(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	token, err := store.Insert(ctx, &domain.InsertToken{
		Name:          "Bar",
		Symbol:        "BAR",
		MintAddress:   "MintBar",
		Decimals:      ptr(0),
		InitialSupply: "42",
		Description:   ptr("described"),
		CreatorWallet: "WalletA",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, token.Decimals)
	require.NotNil(t, token.Description)
	assert.Equal(t, "described", *token.Description)
}

func TestTokenStore_MonotonicIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := createTestToken(t, ctx, pool, "MintM1", "WalletA")
	second := createTestToken(t, ctx, pool, "MintM2", "WalletA")

	assert.Greater(t, second.ID, first.ID)
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
}

func TestTokenStore_DuplicateMint(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	createTestToken(t, ctx, pool, "DupMint", "WalletA")

	_, err := store.Insert(ctx, &domain.InsertToken{
		Name:          "Other",
		Symbol:        "OTH",
		MintAddress:   "DupMint",
		InitialSupply: "1",
		CreatorWallet: "WalletB",
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestTokenStore_InvalidSupply(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	_, err := store.Insert(ctx, &domain.InsertToken{
		Name:          "Bad",
		Symbol:        "BAD",
		MintAddress:   "BadSupply",
		InitialSupply: "lots",
		CreatorWallet: "WalletA",
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestTokenStore_GetByCreator(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	createTestToken(t, ctx, pool, "CreatorA1", "WalletA")
	createTestToken(t, ctx, pool, "CreatorB1", "WalletB")
	createTestToken(t, ctx, pool, "CreatorA2", "WalletA")

	tokens, err := store.GetByCreator(ctx, "WalletA")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "CreatorA1", tokens[0].MintAddress)
	assert.Equal(t, "CreatorA2", tokens[1].MintAddress)

	empty, err := store.GetByCreator(ctx, "WalletZ")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTokenStore_GetByMintNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	_, err := store.GetByMint(ctx, "nonexistent-mint")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTokenStore_LargeSupply(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTokenStore(pool)

	// 20 digits, the full NUMERIC(20,0) precision
	supply := "99999999999999999999"

	token, err := store.Insert(ctx, &domain.InsertToken{
		Name:          "Big",
		Symbol:        "BIG",
		MintAddress:   "BigMint",
		InitialSupply: supply,
		CreatorWallet: "WalletA",
	})
	require.NoError(t, err)
	assert.Equal(t, supply, token.InitialSupply)
}
