package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/store/schema"
)

const (
	testChainID  = int64(1)
	testContract = "0x1111111111111111111111111111111111111111"
	testAlice    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testBob      = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// buildTransferEvent creates a transfer event with a distinct idempotency key
// per (txHash, txIndex, logIndex)
func buildTransferEvent(from, to, tokenID string, quantity uint64, txHash string, txIndex, logIndex uint) *domain.TransferEvent {
	return &domain.TransferEvent{
		ChainID:     testChainID,
		Contract:    testContract,
		From:        from,
		To:          to,
		TokenID:     tokenID,
		Quantity:    quantity,
		BlockNumber: 100,
		TxHash:      txHash,
		TxIndex:     txIndex,
		LogIndex:    logIndex,
		Timestamp:   time.Now().UTC(),
	}
}

func requireBalance(t *testing.T, store Store, tokenID, owner string, want uint64) {
	t.Helper()
	ownership, err := store.GetOwnership(context.Background(), testContract, testChainID, tokenID, owner)
	require.NoError(t, err)
	require.NotNil(t, ownership, "expected a balance row for %s", owner)
	assert.Equal(t, want, ownership.Quantity)
}

func testApplyTransferMint(t *testing.T, store Store) {
	ctx := context.Background()

	event := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, "1", 1, "0xmint1", 0, 0)
	result, err := store.ApplyTransfer(ctx, event)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.True(t, result.Minted)

	requireBalance(t, store, "1", testAlice, 1)

	// Destroyed or minted supply never accrues to the zero address
	zeroBalance, err := store.GetOwnership(ctx, testContract, testChainID, "1", domain.ETHEREUM_ZERO_ADDRESS)
	require.NoError(t, err)
	assert.Nil(t, zeroBalance)

	// The mint participant becomes a user
	user, err := store.EnsureUser(ctx, testAlice)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func testApplyTransferIdempotency(t *testing.T, store Store) {
	ctx := context.Background()

	event := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, "1", 5, "0xdup", 0, 0)

	result, err := store.ApplyTransfer(ctx, event)
	require.NoError(t, err)
	assert.True(t, result.Applied)

	// Exact same idempotency key: no-op, balances untouched
	result, err = store.ApplyTransfer(ctx, event)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.False(t, result.Minted)

	requireBalance(t, store, "1", testAlice, 5)
}

func testApplyTransferMovesBalance(t *testing.T, store Store) {
	ctx := context.Background()

	mint := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, "7", 10, "0xtx1", 0, 0)
	_, err := store.ApplyTransfer(ctx, mint)
	require.NoError(t, err)

	transfer := buildTransferEvent(testAlice, testBob, "7", 4, "0xtx2", 0, 1)
	result, err := store.ApplyTransfer(ctx, transfer)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.Minted)

	// Conservation: total supply unchanged, split across owners
	requireBalance(t, store, "7", testAlice, 6)
	requireBalance(t, store, "7", testBob, 4)
}

func testApplyTransferBurn(t *testing.T, store Store) {
	ctx := context.Background()

	mint := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, "9", 3, "0xb1", 0, 0)
	_, err := store.ApplyTransfer(ctx, mint)
	require.NoError(t, err)

	burn := buildTransferEvent(testAlice, domain.ETHEREUM_ZERO_ADDRESS, "9", 2, "0xb2", 0, 1)
	result, err := store.ApplyTransfer(ctx, burn)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.Minted)

	requireBalance(t, store, "9", testAlice, 1)

	zeroBalance, err := store.GetOwnership(ctx, testContract, testChainID, "9", domain.ETHEREUM_ZERO_ADDRESS)
	require.NoError(t, err)
	assert.Nil(t, zeroBalance)
}

func testApplyTransferUnderflowClamp(t *testing.T, store Store) {
	ctx := context.Background()

	mint := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, "5", 2, "0xc1", 0, 0)
	_, err := store.ApplyTransfer(ctx, mint)
	require.NoError(t, err)

	// Sending more than held clamps the sender at zero instead of going
	// negative
	transfer := buildTransferEvent(testAlice, testBob, "5", 10, "0xc2", 0, 1)
	_, err = store.ApplyTransfer(ctx, transfer)
	require.NoError(t, err)

	requireBalance(t, store, "5", testAlice, 0)
	requireBalance(t, store, "5", testBob, 10)
}

func testApplyTransferBatchExpansion(t *testing.T, store Store) {
	ctx := context.Background()

	// Two expanded pairs of one TransferBatch log share txHash and logIndex
	// but differ in txIndex, so both apply
	for i, tokenID := range []string{"100", "101"} {
		event := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, tokenID, 2, "0xbatch", uint(i), 3) //nolint:gosec
		event.IsBatch = true

		result, err := store.ApplyTransfer(ctx, event)
		require.NoError(t, err)
		assert.True(t, result.Applied)
	}

	requireBalance(t, store, "100", testAlice, 2)
	requireBalance(t, store, "101", testAlice, 2)
}

func testNextSlug(t *testing.T, store Store) {
	ctx := context.Background()

	slug, err := store.NextSlug(ctx, "moonbirds")
	require.NoError(t, err)
	assert.Equal(t, "moonbirds", slug)

	require.NoError(t, store.UpsertCollection(ctx, &schema.Collection{
		Name: "Moonbirds", Slug: slug,
		ContractAddress: "0x2222222222222222222222222222222222222222",
		ChainID:         testChainID, CategoryID: 1,
	}))

	slug, err = store.NextSlug(ctx, "moonbirds")
	require.NoError(t, err)
	assert.Equal(t, "moonbirds-1", slug)

	require.NoError(t, store.UpsertCollection(ctx, &schema.Collection{
		Name: "Moonbirds", Slug: slug,
		ContractAddress: "0x3333333333333333333333333333333333333333",
		ChainID:         testChainID, CategoryID: 1,
	}))

	slug, err = store.NextSlug(ctx, "moonbirds")
	require.NoError(t, err)
	assert.Equal(t, "moonbirds-2", slug)

	require.NoError(t, store.UpsertCollection(ctx, &schema.Collection{
		Name: "Moonbirds", Slug: slug,
		ContractAddress: "0x4444444444444444444444444444444444444444",
		ChainID:         testChainID, CategoryID: 1,
	}))

	slug, err = store.NextSlug(ctx, "moonbirds")
	require.NoError(t, err)
	assert.Equal(t, "moonbirds-3", slug)
}

func testUpsertCollectionPreservesSlug(t *testing.T, store Store) {
	ctx := context.Background()

	first := &schema.Collection{
		Name: "Punks", Slug: "punks",
		ContractAddress: testContract, ChainID: testChainID, CategoryID: 1,
	}
	require.NoError(t, store.UpsertCollection(ctx, first))
	require.NotZero(t, first.ID)

	// Re-import with a different desired slug and category: slug survives,
	// the rest updates
	second := &schema.Collection{
		Name: "CryptoPunks", Slug: "cryptopunks",
		ContractAddress: testContract, ChainID: testChainID, CategoryID: 2,
	}
	require.NoError(t, store.UpsertCollection(ctx, second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "punks", second.Slug)

	stored, err := store.GetCollection(ctx, testContract, testChainID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "CryptoPunks", stored.Name)
	assert.Equal(t, "punks", stored.Slug)
	assert.Equal(t, int64(2), stored.CategoryID)
}

func testCheckpoint(t *testing.T, store Store) {
	ctx := context.Background()

	imported := &schema.ImportedContract{
		ContractAddress: testContract,
		ChainID:         testChainID,
		TokenType:       domain.StandardERC721,
		DeployedAtBlock: 50,
	}
	require.NoError(t, store.CreateImportedContract(ctx, imported))

	require.NoError(t, store.AdvanceCheckpoint(ctx, testContract, testChainID, 200))

	stored, err := store.GetImportedContract(ctx, testContract, testChainID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint64(200), stored.LastIndexedBlock)
	assert.False(t, stored.IsImportFinish)

	// A lower block never moves the checkpoint backwards
	require.NoError(t, store.AdvanceCheckpoint(ctx, testContract, testChainID, 150))

	stored, err = store.GetImportedContract(ctx, testContract, testChainID)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), stored.LastIndexedBlock)

	require.NoError(t, store.MarkImportFinished(ctx, testContract, testChainID, true))

	stored, err = store.GetImportedContract(ctx, testContract, testChainID)
	require.NoError(t, err)
	assert.True(t, stored.IsImportFinish)
}

func testEnsureUser(t *testing.T, store Store) {
	ctx := context.Background()

	first, err := store.EnsureUser(ctx, testAlice)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := store.EnsureUser(ctx, testAlice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func testItemLifecycle(t *testing.T, store Store) {
	ctx := context.Background()

	missing, err := store.GetItem(ctx, "1", testContract, testChainID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	item := &schema.Item{
		TokenID:         "1",
		ContractAddress: testContract,
		ChainID:         testChainID,
		Name:            "Genesis",
		ImageURL:        "https://ipfs.io/ipfs/QmImage",
		Supply:          1,
		QuantityMinted:  1,
	}
	require.NoError(t, store.CreateItem(ctx, item))
	require.NotZero(t, item.ID)

	hash := "abc123"
	require.NoError(t, store.UpdateItemMetadata(ctx, item.ID, ItemMetadataInput{
		Name:        "Genesis #1",
		Description: "The first one",
		ImageURL:    "https://ipfs.io/ipfs/QmImage2",
		Metadata:    []byte(`{"name":"Genesis #1"}`),
		Attributes:  []byte(`[{"trait_type":"Background","value":"Blue"}]`),
		Hash:        &hash,
	}))

	require.NoError(t, store.IncrementItemSupply(ctx, "1", testContract, testChainID, 3))

	stored, err := store.GetItem(ctx, "1", testContract, testChainID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Genesis #1", stored.Name)
	assert.Equal(t, "The first one", stored.Description)
	assert.Equal(t, uint64(4), stored.Supply)
	assert.Equal(t, uint64(4), stored.QuantityMinted)
	require.NotNil(t, stored.MetadataHash)
	assert.Equal(t, hash, *stored.MetadataHash)
}

func testTransferHistoryRecorded(t *testing.T, store Store) {
	ctx := context.Background()

	blockTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := buildTransferEvent(domain.ETHEREUM_ZERO_ADDRESS, testAlice, "42", 1, fmt.Sprintf("0xh%d", 1), 0, 2)
	event.Timestamp = blockTime

	_, err := store.ApplyTransfer(ctx, event)
	require.NoError(t, err)

	pg, ok := store.(*pgStore)
	require.True(t, ok)

	var history schema.TokenTransferHistory
	require.NoError(t, pg.db.
		Where("transaction_hash = ? AND chain_id = ? AND tx_index = ? AND log_index = ?",
			event.TxHash, event.ChainID, event.TxIndex, event.LogIndex).
		First(&history).Error)
	assert.Equal(t, testContract, history.ContractAddress)
	assert.Equal(t, domain.ETHEREUM_ZERO_ADDRESS, history.FromAddress)
	assert.Equal(t, testAlice, history.ToAddress)
	assert.Equal(t, "42", history.TokenID)
	assert.Equal(t, uint64(1), history.Value)
	assert.True(t, history.BlockTime.Equal(blockTime))
}

// RunStoreTests runs all store tests against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"ApplyTransferMint", testApplyTransferMint},
		{"ApplyTransferIdempotency", testApplyTransferIdempotency},
		{"ApplyTransferMovesBalance", testApplyTransferMovesBalance},
		{"ApplyTransferBurn", testApplyTransferBurn},
		{"ApplyTransferUnderflowClamp", testApplyTransferUnderflowClamp},
		{"ApplyTransferBatchExpansion", testApplyTransferBatchExpansion},
		{"NextSlug", testNextSlug},
		{"UpsertCollectionPreservesSlug", testUpsertCollectionPreservesSlug},
		{"Checkpoint", testCheckpoint},
		{"EnsureUser", testEnsureUser},
		{"ItemLifecycle", testItemLifecycle},
		{"TransferHistoryRecorded", testTransferHistoryRecorded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
