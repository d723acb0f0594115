package store

import (
	"context"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/store/schema"
)

// ApplyResult reports the outcome of applying one transfer event.
type ApplyResult struct {
	// Applied is false when the event's idempotency key already existed and
	// the call was a no-op.
	Applied bool
	// Minted is true when the applied event was a mint (sender is the zero
	// address); the caller should trigger item materialization.
	Minted bool
}

// ItemMetadataInput carries the materialized metadata for an item write.
type ItemMetadataInput struct {
	Name        string
	Description string
	ImageURL    string
	Metadata    []byte // raw metadata document, stored as JSONB
	Attributes  []byte // validated attributes, stored as JSONB
	Hash        *string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetImportedContract retrieves scan progress for a (contract, chain), or nil
	GetImportedContract(ctx context.Context, contract string, chainID int64) (*schema.ImportedContract, error)
	// CreateImportedContract records a newly discovered contract import
	CreateImportedContract(ctx context.Context, contract *schema.ImportedContract) error
	// AdvanceCheckpoint persists a chunk's upper bound as last_indexed_block.
	// The checkpoint is monotonically non-decreasing: a lower block is ignored.
	AdvanceCheckpoint(ctx context.Context, contract string, chainID int64, block uint64) error
	// MarkImportFinished sets is_import_finish after a sweep with no head advance
	MarkImportFinished(ctx context.Context, contract string, chainID int64, finished bool) error

	// GetCollection retrieves a collection by (contract, chain), or nil
	GetCollection(ctx context.Context, contract string, chainID int64) (*schema.Collection, error)
	// UpsertCollection creates or updates a collection idempotently per (contract, chain)
	UpsertCollection(ctx context.Context, collection *schema.Collection) error
	// NextSlug allocates the next free slug for a desired base. Correct only
	// under serialized access per import key; the job layer must not process
	// two work items for the same (contract, chain) concurrently.
	NextSlug(ctx context.Context, base string) (string, error)

	// ApplyTransfer applies one decoded transfer event exactly once: within a
	// single serializable transaction it inserts the immutable history row and
	// updates both balance rows as additive deltas. A duplicate idempotency
	// key returns Applied=false without touching balances.
	ApplyTransfer(ctx context.Context, event *domain.TransferEvent) (*ApplyResult, error)

	// GetItem retrieves an item by (tokenID, contract, chain), or nil
	GetItem(ctx context.Context, tokenID, contract string, chainID int64) (*schema.Item, error)
	// CreateItem creates an item row for a first-seen mint
	CreateItem(ctx context.Context, item *schema.Item) error
	// UpdateItemMetadata fills in the materialized metadata fields of an item
	UpdateItemMetadata(ctx context.Context, itemID int64, input ItemMetadataInput) error
	// IncrementItemSupply accumulates supply/quantity_minted for a repeated
	// fungible mint
	IncrementItemSupply(ctx context.Context, tokenID, contract string, chainID int64, quantity uint64) error

	// EnsureUser creates a user for a wallet address if absent and returns it
	EnsureUser(ctx context.Context, walletAddress string) (*schema.User, error)

	// GetOwnership retrieves a materialized balance row, or nil
	GetOwnership(ctx context.Context, contract string, chainID int64, tokenID, owner string) (*schema.TokenOwnership, error)
}
