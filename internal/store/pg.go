package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
	// stmtTimeout bounds each ledger transaction; a timeout aborts only that
	// event's transaction and leaves the checkpoint unchanged.
	stmtTimeout time.Duration
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, statementTimeout time.Duration) Store {
	return &pgStore{db: db, stmtTimeout: statementTimeout}
}

// IsRetryableTxError reports whether a failed transaction may be retried:
// serialization conflicts, deadlocks, and statement timeouts are recoverable.
func IsRetryableTxError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "SQLSTATE 40001") || // serialization_failure
		strings.Contains(errStr, "SQLSTATE 40P01") || // deadlock_detected
		strings.Contains(errStr, "SQLSTATE 57014") || // query_canceled (statement timeout)
		strings.Contains(errStr, "could not serialize access")
}

// GetImportedContract retrieves scan progress for a (contract, chain), or nil
func (s *pgStore) GetImportedContract(ctx context.Context, contract string, chainID int64) (*schema.ImportedContract, error) {
	var imported schema.ImportedContract
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND chain_id = ?", contract, chainID).
		First(&imported).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get imported contract: %w", err)
	}
	return &imported, nil
}

// CreateImportedContract records a newly discovered contract import
func (s *pgStore) CreateImportedContract(ctx context.Context, contract *schema.ImportedContract) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_address"}, {Name: "chain_id"}},
		DoNothing: true,
	}).Create(contract).Error
	if err != nil {
		return fmt.Errorf("failed to create imported contract: %w", err)
	}
	return nil
}

// AdvanceCheckpoint persists a chunk's upper bound as last_indexed_block.
// GREATEST keeps the checkpoint monotonically non-decreasing even under a
// misordered call.
func (s *pgStore) AdvanceCheckpoint(ctx context.Context, contract string, chainID int64, block uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.ImportedContract{}).
		Where("contract_address = ? AND chain_id = ?", contract, chainID).
		Updates(map[string]interface{}{
			"last_indexed_block": gorm.Expr("GREATEST(last_indexed_block, ?)", block),
			"updated_at":         gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to advance checkpoint: %w", err)
	}
	return nil
}

// MarkImportFinished sets is_import_finish after a sweep with no head advance
func (s *pgStore) MarkImportFinished(ctx context.Context, contract string, chainID int64, finished bool) error {
	err := s.db.WithContext(ctx).
		Model(&schema.ImportedContract{}).
		Where("contract_address = ? AND chain_id = ?", contract, chainID).
		Updates(map[string]interface{}{
			"is_import_finish": finished,
			"updated_at":       gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark import finished: %w", err)
	}
	return nil
}

// GetCollection retrieves a collection by (contract, chain), or nil
func (s *pgStore) GetCollection(ctx context.Context, contract string, chainID int64) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND chain_id = ?", contract, chainID).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// UpsertCollection creates or updates a collection idempotently per
// (contract, chain). The slug is allocated once and never overwritten.
func (s *pgStore) UpsertCollection(ctx context.Context, collection *schema.Collection) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_address"}, {Name: "chain_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category_id", "creator_id", "updated_at"}),
	}).Create(collection).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collection: %w", err)
	}

	// On conflict the ID is not returned; fetch it so the job result can
	// carry the collection.
	if collection.ID == 0 {
		existing, err := s.GetCollection(ctx, collection.ContractAddress, collection.ChainID)
		if err != nil {
			return err
		}
		if existing != nil {
			collection.ID = existing.ID
			collection.Slug = existing.Slug
		}
	}
	return nil
}

// NextSlug allocates the next free slug for a desired base by inspecting the
// two most recent non-deleted collections whose slug starts with the base.
func (s *pgStore) NextSlug(ctx context.Context, base string) (string, error) {
	var recent []schema.Collection
	err := s.db.WithContext(ctx).
		Where("slug LIKE ?", base+"%").
		Order("id DESC").
		Limit(2).
		Find(&recent).Error
	if err != nil {
		return "", fmt.Errorf("failed to query slugs: %w", err)
	}

	switch len(recent) {
	case 0:
		return base, nil
	case 1:
		return base + "-1", nil
	default:
		suffix := strings.TrimPrefix(recent[0].Slug, base+"-")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			// Most recent match carries no numeric suffix
			n = 0
		}
		return fmt.Sprintf("%s-%d", base, n+1), nil
	}
}

// ApplyTransfer applies one decoded transfer event exactly once. Everything
// happens inside a single serializable transaction: the history insert doubles
// as the idempotency check (ON CONFLICT DO NOTHING on the chain-assigned key),
// and both balance rows are updated as additive deltas so no read-then-write
// race exists between concurrent writers.
func (s *pgStore) ApplyTransfer(ctx context.Context, event *domain.TransferEvent) (*ApplyResult, error) {
	result := &ApplyResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.stmtTimeout > 0 {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL statement_timeout = %d", s.stmtTimeout.Milliseconds())).Error; err != nil {
				return fmt.Errorf("failed to set statement timeout: %w", err)
			}
		}

		history := schema.TokenTransferHistory{
			TransactionHash: event.TxHash,
			ChainID:         event.ChainID,
			TxIndex:         event.TxIndex,
			LogIndex:        event.LogIndex,
			ContractAddress: event.Contract,
			FromAddress:     event.From,
			ToAddress:       event.To,
			TokenID:         event.TokenID,
			Value:           event.Quantity,
			Block:           event.BlockNumber,
			IsBatch:         event.IsBatch,
			BlockTime:       event.Timestamp,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "transaction_hash"}, {Name: "chain_id"},
				{Name: "tx_index"}, {Name: "log_index"},
			},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&history).Error; err != nil {
			return fmt.Errorf("failed to insert transfer history: %w", err)
		}

		// ID == 0 means the idempotency key already existed: the event was
		// applied before, so the balances must not move again.
		if history.ID == 0 {
			return nil
		}
		result.Applied = true
		result.Minted = event.IsMint()

		// Participants become users on first observed interaction
		for _, addr := range []string{event.From, event.To} {
			if addr == domain.ETHEREUM_ZERO_ADDRESS {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "wallet_address"}},
				DoNothing: true,
			}).Create(&schema.User{WalletAddress: addr}).Error; err != nil {
				return fmt.Errorf("failed to ensure user: %w", err)
			}
		}

		// Sender decrement, skipped for mints. Clamped at zero: a transient
		// negative balance is a reconciliation bug, not a state to persist.
		if !event.IsMint() {
			sender := schema.TokenOwnership{
				ContractAddress: event.Contract,
				ChainID:         event.ChainID,
				TokenID:         event.TokenID,
				OwnerAddress:    event.From,
				Quantity:        0,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "contract_address"}, {Name: "chain_id"},
					{Name: "token_id"}, {Name: "owner_address"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity":   gorm.Expr("GREATEST(token_ownerships.quantity - ?, 0)", event.Quantity),
					"updated_at": gorm.Expr("now()"),
				}),
			}).Create(&sender).Error; err != nil {
				return fmt.Errorf("failed to update sender balance: %w", err)
			}
		}

		// Receiver increment, skipped for burns: destroyed supply accrues to
		// no one.
		if !event.IsBurn() {
			receiver := schema.TokenOwnership{
				ContractAddress: event.Contract,
				ChainID:         event.ChainID,
				TokenID:         event.TokenID,
				OwnerAddress:    event.To,
				Quantity:        event.Quantity,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "contract_address"}, {Name: "chain_id"},
					{Name: "token_id"}, {Name: "owner_address"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity":   gorm.Expr("token_ownerships.quantity + ?", event.Quantity),
					"updated_at": gorm.Expr("now()"),
				}),
			}).Create(&receiver).Error; err != nil {
				return fmt.Errorf("failed to update receiver balance: %w", err)
			}
		}

		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetItem retrieves an item by (tokenID, contract, chain), or nil
func (s *pgStore) GetItem(ctx context.Context, tokenID, contract string, chainID int64) (*schema.Item, error) {
	var item schema.Item
	err := s.db.WithContext(ctx).
		Where("token_id = ? AND contract_address = ? AND chain_id = ?", tokenID, contract, chainID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// CreateItem creates an item row for a first-seen mint
func (s *pgStore) CreateItem(ctx context.Context, item *schema.Item) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "token_id"}, {Name: "contract_address"}, {Name: "chain_id"},
		},
		DoNothing: true,
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// UpdateItemMetadata fills in the materialized metadata fields of an item
func (s *pgStore) UpdateItemMetadata(ctx context.Context, itemID int64, input ItemMetadataInput) error {
	updates := map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"image_url":   input.ImageURL,
		"updated_at":  gorm.Expr("now()"),
	}
	if input.Metadata != nil {
		updates["metadata"] = input.Metadata
	}
	if input.Attributes != nil {
		updates["attributes"] = input.Attributes
	}
	if input.Hash != nil {
		updates["metadata_hash"] = *input.Hash
	}

	err := s.db.WithContext(ctx).
		Model(&schema.Item{}).
		Where("id = ?", itemID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update item metadata: %w", err)
	}
	return nil
}

// IncrementItemSupply accumulates supply/quantity_minted for a repeated
// fungible mint
func (s *pgStore) IncrementItemSupply(ctx context.Context, tokenID, contract string, chainID int64, quantity uint64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Item{}).
		Where("token_id = ? AND contract_address = ? AND chain_id = ?", tokenID, contract, chainID).
		Updates(map[string]interface{}{
			"supply":          gorm.Expr("supply + ?", quantity),
			"quantity_minted": gorm.Expr("quantity_minted + ?", quantity),
			"updated_at":      gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to increment item supply: %w", err)
	}
	return nil
}

// EnsureUser creates a user for a wallet address if absent and returns it
func (s *pgStore) EnsureUser(ctx context.Context, walletAddress string) (*schema.User, error) {
	user := schema.User{WalletAddress: walletAddress}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoNothing: true,
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	if user.ID == 0 {
		if err := s.db.WithContext(ctx).
			Where("wallet_address = ?", walletAddress).
			First(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
	}
	return &user, nil
}

// GetOwnership retrieves a materialized balance row, or nil
func (s *pgStore) GetOwnership(ctx context.Context, contract string, chainID int64, tokenID, owner string) (*schema.TokenOwnership, error) {
	var ownership schema.TokenOwnership
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND chain_id = ? AND token_id = ? AND owner_address = ?",
			contract, chainID, tokenID, owner).
		First(&ownership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ownership: %w", err)
	}
	return &ownership, nil
}
