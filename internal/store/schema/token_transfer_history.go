package schema

import (
	"time"
)

// TokenTransferHistory represents the token_transfer_histories table - the
// immutable log of one transfer effect. The unique index over (tx_hash,
// chain_id, tx_index, log_index) is the idempotency key: rows are never
// updated after creation, and a conflicting insert means the event was
// already applied.
type TokenTransferHistory struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TransactionHash is the chain-assigned transaction hash
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text;uniqueIndex:idx_transfer_histories_idempotency,priority:1"`
	// ChainID is the EVM chain identifier
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_transfer_histories_idempotency,priority:2;index:idx_transfer_histories_contract_chain,priority:2"`
	// TxIndex is the transfer's index within the transaction. For expanded
	// TransferBatch events it is the pair's position within the batch.
	TxIndex uint `gorm:"column:tx_index;not null;uniqueIndex:idx_transfer_histories_idempotency,priority:3"`
	// LogIndex is the log's index within the block
	LogIndex uint `gorm:"column:log_index;not null;uniqueIndex:idx_transfer_histories_idempotency,priority:4"`
	// ContractAddress is the token contract that emitted the event
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_transfer_histories_contract_chain,priority:1"`
	// FromAddress is the sender (zero address for mints)
	FromAddress string `gorm:"column:from_address;not null;type:text"`
	// ToAddress is the receiver (zero address for burns)
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// TokenID is the token number transferred
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// Value is the quantity transferred (1 for ERC-721)
	Value uint64 `gorm:"column:value;not null"`
	// Block is the block number containing the transaction
	Block uint64 `gorm:"column:block;not null"`
	// IsBatch marks events expanded from an ERC-1155 TransferBatch log
	IsBatch bool `gorm:"column:is_batch;not null;default:false"`
	// BlockTime is the timestamp of the containing block
	BlockTime time.Time `gorm:"column:block_time;type:timestamptz"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TokenTransferHistory model
func (TokenTransferHistory) TableName() string {
	return "token_transfer_histories"
}
