package schema

import (
	"time"
)

// TokenOwnership represents the token_ownerships table - the materialized
// current balance per (contract, chain, tokenId, owner). It is a derived,
// rebuildable projection over TokenTransferHistory, kept as a mutable table
// for read efficiency. Quantity is never negative: balance updates are
// additive deltas clamped at zero.
type TokenOwnership struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the token contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_token_ownerships_key,priority:1"`
	// ChainID is the EVM chain identifier
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_token_ownerships_key,priority:2"`
	// TokenID is the token number owned
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_token_ownerships_key,priority:3"`
	// OwnerAddress is the owner's wallet address
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_token_ownerships_key,priority:4"`
	// Quantity is the current balance
	Quantity uint64 `gorm:"column:quantity;not null;default:0"`
	// CreatedAt is the timestamp when this balance row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TokenOwnership model
func (TokenOwnership) TableName() string {
	return "token_ownerships"
}
