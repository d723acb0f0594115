package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Item represents the items table - one distinct tokenId within a collection.
// For ERC-1155 tokens Supply and QuantityMinted accumulate across mint events;
// for ERC-721 they are fixed at 1.
type Item struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the token number within the contract (decimal string, supports uint256)
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_items_token_contract_chain,priority:1"`
	// ContractAddress is the token contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_items_token_contract_chain,priority:2"`
	// ChainID is the EVM chain identifier
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_items_token_contract_chain,priority:3"`
	// Name is the materialized metadata name, or the synthetic fallback
	Name string `gorm:"column:name;type:text"`
	// Description is the materialized metadata description
	Description string `gorm:"column:description;type:text"`
	// ImageURL is the materialized image URL (gateway-rewritten when ipfs://)
	ImageURL string `gorm:"column:image_url;type:text"`
	// Supply is the current token supply (accumulates for ERC-1155)
	Supply uint64 `gorm:"column:supply;not null;default:0"`
	// QuantityMinted accumulates mint quantities across mint events
	QuantityMinted uint64 `gorm:"column:quantity_minted;not null;default:0"`
	// Metadata is the raw metadata document fetched from the token URI
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// Attributes are the validated trait entries from the metadata document
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	// MetadataHash is the canonical JSON hash of Metadata to skip redundant rewrites
	MetadataHash *string `gorm:"column:metadata_hash;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
