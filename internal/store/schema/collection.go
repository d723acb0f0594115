package schema

import (
	"time"

	"gorm.io/gorm"
)

// Collection represents the collections table - a token contract's
// marketplace record, created or updated idempotently per (contract, chain).
type Collection struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name of the collection
	Name string `gorm:"column:name;not null;type:text"`
	// Slug is the human-readable identifier, unique among non-deleted collections
	Slug string `gorm:"column:slug;not null;type:text;index:idx_collections_slug"`
	// ContractAddress is the token contract backing this collection
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_collections_contract_chain,priority:1"`
	// ChainID is the EVM chain identifier
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_collections_contract_chain,priority:2"`
	// CreatorID references the user observed as the contract owner/deployer
	CreatorID *int64 `gorm:"column:creator_id"`
	// CategoryID is the marketplace category assigned by the work item
	CategoryID int64 `gorm:"column:category_id;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
	// DeletedAt marks soft-deleted collections; deleted slugs may be reused
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	// Associations
	Creator *User  `gorm:"foreignKey:CreatorID"`
	Items   []Item `gorm:"foreignKey:ContractAddress,ChainID;references:ContractAddress,ChainID"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
