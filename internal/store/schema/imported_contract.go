package schema

import (
	"time"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// ImportedContract represents the imported_contracts table - per (contract,
// chain) scan progress. This row is the only durable state needed to resume a
// scan after a restart.
type ImportedContract struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the token contract being indexed
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_imported_contracts_contract_chain,priority:1"`
	// ChainID is the EVM chain identifier
	ChainID int64 `gorm:"column:chain_id;not null;uniqueIndex:idx_imported_contracts_contract_chain,priority:2"`
	// TokenType is the detected token standard (erc721, erc1155)
	TokenType domain.TokenStandard `gorm:"column:token_type;not null;type:text"`
	// DeployedAtBlock is the first block at which the contract bytecode exists
	DeployedAtBlock uint64 `gorm:"column:deployed_at_block;not null"`
	// LastIndexedBlock is the upper bound of the last fully applied chunk.
	// Monotonically non-decreasing.
	LastIndexedBlock uint64 `gorm:"column:last_indexed_block;not null;default:0"`
	// IsImportFinish is set only after a scan pass finds no new head advance
	IsImportFinish bool `gorm:"column:is_import_finish;not null;default:false"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ImportedContract model
func (ImportedContract) TableName() string {
	return "imported_contracts"
}
