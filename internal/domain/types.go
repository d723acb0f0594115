package domain

import (
	"time"
)

// TokenStandard represents the token contract standard detected by the
// interface prober.
type TokenStandard string

const (
	StandardERC721  TokenStandard = "erc721"
	StandardERC1155 TokenStandard = "erc1155"
)

// IsValidStandard checks if a token standard is one the indexer understands
func IsValidStandard(s TokenStandard) bool {
	return s == StandardERC721 || s == StandardERC1155
}

// TransferEvent is one decoded transfer effect, normalized across ERC-721
// Transfer and ERC-1155 TransferSingle/TransferBatch logs. A TransferBatch log
// is expanded into one TransferEvent per (tokenId, quantity) pair with TxIndex
// set to the pair's position inside the batch, so that the idempotency key
// (TxHash, ChainID, TxIndex, LogIndex) stays unique within one transaction.
type TransferEvent struct {
	ChainID     int64     `json:"chain_id"`
	Contract    string    `json:"contract"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	TokenID     string    `json:"token_id"` // decimal string, supports uint256
	Quantity    uint64    `json:"quantity"`
	BlockNumber uint64    `json:"block_number"`
	TxHash      string    `json:"tx_hash"`
	TxIndex     uint      `json:"tx_index"`
	LogIndex    uint      `json:"log_index"`
	IsBatch     bool      `json:"is_batch"`
	Timestamp   time.Time `json:"timestamp"`
}

// IsMint reports whether the event creates token supply (sender is the zero
// address).
func (e *TransferEvent) IsMint() bool {
	return e.From == ETHEREUM_ZERO_ADDRESS
}

// IsBurn reports whether the event destroys token supply (receiver is the zero
// address).
func (e *TransferEvent) IsBurn() bool {
	return e.To == ETHEREUM_ZERO_ADDRESS
}

// WorkItem is the job-delivery contract: one "index this contract" request.
// The job layer must key in-flight items by (Contract, ChainID) so that two
// workers never scan the same contract concurrently; the ledger's ordering
// guarantees depend on it.
type WorkItem struct {
	ID         string `json:"id"` // ULID assigned at enqueue time
	Contract   string `json:"contract"`
	ChainID    int64  `json:"chain_id"`
	CategoryID int64  `json:"category_id"`
}

// JobResult is published when a work item finishes. On success it carries the
// created or updated collection.
type JobResult struct {
	WorkItemID string `json:"work_item_id"`
	AttemptID  string `json:"attempt_id"` // UUID, fresh per delivery
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	// Terminal marks a failure that will not succeed on redelivery, such as
	// a contract supporting neither token standard.
	Terminal     bool   `json:"terminal,omitempty"`
	CollectionID int64  `json:"collection_id,omitempty"`
	Slug         string `json:"slug,omitempty"`
}

// TokenMetadata is the subset of an off-chain metadata document the indexer
// materializes.
type TokenMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Attributes  []TokenAttribute `json:"attributes"`
}

// TokenAttribute is one trait of a token. An attribute is valid only when both
// the trait name and the value are present.
type TokenAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// Valid reports whether the attribute carries both a trait name and a value.
func (a TokenAttribute) Valid() bool {
	if a.TraitType == "" || a.Value == nil {
		return false
	}
	if s, ok := a.Value.(string); ok && s == "" {
		return false
	}
	return true
}
