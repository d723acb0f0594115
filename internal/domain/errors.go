package domain

import "errors"

var (
	// ErrUnsupportedContract is returned when a contract supports neither the
	// ERC-721 nor the ERC-1155 interface. It is terminal: the job layer must
	// not retry a work item that failed with this error.
	ErrUnsupportedContract = errors.New("unsupported contract: neither ERC-721 nor ERC-1155")

	// ErrContractNotFound is returned when no block in the searched range
	// contains bytecode for the contract address.
	ErrContractNotFound = errors.New("contract bytecode not found in block range")

	// ErrCollectionNotFound is returned when a collection is not found
	ErrCollectionNotFound = errors.New("collection not found")
)
