package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// Client is the read-only chain RPC surface the indexer needs. It is owned by
// the worker process and shared across contract imports; all calls are
// blocking and honor the passed context.
//
//go:generate mockgen -source=client.go -destination=../mocks/chainclient.go -package=mocks -mock_names=Client=MockChainClient
type Client interface {
	// HeadBlock returns the current chain head number
	HeadBlock(ctx context.Context) (uint64, error)

	// BlockTime returns the timestamp of a block, cached per block number
	BlockTime(ctx context.Context, number uint64) (time.Time, error)

	// HasCodeAt reports whether contract bytecode exists at the given block
	HasCodeAt(ctx context.Context, contract string, block uint64) (bool, error)

	// FilterTransferLogs retrieves transfer logs for a contract over an
	// inclusive block range, filtered by the topics of the given standard
	FilterTransferLogs(ctx context.Context, contract string, standard domain.TokenStandard, fromBlock, toBlock uint64) ([]types.Log, error)

	// DetectStandard probes the contract's supportsInterface endpoint and
	// returns the detected token standard. Returns
	// domain.ErrUnsupportedContract when the contract supports neither.
	DetectStandard(ctx context.Context, contract string) (domain.TokenStandard, error)

	// TokenURI fetches the metadata URI for a token via the standard's
	// metadata accessor (tokenURI for ERC-721, uri for ERC-1155)
	TokenURI(ctx context.Context, contract, tokenID string, standard domain.TokenStandard) (string, error)

	// ContractName fetches the contract's name(); returns an empty string
	// when the contract exposes no name
	ContractName(ctx context.Context, contract string) (string, error)

	// ContractOwner fetches the contract's owner() address; returns an empty
	// string when the contract exposes no owner
	ContractOwner(ctx context.Context, contract string) (string, error)

	// FindCreationBlock binary-searches for the first block at which the
	// contract bytecode exists
	FindCreationBlock(ctx context.Context, contract string, startBlock uint64) (uint64, error)

	// Close closes the connection
	Close()
}

type client struct {
	chainID int64
	eth     adapter.EthClient
	clock   adapter.Clock

	mu         sync.Mutex
	blockTimes map[uint64]time.Time
}

// NewClient creates a chain client over a dialed Ethereum RPC connection
func NewClient(chainID int64, eth adapter.EthClient, clock adapter.Clock) Client {
	return &client{
		chainID:    chainID,
		eth:        eth,
		clock:      clock,
		blockTimes: make(map[uint64]time.Time),
	}
}

// HeadBlock returns the current chain head number
func (c *client) HeadBlock(ctx context.Context) (uint64, error) {
	header, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}
	return header.Number.Uint64(), nil
}

// BlockTime returns the timestamp of a block. Block timestamps are immutable,
// so they are cached for the lifetime of the client.
func (c *client) BlockTime(ctx context.Context, number uint64) (time.Time, error) {
	c.mu.Lock()
	if t, ok := c.blockTimes[number]; ok {
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	header, err := c.eth.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header %d: %w", number, err)
	}

	t := c.clock.Unix(int64(header.Time), 0) //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
	c.mu.Lock()
	c.blockTimes[number] = t
	c.mu.Unlock()
	return t, nil
}

// HasCodeAt reports whether contract bytecode exists at the given block
func (c *client) HasCodeAt(ctx context.Context, contract string, block uint64) (bool, error) {
	code, err := c.eth.CodeAt(ctx, common.HexToAddress(contract), new(big.Int).SetUint64(block))
	if err != nil {
		return false, fmt.Errorf("failed to get code at block %d: %w", block, err)
	}
	return len(code) > 0, nil
}

// FilterTransferLogs retrieves transfer logs for a contract over an inclusive
// block range. The topic filter follows the detected standard: Transfer for
// ERC-721, TransferSingle and TransferBatch for ERC-1155.
func (c *client) FilterTransferLogs(ctx context.Context, contract string, standard domain.TokenStandard, fromBlock, toBlock uint64) ([]types.Log, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	var topics []common.Hash
	switch standard {
	case domain.StandardERC721:
		topics = []common.Hash{transferEventSignature}
	case domain.StandardERC1155:
		topics = []common.Hash{transferSingleEventSignature, transferBatchEventSignature}
	default:
		return nil, fmt.Errorf("unsupported token standard: %s", standard)
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{common.HexToAddress(contract)},
		Topics:    [][]common.Hash{topics},
	}

	logs, err := c.eth.FilterLogs(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs for range %d-%d: %w", fromBlock, toBlock, err)
	}
	return logs, nil
}

// TokenURI fetches the metadata URI for a token via the standard's metadata
// accessor
func (c *client) TokenURI(ctx context.Context, contract, tokenID string, standard domain.TokenStandard) (string, error) {
	var abiJSON, method string
	switch standard {
	case domain.StandardERC721:
		// ERC721 tokenURI function signature: tokenURI(uint256) returns (string)
		abiJSON = `[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`
		method = "tokenURI"
	case domain.StandardERC1155:
		// ERC1155 uri function signature: uri(uint256) returns (string)
		abiJSON = `[{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`
		method = "uri"
	default:
		return "", fmt.Errorf("unsupported token standard: %s", standard)
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return "", fmt.Errorf("invalid token id: %s", tokenID)
	}

	data, err := parsed.Pack(method, id)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contract)
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call contract: %w", err)
	}

	var uri string
	if err := parsed.UnpackIntoInterface(&uri, method, result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return uri, nil
}

// ContractName fetches the contract's name(). Contracts without a name
// endpoint yield an empty string, not an error.
func (c *client) ContractName(ctx context.Context, contract string) (string, error) {
	// ERC721Metadata name function signature: name() returns (string)
	nameABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := nameABI.Pack("name")
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contract)
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		// No name() endpoint; the caller falls back to a synthetic name
		return "", nil
	}

	var name string
	if err := nameABI.UnpackIntoInterface(&name, "name", result); err != nil {
		return "", nil
	}

	return name, nil
}

// ContractOwner fetches the contract's owner() address. Contracts without an
// owner endpoint yield an empty string, not an error.
func (c *client) ContractOwner(ctx context.Context, contract string) (string, error) {
	// Ownable owner function signature: owner() returns (address)
	ownerABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := ownerABI.Pack("owner")
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contract)
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		// No owner() endpoint; the collection simply has no creator
		return "", nil
	}

	var owner common.Address
	if err := ownerABI.UnpackIntoInterface(&owner, "owner", result); err != nil {
		return "", nil
	}
	if owner == (common.Address{}) {
		return "", nil
	}

	return owner.Hex(), nil
}

// Close closes the connection
func (c *client) Close() {
	c.eth.Close()
}
