package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// Event signatures
var (
	// Transfer event signature - shared by ERC20 and ERC721
	// ERC20: Transfer(address indexed from, address indexed to, uint256 value) - 3 topics
	// ERC721: Transfer(address indexed from, address indexed to, uint256 indexed tokenId) - 4 topics
	transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	// ERC1155 TransferSingle(address indexed operator, address indexed from, address indexed to, uint256 id, uint256 value)
	transferSingleEventSignature = crypto.Keccak256Hash([]byte("TransferSingle(address,address,address,uint256,uint256)"))

	// ERC1155 TransferBatch(address indexed operator, address indexed from, address indexed to, uint256[] ids, uint256[] values)
	transferBatchEventSignature = crypto.Keccak256Hash([]byte("TransferBatch(address,address,address,uint256[],uint256[])"))
)

// transferBatchDataArguments decodes the non-indexed ids/values arrays of a
// TransferBatch log
var transferBatchDataArguments = func() abi.Arguments {
	uint256Array, err := abi.NewType("uint256[]", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{
		{Name: "ids", Type: uint256Array},
		{Name: "values", Type: uint256Array},
	}
}()

// ClassifyLog decodes a raw transfer log into typed transfer events.
//
// A TransferBatch log expands into one event per (tokenId, value) pair; the
// pair's position within the batch becomes TxIndex, keeping the idempotency
// key (txHash, chainID, txIndex, logIndex) unique within one transaction.
//
// A nil slice with a nil error means the log is well-formed but not a token
// transfer (an ERC-20 Transfer sharing the ERC-721 signature). A non-nil
// error means the log failed to decode; callers should warn and skip it.
func ClassifyLog(chainID int64, vLog types.Log) ([]domain.TransferEvent, error) {
	if len(vLog.Topics) == 0 {
		return nil, fmt.Errorf("log without topics")
	}

	switch vLog.Topics[0] {
	case transferEventSignature:
		// ERC20 has 3 topics with value in data; ERC721 has 4 topics
		if len(vLog.Topics) == 3 {
			return nil, nil // ERC20 transfer, not a token transfer
		}
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid Transfer event: expected 3 or 4 topics, got %d", len(vLog.Topics))
		}

		return []domain.TransferEvent{{
			ChainID:     chainID,
			Contract:    vLog.Address.Hex(),
			From:        common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
			To:          common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			TokenID:     new(big.Int).SetBytes(vLog.Topics[3].Bytes()).String(),
			Quantity:    1,
			BlockNumber: vLog.BlockNumber,
			TxHash:      vLog.TxHash.Hex(),
			TxIndex:     vLog.TxIndex,
			LogIndex:    vLog.Index,
		}}, nil

	case transferSingleEventSignature:
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid TransferSingle event: expected 4 topics, got %d", len(vLog.Topics))
		}
		if len(vLog.Data) < 64 {
			return nil, fmt.Errorf("invalid TransferSingle event: insufficient data")
		}

		// Data layout: first 32 bytes = token ID, next 32 bytes = value
		quantity := new(big.Int).SetBytes(vLog.Data[32:64])
		if !quantity.IsUint64() {
			return nil, fmt.Errorf("TransferSingle value out of range: %s", quantity)
		}

		return []domain.TransferEvent{{
			ChainID:     chainID,
			Contract:    vLog.Address.Hex(),
			From:        common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			To:          common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
			TokenID:     new(big.Int).SetBytes(vLog.Data[0:32]).String(),
			Quantity:    quantity.Uint64(),
			BlockNumber: vLog.BlockNumber,
			TxHash:      vLog.TxHash.Hex(),
			TxIndex:     vLog.TxIndex,
			LogIndex:    vLog.Index,
		}}, nil

	case transferBatchEventSignature:
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid TransferBatch event: expected 4 topics, got %d", len(vLog.Topics))
		}

		decoded, err := transferBatchDataArguments.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TransferBatch data: %w", err)
		}

		ids, ok := decoded[0].([]*big.Int)
		if !ok {
			return nil, fmt.Errorf("invalid TransferBatch ids")
		}
		values, ok := decoded[1].([]*big.Int)
		if !ok {
			return nil, fmt.Errorf("invalid TransferBatch values")
		}
		if len(ids) != len(values) {
			return nil, fmt.Errorf("TransferBatch ids/values length mismatch: %d != %d", len(ids), len(values))
		}

		from := common.BytesToAddress(vLog.Topics[2].Bytes()).Hex()
		to := common.BytesToAddress(vLog.Topics[3].Bytes()).Hex()

		events := make([]domain.TransferEvent, 0, len(ids))
		for i := range ids {
			if !values[i].IsUint64() {
				return nil, fmt.Errorf("TransferBatch value out of range: %s", values[i])
			}
			events = append(events, domain.TransferEvent{
				ChainID:     chainID,
				Contract:    vLog.Address.Hex(),
				From:        from,
				To:          to,
				TokenID:     ids[i].String(),
				Quantity:    values[i].Uint64(),
				BlockNumber: vLog.BlockNumber,
				TxHash:      vLog.TxHash.Hex(),
				TxIndex:     uint(i), //nolint:gosec,G115 // batch position
				LogIndex:    vLog.Index,
				IsBatch:     true,
			})
		}
		return events, nil

	default:
		return nil, fmt.Errorf("unknown event signature: %s", vLog.Topics[0].Hex())
	}
}
