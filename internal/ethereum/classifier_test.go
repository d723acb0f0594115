package ethereum

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClassifierContract = "0x06012c8cf97BEaD5deAe237070F9587f8E7A266d"

func addressTopic(addr string) common.Hash {
	return common.BytesToHash(common.HexToAddress(addr).Bytes())
}

func TestClassifyLogERC721Transfer(t *testing.T) {
	vLog := types.Log{
		Address: common.HexToAddress(testClassifierContract),
		Topics: []common.Hash{
			transferEventSignature,
			addressTopic("0x1111111111111111111111111111111111111111"),
			addressTopic("0x2222222222222222222222222222222222222222"),
			common.BigToHash(big.NewInt(123)),
		},
		BlockNumber: 1000,
		TxHash:      common.HexToHash("0xaa"),
		TxIndex:     2,
		Index:       5,
	}

	events, err := ClassifyLog(1, vLog)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, int64(1), event.ChainID)
	assert.Equal(t, common.HexToAddress(testClassifierContract).Hex(), event.Contract)
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111").Hex(), event.From)
	assert.Equal(t, common.HexToAddress("0x2222222222222222222222222222222222222222").Hex(), event.To)
	assert.Equal(t, "123", event.TokenID)
	assert.Equal(t, uint64(1), event.Quantity)
	assert.Equal(t, uint64(1000), event.BlockNumber)
	assert.Equal(t, uint(2), event.TxIndex)
	assert.Equal(t, uint(5), event.LogIndex)
	assert.False(t, event.IsBatch)
}

func TestClassifyLogERC20TransferIgnored(t *testing.T) {
	// ERC-20 shares the Transfer signature but carries the value in data,
	// leaving only 3 topics
	vLog := types.Log{
		Topics: []common.Hash{
			transferEventSignature,
			addressTopic("0x1111111111111111111111111111111111111111"),
			addressTopic("0x2222222222222222222222222222222222222222"),
		},
	}

	events, err := ClassifyLog(1, vLog)
	assert.NoError(t, err)
	assert.Nil(t, events)
}

func TestClassifyLogTransferSingle(t *testing.T) {
	data := make([]byte, 64)
	copy(data[0:32], common.BigToHash(big.NewInt(42)).Bytes())
	copy(data[32:64], common.BigToHash(big.NewInt(10)).Bytes())

	vLog := types.Log{
		Address: common.HexToAddress(testClassifierContract),
		Topics: []common.Hash{
			transferSingleEventSignature,
			addressTopic("0x3333333333333333333333333333333333333333"), // operator
			addressTopic("0x1111111111111111111111111111111111111111"),
			addressTopic("0x2222222222222222222222222222222222222222"),
		},
		Data:        data,
		BlockNumber: 2000,
		TxHash:      common.HexToHash("0xbb"),
		Index:       7,
	}

	events, err := ClassifyLog(1, vLog)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111").Hex(), event.From)
	assert.Equal(t, common.HexToAddress("0x2222222222222222222222222222222222222222").Hex(), event.To)
	assert.Equal(t, "42", event.TokenID)
	assert.Equal(t, uint64(10), event.Quantity)
	assert.False(t, event.IsBatch)
}

func TestClassifyLogTransferBatchExpansion(t *testing.T) {
	ids := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	values := []*big.Int{big.NewInt(5), big.NewInt(6), big.NewInt(7)}
	data, err := transferBatchDataArguments.Pack(ids, values)
	require.NoError(t, err)

	vLog := types.Log{
		Address: common.HexToAddress(testClassifierContract),
		Topics: []common.Hash{
			transferBatchEventSignature,
			addressTopic("0x3333333333333333333333333333333333333333"),
			addressTopic("0x1111111111111111111111111111111111111111"),
			addressTopic("0x2222222222222222222222222222222222222222"),
		},
		Data:        data,
		BlockNumber: 3000,
		TxHash:      common.HexToHash("0xcc"),
		TxIndex:     9,
		Index:       4,
	}

	events, err := ClassifyLog(1, vLog)
	require.NoError(t, err)
	require.Len(t, events, 3)

	for i, event := range events {
		assert.Equal(t, ids[i].String(), event.TokenID)
		assert.Equal(t, values[i].Uint64(), event.Quantity)
		// The pair's position in the batch replaces the transaction index so
		// each expanded event keeps a distinct idempotency key
		assert.Equal(t, uint(i), event.TxIndex)
		assert.Equal(t, uint(4), event.LogIndex)
		assert.True(t, event.IsBatch)
	}
}

func TestClassifyLogMalformed(t *testing.T) {
	t.Run("no topics", func(t *testing.T) {
		_, err := ClassifyLog(1, types.Log{})
		assert.Error(t, err)
	})

	t.Run("unknown signature", func(t *testing.T) {
		_, err := ClassifyLog(1, types.Log{
			Topics: []common.Hash{common.HexToHash("0xdead")},
		})
		assert.Error(t, err)
	})

	t.Run("transfer single short data", func(t *testing.T) {
		_, err := ClassifyLog(1, types.Log{
			Topics: []common.Hash{
				transferSingleEventSignature,
				addressTopic("0x3333333333333333333333333333333333333333"),
				addressTopic("0x1111111111111111111111111111111111111111"),
				addressTopic("0x2222222222222222222222222222222222222222"),
			},
			Data: make([]byte, 16),
		})
		assert.Error(t, err)
	})

	t.Run("transfer batch garbage data", func(t *testing.T) {
		_, err := ClassifyLog(1, types.Log{
			Topics: []common.Hash{
				transferBatchEventSignature,
				addressTopic("0x3333333333333333333333333333333333333333"),
				addressTopic("0x1111111111111111111111111111111111111111"),
				addressTopic("0x2222222222222222222222222222222222222222"),
			},
			Data: []byte{0x01, 0x02},
		})
		assert.Error(t, err)
	})
}
