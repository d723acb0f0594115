package ethereum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// ERC-165 interface identifiers
var (
	// erc721InterfaceID is the ERC-165 identifier of the ERC-721 interface
	erc721InterfaceID = [4]byte{0x80, 0xac, 0x58, 0xcd}
	// erc1155InterfaceID is the ERC-165 identifier of the ERC-1155 interface
	erc1155InterfaceID = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
)

// DetectStandard probes the contract's capability-introspection endpoint with
// the ERC-721 and ERC-1155 interface identifiers. A contract answering true
// for ERC-721 is classified ERC-721; otherwise a true for ERC-1155 classifies
// it ERC-1155; neither is terminal.
func (c *client) DetectStandard(ctx context.Context, contract string) (domain.TokenStandard, error) {
	is721, err := c.supportsInterface(ctx, contract, erc721InterfaceID)
	if err != nil {
		return "", fmt.Errorf("failed to probe ERC-721 interface: %w", err)
	}
	if is721 {
		return domain.StandardERC721, nil
	}

	is1155, err := c.supportsInterface(ctx, contract, erc1155InterfaceID)
	if err != nil {
		return "", fmt.Errorf("failed to probe ERC-1155 interface: %w", err)
	}
	if is1155 {
		return domain.StandardERC1155, nil
	}

	return "", domain.ErrUnsupportedContract
}

// supportsInterface calls the ERC-165 supportsInterface(bytes4) function
func (c *client) supportsInterface(ctx context.Context, contract string, interfaceID [4]byte) (bool, error) {
	// ERC165 supportsInterface function signature: supportsInterface(bytes4) returns (bool)
	supportsABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return false, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := supportsABI.Pack("supportsInterface", interfaceID)
	if err != nil {
		return false, fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contract)
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		// Contracts without ERC-165 revert; treat as not supporting.
		// Transport and context errors must surface so the attempt is
		// retried instead of the contract being classified unsupported.
		if isCallRevert(err) {
			return false, nil
		}
		return false, fmt.Errorf("supportsInterface call failed: %w", err)
	}

	var supported bool
	if err := supportsABI.UnpackIntoInterface(&supported, "supportsInterface", result); err != nil {
		return false, nil
	}

	return supported, nil
}

// isCallRevert reports whether a contract call failed inside the EVM rather
// than in transport. Nodes attach revert data to EVM failures; RPC transport
// errors and expired contexts carry none.
func isCallRevert(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "execution reverted") ||
		strings.Contains(errStr, "invalid opcode") ||
		strings.Contains(errStr, "out of gas")
}
