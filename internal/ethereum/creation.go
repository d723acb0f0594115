package ethereum

import (
	"context"
	"fmt"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// FindCreationBlock binary-searches [startBlock, head] for the first block at
// which the contract bytecode exists. The search is iterative, so very large
// block ranges cost O(log n) RPC calls and constant stack. Invoked once per
// contract; the result is persisted as deployed_at_block and reused on
// subsequent imports.
func (c *client) FindCreationBlock(ctx context.Context, contract string, startBlock uint64) (uint64, error) {
	head, err := c.HeadBlock(ctx)
	if err != nil {
		return 0, err
	}

	if startBlock > head {
		return 0, fmt.Errorf("start block %d is beyond chain head %d", startBlock, head)
	}

	// Bytecode must exist at the head, otherwise the contract is not deployed
	// (or was self-destructed) and there is nothing to locate.
	exists, err := c.HasCodeAt(ctx, contract, head)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrContractNotFound
	}

	lo, hi := startBlock, head
	for lo < hi {
		mid := lo + (hi-lo)/2

		exists, err := c.HasCodeAt(ctx, contract, mid)
		if err != nil {
			return 0, err
		}

		if exists {
			// Contract existed at mid; the creation block is mid or earlier
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, nil
}
