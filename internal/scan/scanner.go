package scan

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/ethereum"
	"github.com/mosaicmarket/collection-indexer/internal/items"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
	"github.com/mosaicmarket/collection-indexer/internal/store"
)

// Scanner walks a contract's transfer logs from its checkpoint to the chain
// head in fixed-size chunks, applying each decoded event to the ownership
// ledger and advancing the checkpoint chunk by chunk.
type Scanner struct {
	chain        ethereum.Client
	store        store.Store
	materializer items.Materializer
	chunkSize    uint64
	eventRetries uint64
}

// NewScanner creates a chunked log scanner
func NewScanner(chain ethereum.Client, st store.Store, materializer items.Materializer, chunkSize, eventRetries uint64) *Scanner {
	if chunkSize == 0 {
		chunkSize = 3000
	}
	return &Scanner{
		chain:        chain,
		store:        st,
		materializer: materializer,
		chunkSize:    chunkSize,
		eventRetries: eventRetries,
	}
}

// Run scans the contract forward from its persisted checkpoint until a full
// sweep produces no head advance, then marks the import finished. Interrupting
// at any point loses at most the current chunk; a rerun resumes from the last
// committed checkpoint.
func (s *Scanner) Run(ctx context.Context, contract string, chainID int64, standard domain.TokenStandard, collectionName string) error {
	for {
		imported, err := s.store.GetImportedContract(ctx, contract, chainID)
		if err != nil {
			return err
		}
		if imported == nil {
			return fmt.Errorf("%w: %s on chain %d", domain.ErrContractNotFound, contract, chainID)
		}

		from := imported.DeployedAtBlock
		if imported.LastIndexedBlock >= from {
			from = imported.LastIndexedBlock + 1
		}

		head, err := s.chain.HeadBlock(ctx)
		if err != nil {
			return fmt.Errorf("failed to read chain head: %w", err)
		}

		ranges := PlanRanges(from, head, s.chunkSize)
		if len(ranges) == 0 {
			// The checkpoint caught up to head while we were scanning
			return s.store.MarkImportFinished(ctx, contract, chainID, true)
		}

		logger.InfoCtx(ctx, "scanning contract",
			zap.String("contract", contract),
			zap.Int64("chainID", chainID),
			zap.Uint64("from", from),
			zap.Uint64("head", head),
			zap.Int("chunks", len(ranges)))

		for _, r := range ranges {
			if err := s.scanChunk(ctx, contract, chainID, standard, collectionName, r); err != nil {
				return err
			}
			if err := s.store.AdvanceCheckpoint(ctx, contract, chainID, r.To); err != nil {
				return fmt.Errorf("failed to advance checkpoint to %d: %w", r.To, err)
			}
		}
	}
}

// scanChunk fetches and applies all transfer events in one inclusive block
// range. A failure leaves the checkpoint untouched so the whole chunk is
// retried on the next attempt.
func (s *Scanner) scanChunk(ctx context.Context, contract string, chainID int64, standard domain.TokenStandard, collectionName string, r BlockRange) error {
	logs, err := s.chain.FilterTransferLogs(ctx, contract, standard, r.From, r.To)
	if err != nil {
		return fmt.Errorf("failed to fetch logs for range %d-%d: %w", r.From, r.To, err)
	}

	for _, vLog := range logs {
		events, err := ethereum.ClassifyLog(chainID, vLog)
		if err != nil {
			logger.WarnCtx(ctx, "skipping unclassifiable log",
				zap.Error(err),
				zap.String("contract", contract),
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Uint("logIndex", vLog.Index))
			continue
		}

		for i := range events {
			event := &events[i]

			blockTime, err := s.chain.BlockTime(ctx, event.BlockNumber)
			if err != nil {
				return fmt.Errorf("failed to read block time for %d: %w", event.BlockNumber, err)
			}
			event.Timestamp = blockTime

			if err := s.applyEvent(ctx, event, standard, collectionName); err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}

	return nil
}

// applyEvent applies one transfer event to the ledger, retrying serialization
// conflicts. Mint events trigger item materialization, whose failure is logged
// but never fails the import.
func (s *Scanner) applyEvent(ctx context.Context, event *domain.TransferEvent, standard domain.TokenStandard, collectionName string) error {
	var result *store.ApplyResult

	operation := func() error {
		var err error
		result, err = s.store.ApplyTransfer(ctx, event)
		if err != nil {
			if store.IsRetryableTxError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.eventRetries), ctx))
	if err != nil {
		return fmt.Errorf("failed to apply transfer %s[%d]: %w", event.TxHash, event.LogIndex, err)
	}

	if !result.Applied || !result.Minted {
		return nil
	}

	if err := s.materializer.MaterializeMint(ctx, event, standard, collectionName); err != nil {
		logger.WarnCtx(ctx, "failed to materialize item for mint",
			zap.Error(err),
			zap.String("contract", event.Contract),
			zap.String("tokenID", event.TokenID))
	}
	return nil
}
