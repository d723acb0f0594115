package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/ethereum"
	"github.com/mosaicmarket/collection-indexer/internal/jobs"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
	"github.com/mosaicmarket/collection-indexer/internal/scan"
	"github.com/mosaicmarket/collection-indexer/internal/store"
	"github.com/mosaicmarket/collection-indexer/internal/store/schema"
)

// Importer runs a contract import end to end: standard detection, collection
// registration, creation-block discovery, and the chunked log scan. It
// implements jobs.Handler so the delivery transport stays replaceable.
type Importer struct {
	chain      ethereum.Client
	store      store.Store
	scanner    *scan.Scanner
	startBlock uint64
}

var _ jobs.Handler = (*Importer)(nil)

// New creates an importer. startBlock is the floor for creation-block search,
// usually 0 or the chain's first post-genesis block carrying contracts.
func New(chain ethereum.Client, st store.Store, scanner *scan.Scanner, startBlock uint64) *Importer {
	return &Importer{
		chain:      chain,
		store:      st,
		scanner:    scanner,
		startBlock: startBlock,
	}
}

// Handle runs one import attempt and reports the outcome. It never returns
// nil; terminal failures are flagged so the transport stops redelivering.
func (i *Importer) Handle(ctx context.Context, item *domain.WorkItem, attemptID string) *domain.JobResult {
	result := &domain.JobResult{
		WorkItemID: item.ID,
		AttemptID:  attemptID,
	}

	logger.InfoCtx(ctx, "starting contract import",
		zap.String("workItemID", item.ID),
		zap.String("attemptID", attemptID),
		zap.String("contract", item.Contract),
		zap.Int64("chainID", item.ChainID))

	collection, err := i.runImport(ctx, item)
	if err != nil {
		result.Error = err.Error()
		result.Terminal = errors.Is(err, domain.ErrUnsupportedContract)
		return result
	}

	result.Success = true
	result.CollectionID = collection.ID
	result.Slug = collection.Slug

	logger.InfoCtx(ctx, "contract import finished",
		zap.String("workItemID", item.ID),
		zap.String("contract", item.Contract),
		zap.String("slug", collection.Slug))
	return result
}

// OnResumed logs the redelivery; the scan itself resumes from the persisted
// checkpoint without any extra work.
func (i *Importer) OnResumed(ctx context.Context, item *domain.WorkItem, attempt uint64) {
	logger.InfoCtx(ctx, "resuming contract import from checkpoint",
		zap.String("workItemID", item.ID),
		zap.String("contract", item.Contract),
		zap.Int64("chainID", item.ChainID),
		zap.Uint64("attempt", attempt))
}

// OnStalled is raised when the transport reclaimed an attempt that exceeded
// the stall window.
func (i *Importer) OnStalled(ctx context.Context, item *domain.WorkItem) {
	logger.WarnCtx(ctx, "contract import stalled, reclaimed for redelivery",
		zap.String("workItemID", item.ID),
		zap.String("contract", item.Contract),
		zap.Int64("chainID", item.ChainID))
}

// OnFailed is raised when the item will not be delivered again.
func (i *Importer) OnFailed(ctx context.Context, item *domain.WorkItem, err error) {
	logger.ErrorCtx(ctx, err,
		zap.String("message", "contract import failed permanently"),
		zap.String("workItemID", item.ID),
		zap.String("contract", item.Contract),
		zap.Int64("chainID", item.ChainID))
}

func (i *Importer) runImport(ctx context.Context, item *domain.WorkItem) (*schema.Collection, error) {
	standard, err := i.chain.DetectStandard(ctx, item.Contract)
	if err != nil {
		return nil, err
	}

	collection, err := i.ensureCollection(ctx, item)
	if err != nil {
		return nil, err
	}

	imported, err := i.store.GetImportedContract(ctx, item.Contract, item.ChainID)
	if err != nil {
		return nil, err
	}
	if imported == nil {
		deployedAt, err := i.chain.FindCreationBlock(ctx, item.Contract, i.startBlock)
		if err != nil {
			return nil, fmt.Errorf("failed to locate creation block: %w", err)
		}

		imported = &schema.ImportedContract{
			ContractAddress: item.Contract,
			ChainID:         item.ChainID,
			TokenType:       standard,
			DeployedAtBlock: deployedAt,
		}
		if err := i.store.CreateImportedContract(ctx, imported); err != nil {
			return nil, err
		}

		logger.InfoCtx(ctx, "registered contract for import",
			zap.String("contract", item.Contract),
			zap.Uint64("deployedAtBlock", deployedAt))
	} else {
		// Resume with the standard detected on first import
		standard = imported.TokenType
	}

	if err := i.scanner.Run(ctx, item.Contract, item.ChainID, standard, collection.Name); err != nil {
		return nil, err
	}

	return collection, nil
}

// ensureCollection creates or refreshes the collection row. The slug is
// allocated once and survives later imports of the same contract.
func (i *Importer) ensureCollection(ctx context.Context, item *domain.WorkItem) (*schema.Collection, error) {
	existing, err := i.store.GetCollection(ctx, item.Contract, item.ChainID)
	if err != nil {
		return nil, err
	}

	name, err := i.chain.ContractName(ctx, item.Contract)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = syntheticCollectionName(item.Contract)
	}

	var slug string
	if existing != nil {
		slug = existing.Slug
	} else {
		slug, err = i.store.NextSlug(ctx, slugBase(name))
		if err != nil {
			return nil, err
		}
	}

	var creatorID *int64
	owner, err := i.chain.ContractOwner(ctx, item.Contract)
	if err == nil && owner != "" {
		user, err := i.store.EnsureUser(ctx, owner)
		if err != nil {
			return nil, err
		}
		creatorID = &user.ID
	}

	collection := &schema.Collection{
		Name:            name,
		Slug:            slug,
		ContractAddress: item.Contract,
		ChainID:         item.ChainID,
		CreatorID:       creatorID,
		CategoryID:      item.CategoryID,
	}
	if err := i.store.UpsertCollection(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

// syntheticCollectionName names a collection whose contract exposes no name()
func syntheticCollectionName(contract string) string {
	addr := strings.TrimPrefix(strings.ToLower(contract), "0x")
	if len(addr) > 8 {
		addr = addr[:8]
	}
	return "collection-" + addr
}

// slugBase lowercases the name and folds every non-alphanumeric run into a
// single dash.
func slugBase(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "collection"
	}
	return slug
}
