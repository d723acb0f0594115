package items

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"
	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/ethereum"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
	"github.com/mosaicmarket/collection-indexer/internal/store"
	"github.com/mosaicmarket/collection-indexer/internal/store/schema"
	"github.com/mosaicmarket/collection-indexer/internal/uri"
)

// Materializer creates or refreshes an Item row when a mint is applied.
//
//go:generate mockgen -source=materializer.go -destination=../mocks/materializer.go -package=mocks -mock_names=Materializer=MockMaterializer
type Materializer interface {
	// MaterializeMint ensures the minted token's Item row exists and carries
	// metadata. Metadata failures degrade to a synthetic name and are never
	// fatal to the import.
	MaterializeMint(ctx context.Context, event *domain.TransferEvent, standard domain.TokenStandard, collectionName string) error
}

type materializer struct {
	chain        ethereum.Client
	store        store.Store
	httpClient   adapter.HTTPClient
	rewriter     *uri.Rewriter
	fetchTimeout time.Duration
}

// NewMaterializer creates an item materializer
func NewMaterializer(chain ethereum.Client, st store.Store, httpClient adapter.HTTPClient, rewriter *uri.Rewriter, fetchTimeout time.Duration) Materializer {
	if fetchTimeout == 0 {
		fetchTimeout = 30 * time.Second
	}
	return &materializer{
		chain:        chain,
		store:        st,
		httpClient:   httpClient,
		rewriter:     rewriter,
		fetchTimeout: fetchTimeout,
	}
}

// MaterializeMint ensures the minted token's Item row exists and carries
// metadata. For ERC-1155, repeated mints of the same tokenId accumulate
// supply/quantityMinted; metadata already populated with both name and image
// is reused without a re-fetch.
func (m *materializer) MaterializeMint(ctx context.Context, event *domain.TransferEvent, standard domain.TokenStandard, collectionName string) error {
	item, err := m.store.GetItem(ctx, event.TokenID, event.Contract, event.ChainID)
	if err != nil {
		return err
	}

	quantity := event.Quantity
	if standard == domain.StandardERC721 {
		// Non-fungible supply is fixed at 1
		quantity = 1
	}

	if item != nil && item.Name != "" && item.ImageURL != "" {
		// Same tokenId minted again with metadata already materialized
		if standard == domain.StandardERC1155 {
			return m.store.IncrementItemSupply(ctx, event.TokenID, event.Contract, event.ChainID, quantity)
		}
		return nil
	}

	meta, raw := m.fetchMetadata(ctx, event, standard, collectionName)

	var attributesJSON []byte
	if attrs := validAttributes(meta.Attributes); attrs != nil {
		attributesJSON, err = json.Marshal(attrs)
		if err != nil {
			attributesJSON = nil
		}
	}

	var hash *string
	if raw != nil {
		if h, err := canonicalHash(raw); err == nil {
			hash = &h
		}
	}

	if item == nil {
		newItem := schema.Item{
			TokenID:         event.TokenID,
			ContractAddress: event.Contract,
			ChainID:         event.ChainID,
			Name:            meta.Name,
			Description:     meta.Description,
			ImageURL:        meta.Image,
			Supply:          quantity,
			QuantityMinted:  quantity,
			Metadata:        raw,
			Attributes:      attributesJSON,
			MetadataHash:    hash,
		}
		return m.store.CreateItem(ctx, &newItem)
	}

	// Existing row with incomplete metadata: refresh it, unless the document
	// is byte-identical to what we already hold.
	if hash == nil || item.MetadataHash == nil || *item.MetadataHash != *hash {
		err = m.store.UpdateItemMetadata(ctx, item.ID, store.ItemMetadataInput{
			Name:        meta.Name,
			Description: meta.Description,
			ImageURL:    meta.Image,
			Metadata:    raw,
			Attributes:  attributesJSON,
			Hash:        hash,
		})
		if err != nil {
			return err
		}
	}

	if standard == domain.StandardERC1155 {
		return m.store.IncrementItemSupply(ctx, event.TokenID, event.Contract, event.ChainID, quantity)
	}
	return nil
}

// fetchMetadata resolves, fetches, and parses the token's metadata document.
// Every failure degrades to the synthetic name; raw is nil when no document
// was fetched.
func (m *materializer) fetchMetadata(ctx context.Context, event *domain.TransferEvent, standard domain.TokenStandard, collectionName string) (domain.TokenMetadata, []byte) {
	fallback := domain.TokenMetadata{
		Name: fmt.Sprintf("%s-%s", collectionName, event.TokenID),
	}

	metadataURI, err := m.chain.TokenURI(ctx, event.Contract, event.TokenID, standard)
	if err != nil || metadataURI == "" {
		logger.WarnCtx(ctx, "failed to resolve token URI, using synthetic name",
			zap.Error(err),
			zap.String("contract", event.Contract),
			zap.String("tokenID", event.TokenID))
		return fallback, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	defer cancel()

	raw, err := m.httpClient.GetRaw(fetchCtx, m.rewriter.Rewrite(metadataURI))
	if err != nil {
		logger.WarnCtx(ctx, "failed to fetch token metadata, using synthetic name",
			zap.Error(err),
			zap.String("uri", metadataURI),
			zap.String("tokenID", event.TokenID))
		return fallback, nil
	}

	var meta domain.TokenMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		logger.WarnCtx(ctx, "failed to parse token metadata, using synthetic name",
			zap.Error(err),
			zap.String("uri", metadataURI),
			zap.String("tokenID", event.TokenID))
		return fallback, nil
	}

	if meta.Name == "" {
		meta.Name = fallback.Name
	}
	meta.Image = m.rewriter.Rewrite(meta.Image)

	return meta, raw
}

// validAttributes returns the attribute set, or nil when any entry is missing
// a trait name or value. A partially valid set is dropped whole rather than
// stored malformed.
func validAttributes(attrs []domain.TokenAttribute) []domain.TokenAttribute {
	if len(attrs) == 0 {
		return nil
	}
	for _, a := range attrs {
		if !a.Valid() {
			return nil
		}
	}
	return attrs
}

// canonicalHash returns the hex sha256 of the JCS-canonicalized document
func canonicalHash(raw []byte) (string, error) {
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize metadata: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
