package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/config"
	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
	"github.com/mosaicmarket/collection-indexer/internal/messaging"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	contract   = flag.String("contract", "", "Token contract address to index")
	chainID    = flag.Int64("chain", 0, "Chain ID (defaults to the configured chain)")
	categoryID = flag.Int64("category", 0, "Marketplace category ID for the collection")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEnqueueConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "collection-indexer-enqueue",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	if !common.IsHexAddress(*contract) {
		logger.Fatal("Invalid contract address", zap.String("contract", *contract))
	}

	chain := *chainID
	if chain == 0 {
		chain = cfg.Ethereum.ChainID
	}

	// Initialize NATS publisher
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()
	publisher, err := messaging.NewPublisher(&cfg.NATS, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	if err := publisher.EnsureStream(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to ensure job stream", zap.Error(err), zap.String("stream", cfg.NATS.StreamName))
	}

	item := &domain.WorkItem{
		ID:         ulid.Make().String(),
		Contract:   common.HexToAddress(*contract).Hex(),
		ChainID:    chain,
		CategoryID: *categoryID,
	}

	if err := publisher.PublishWorkItem(ctx, item); err != nil {
		logger.FatalCtx(ctx, "Failed to publish work item", zap.Error(err), zap.String("contract", item.Contract))
	}

	logger.Info("Work item enqueued",
		zap.String("workItemID", item.ID),
		zap.String("contract", item.Contract),
		zap.Int64("chainID", item.ChainID))
}
