package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/config"
	"github.com/mosaicmarket/collection-indexer/internal/ethereum"
	"github.com/mosaicmarket/collection-indexer/internal/importer"
	"github.com/mosaicmarket/collection-indexer/internal/items"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
	"github.com/mosaicmarket/collection-indexer/internal/messaging"
	"github.com/mosaicmarket/collection-indexer/internal/scan"
	"github.com/mosaicmarket/collection-indexer/internal/store"
	"github.com/mosaicmarket/collection-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "collection-indexer-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Collection Indexer Worker")

	// Connect to database
	db, err := store.NewDB(&cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db, cfg.Indexer.StatementTimeout)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()
	httpClient := adapter.NewHTTPClient(cfg.Metadata.FetchTimeout)

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	chainClient := ethereum.NewClient(cfg.Ethereum.ChainID, adapterEthClient, clockAdapter)
	defer chainClient.Close()

	// Assemble the import pipeline
	rewriter := uri.NewRewriter(cfg.Metadata.IPFSGateway)
	materializer := items.NewMaterializer(chainClient, dataStore, httpClient, rewriter, cfg.Metadata.FetchTimeout)
	scanner := scan.NewScanner(chainClient, dataStore, materializer, cfg.Indexer.ChunkSize, cfg.Indexer.EventRetries)
	handler := importer.New(chainClient, dataStore, scanner, cfg.Ethereum.StartBlock)

	// Initialize work item consumer
	consumer, err := messaging.NewConsumer(&cfg.NATS, cfg.Indexer.PoolSize, natsJS, jsonAdapter, clockAdapter, handler)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create work item consumer", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer consumer.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for consumer errors
	errCh := make(chan error, 1)

	// Start the consumer
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "consumer"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Collection Indexer Worker stopped")
}
