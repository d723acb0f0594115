package jobs

import (
	"context"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// Handler processes work items independent of the delivery transport. The
// transport (NATS JetStream, or anything else wired in its place) owns
// delivery, redelivery, and acknowledgement; the handler owns the import
// itself plus the lifecycle hooks the transport raises around it.
//
// The transport must serialize deliveries per (Contract, ChainID): two
// concurrent imports of the same contract would race each other's
// checkpoints and slug allocation.
//
//go:generate mockgen -source=handler.go -destination=../mocks/handler.go -package=mocks -mock_names=Handler=MockHandler
type Handler interface {
	// Handle runs one import attempt end to end. The returned result is
	// always non-nil; a failed attempt carries the error string. attemptID
	// is fresh per delivery and only correlates logs and results.
	Handle(ctx context.Context, item *domain.WorkItem, attemptID string) *domain.JobResult

	// OnResumed is raised when a previously delivered item is delivered
	// again, typically after a worker crash. The import resumes from its
	// persisted checkpoint.
	OnResumed(ctx context.Context, item *domain.WorkItem, attempt uint64)

	// OnStalled is raised when an in-flight attempt exceeded the stall
	// window and the transport reclaimed the item.
	OnStalled(ctx context.Context, item *domain.WorkItem)

	// OnFailed is raised when an item will not be delivered again, either
	// because the failure is terminal or redeliveries are exhausted.
	OnFailed(ctx context.Context, item *domain.WorkItem, err error)
}
