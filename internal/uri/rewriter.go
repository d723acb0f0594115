package uri

import (
	"strings"

	"github.com/mosaicmarket/collection-indexer/internal/domain"
)

// Rewriter normalizes metadata URIs into fetchable HTTP URLs.
type Rewriter struct {
	ipfsGateway string
}

// NewRewriter creates a rewriter for the configured IPFS gateway
func NewRewriter(ipfsGateway string) *Rewriter {
	if ipfsGateway == "" {
		ipfsGateway = domain.DEFAULT_IPFS_GATEWAY
	}
	return &Rewriter{ipfsGateway: strings.TrimRight(ipfsGateway, "/")}
}

// Rewrite resolves an ipfs://-scheme URI (or a foreign-gateway /ipfs/ URL)
// through the configured gateway. Plain http(s) URIs pass through unchanged.
func (r *Rewriter) Rewrite(uri string) string {
	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		cid = strings.TrimPrefix(cid, "ipfs/") // ipfs://ipfs/<cid> appears in the wild
		return r.ipfsGateway + "/ipfs/" + cid
	}

	// Re-route foreign gateway URLs through ours
	if idx := strings.Index(uri, "/ipfs/"); idx >= 0 && (strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")) {
		return r.ipfsGateway + uri[idx:]
	}

	return uri
}
