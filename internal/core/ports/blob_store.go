package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// BlobStore is the external object store binary assets are promoted to.
// Upload consumes a locally staged file and returns a stable locator.
// Delete is by the locator's Ref and is used for compensating rollback;
// callers treat its failures as best-effort.
type BlobStore interface {
	Upload(ctx context.Context, localPath string) (domain.Asset, error)
	Delete(ctx context.Context, ref string) error
}
