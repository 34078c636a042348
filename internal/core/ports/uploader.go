package ports

import (
	"context"

	"github.com/vidtube/platform/internal/core/domain"
)

// AssetInput names one locally staged file awaiting promotion to the blob
// store. Optional inputs with an empty LocalPath are skipped.
type AssetInput struct {
	Name      string
	LocalPath string
	Required  bool
}

// PersistFunc persists the final record once every asset has a locator,
// keyed by AssetInput.Name. Returning an error triggers compensation.
type PersistFunc func(ctx context.Context, assets map[string]domain.Asset) error

// Uploader makes "upload N assets, then persist one record referencing them"
// appear atomic: on any failure, every blob uploaded within the call is
// deleted again before the error is returned.
type Uploader interface {
	CreateWithAssets(ctx context.Context, inputs []AssetInput, persist PersistFunc) error
}
