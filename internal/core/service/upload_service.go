package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidtube/platform/internal/api/metrics"
	"github.com/vidtube/platform/internal/core/domain"
	"github.com/vidtube/platform/internal/core/ports"
)

const rollbackTimeout = 30 * time.Second

// UploadService coordinates multi-asset uploads with record creation as one
// logical transaction. The blob store and the database share no transaction,
// so atomicity is simulated with compensating deletes: a saga of forward
// steps whose compensations are unwound in reverse on the first failure.
type UploadService struct {
	blobs ports.BlobStore
	log   zerolog.Logger
}

func NewUploadService(blobs ports.BlobStore, log zerolog.Logger) *UploadService {
	return &UploadService{blobs: blobs, log: log}
}

// CreateWithAssets uploads every staged asset and then calls persist with the
// resulting locators, keyed by input name. On any failure every blob uploaded
// within this call is deleted again before the error returns; locally staged
// files are removed unconditionally, success or failure.
func (s *UploadService) CreateWithAssets(ctx context.Context, inputs []ports.AssetInput, persist ports.PersistFunc) error {
	// 1. Fail a doomed request before any upload happens.
	for _, in := range inputs {
		if in.Required && in.LocalPath == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingAsset, in.Name)
		}
	}

	// Staged files are transient by contract: whatever happens below, none
	// of them survives the request.
	defer s.discardStaged(inputs)

	// 2. Upload sequentially, accumulating a compensation per promoted blob.
	var saga compensationStack
	assets := make(map[string]domain.Asset, len(inputs))
	for _, in := range inputs {
		if in.LocalPath == "" {
			continue // optional asset not provided
		}
		if err := ctx.Err(); err != nil {
			// Abandoned request: already-promoted blobs must not be orphaned.
			s.rollback(saga)
			return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}

		asset, err := s.blobs.Upload(ctx, in.LocalPath)
		if err != nil {
			s.rollback(saga)
			metrics.UploadsTotal.WithLabelValues(in.Name, "failure").Inc()
			return fmt.Errorf("%w: upload %s: %v", domain.ErrUploadFailed, in.Name, err)
		}

		metrics.UploadsTotal.WithLabelValues(in.Name, "success").Inc()
		assets[in.Name] = asset
		saga = append(saga, compensation{name: in.Name, ref: asset.Ref})
	}

	// 3. Persist the record; compensate every upload if that fails.
	if err := persist(ctx, assets); err != nil {
		s.rollback(saga)
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	return nil
}

// compensation undoes one completed upload step.
type compensation struct {
	name string
	ref  string
}

type compensationStack []compensation

// rollback deletes promoted blobs in reverse order. Failures are logged and
// absorbed: a failed compensating delete must never mask the original error.
// A detached context is used so a cancelled request still gets cleaned up.
func (s *UploadService) rollback(saga compensationStack) {
	if len(saga) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), rollbackTimeout)
	defer cancel()

	for i := len(saga) - 1; i >= 0; i-- {
		step := saga[i]
		metrics.UploadRollbacksTotal.WithLabelValues(step.name).Inc()
		if err := s.blobs.Delete(ctx, step.ref); err != nil {
			s.log.Error().Err(err).Str("asset", step.name).Str("ref", step.ref).Msg("compensating delete failed, blob may be orphaned")
			continue
		}
		s.log.Info().Str("asset", step.name).Str("ref", step.ref).Msg("uploaded asset rolled back")
	}
}

// discardStaged removes local temp copies regardless of transaction outcome,
// bounding temp-dir usage.
func (s *UploadService) discardStaged(inputs []ports.AssetInput) {
	for _, in := range inputs {
		if in.LocalPath == "" {
			continue
		}
		if err := os.Remove(in.LocalPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", in.LocalPath).Msg("failed to remove staged file")
		}
	}
}
