package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// stageFormFile copies one multipart form file into the staging directory and
// returns its local path. The staged copy is transient: the upload
// coordinator removes it once the upload attempt concludes.
//
// A missing field returns ("", nil) so callers can treat optional assets
// uniformly; required-asset enforcement belongs to the coordinator.
func stageFormFile(c echo.Context, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("read form file %s: %w", field, err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open form file %s: %w", field, err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	// Randomized name so concurrent requests uploading the same filename
	// never collide.
	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("stage form file %s: %w", field, err)
	}

	return path, nil
}
