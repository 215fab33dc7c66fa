// Package storage holds product image files. Stored images are referenced by a
// bare filename; the backend decides where the bytes live and how they are served.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStore saves and removes product images by filename.
type ImageStore interface {
	// Save stores src under a freshly generated name derived from originalName's extension.
	Save(ctx context.Context, src io.Reader, originalName string) (string, error)
	// Delete removes name. A missing file yields an error matching os.ErrNotExist.
	Delete(ctx context.Context, name string) error
	// URL is where clients fetch name from.
	URL(name string) string
}

var ErrInvalidName = errors.New("invalid image name")

// NewImageName builds "image-<unix ms>-<random><ext>" with the extension lowercased.
func NewImageName(originalName string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	ext := strings.ToLower(filepath.Ext(strings.ReplaceAll(originalName, `\`, "/")))
	return fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// validName rejects anything that could escape the store's namespace.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
