package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tokobagus/internal/metrics"
	"tokobagus/internal/models"
	"tokobagus/internal/storage"

	"github.com/sirupsen/logrus"
)

// Stage markers wrapped around the underlying error so callers can tell which
// step of a write failed.
var (
	ErrFetch      = errors.New("fetch product")
	ErrStoreImage = errors.New("store image")
)

type ProductStore interface {
	ImageOf(id uint) (*string, error)
	Create(p *models.Product) error
	Update(id uint, f models.ProductFields, image *string) error
	Delete(id uint) error
}

// ImageUpload is a validated image file taken from a request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductService performs product writes. Image files are cleaned up only after
// the row write has succeeded, and cleanup failures never fail the request: a
// crash in between leaves an orphaned file, which is tolerated.
type ProductService struct {
	repo   ProductStore
	images storage.ImageStore
	log    logrus.FieldLogger
}

func NewProductService(repo ProductStore, images storage.ImageStore, log logrus.FieldLogger) *ProductService {
	return &ProductService{repo: repo, images: images, log: log}
}

func (s *ProductService) Create(ctx context.Context, f models.ProductFields, upload *ImageUpload) (*models.Product, error) {
	p := &models.Product{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Stock:       f.Stock,
		Category:    f.Category,
	}
	if upload != nil {
		name, err := s.images.Save(ctx, upload.Content, upload.Filename)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreImage, err)
		}
		p.Image = &name
	}
	if err := s.repo.Create(p); err != nil {
		if p.Image != nil {
			s.discard(ctx, *p.Image, "unsaved upload")
		}
		return nil, err
	}
	return p, nil
}

// Update rewrites a product. Without an upload the stored image is kept; with
// one, the previous image is deleted once the row points at the new file.
func (s *ProductService) Update(ctx context.Context, id uint, f models.ProductFields, upload *ImageUpload) error {
	if upload == nil {
		return s.repo.Update(id, f, nil)
	}
	old, err := s.repo.ImageOf(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	name, err := s.images.Save(ctx, upload.Content, upload.Filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreImage, err)
	}
	if err := s.repo.Update(id, f, &name); err != nil {
		s.discard(ctx, name, "unsaved upload")
		return err
	}
	if old != nil && *old != "" && *old != name {
		s.discard(ctx, *old, "replaced image")
	}
	return nil
}

// Delete removes the row, then its image file.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	img, err := s.repo.ImageOf(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if img != nil && *img != "" {
		s.discard(ctx, *img, "product image")
	}
	return nil
}

// discard deletes an image file. A missing file is ignored; other failures are
// logged and otherwise dropped.
func (s *ProductService) discard(ctx context.Context, name, what string) {
	err := s.images.Delete(context.WithoutCancel(ctx), name)
	switch {
	case err == nil:
		metrics.RecordImageCleanup(metrics.CleanupDeleted)
	case errors.Is(err, os.ErrNotExist):
		metrics.RecordImageCleanup(metrics.CleanupMissing)
	default:
		metrics.RecordImageCleanup(metrics.CleanupFailed)
		s.log.WithError(err).WithField("image", name).Warnf("failed to delete %s", what)
	}
}
