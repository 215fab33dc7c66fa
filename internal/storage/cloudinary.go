package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tokobagus/pkg/cloudinary"
)

// CloudinaryStore keeps images in a Cloudinary folder. The stored name keeps
// the file extension; the public id is the name without it.
type CloudinaryStore struct {
	client    cloudinary.Client
	cloudName string
	folder    string
}

func NewCloudinaryStore(client cloudinary.Client, cloudName, folder string) *CloudinaryStore {
	return &CloudinaryStore{client: client, cloudName: cloudName, folder: strings.Trim(folder, "/")}
}

func (s *CloudinaryStore) publicID(name string) string {
	id := strings.TrimSuffix(name, filepath.Ext(name))
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

func (s *CloudinaryStore) Save(ctx context.Context, src io.Reader, originalName string) (string, error) {
	name := NewImageName(originalName)
	id := strings.TrimSuffix(name, filepath.Ext(name))
	if _, err := s.client.UploadImage(ctx, src, s.folder, id); err != nil {
		return "", err
	}
	return name, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := s.client.Destroy(ctx, s.publicID(name))
	if errors.Is(err, cloudinary.ErrNotFound) {
		return fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return err
}

func (s *CloudinaryStore) URL(name string) string {
	return cloudinary.BuildOptimizedImageURL(s.cloudName, s.publicID(name), 0)
}
