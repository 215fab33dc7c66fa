package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore keeps images in a directory that the router serves statically.
type LocalStore struct {
	dir        string
	publicPath string
}

func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, publicPath: publicPath}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(_ context.Context, src io.Reader, originalName string) (string, error) {
	name := NewImageName(originalName)
	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}
	return name, nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.dir, name))
}

func (s *LocalStore) URL(name string) string {
	return path.Join(s.publicPath, name)
}
