package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"intake-backend/internal/shared/storage/object"
	"intake-backend/internal/shared/util"
)

// Store implements object.Backend on the local filesystem. Each namespace is
// a directory under baseDir.
type Store struct {
	baseDir string
}

// New creates a new local store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Factory adapts New to object.Factory.
func Factory(ctx context.Context, cfg object.Config) (object.Backend, error) {
	return New(cfg.LocalDir), nil
}

// CreateNamespace creates the namespace directory.
func (s *Store) CreateNamespace(ctx context.Context, name string) (object.Namespace, error) {
	if err := ctx.Err(); err != nil {
		return object.Namespace{}, err
	}

	dir, err := s.resolve(name)
	if err != nil {
		return object.Namespace{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return object.Namespace{}, fmt.Errorf("mkdir: %w", err)
	}
	return object.Namespace{Name: name, ID: dir}, nil
}

// Upload writes r to {namespace}/{name}. contentType is not persisted.
func (s *Store) Upload(ctx context.Context, ns object.Namespace, name string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fileName, err := util.SanitizeFileName(name)
	if err != nil {
		return fmt.Errorf("sanitize file name: %w", err)
	}

	fullPath := filepath.Join(ns.ID, fileName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	_ = contentType
	return nil
}

func (s *Store) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) || strings.ContainsAny(clean, `/\`) {
		return "", fmt.Errorf("invalid namespace %q", name)
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.Backend = (*Store)(nil)
