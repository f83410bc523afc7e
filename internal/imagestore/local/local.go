package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/homelist/internal/domain"
	"github.com/vbonduro/homelist/internal/imagestore"
)

// Store keeps images as files in a single directory.
type Store struct {
	basePath string
	logger   *slog.Logger
}

func New(basePath string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &Store{basePath: basePath, logger: logger}, nil
}

// Save writes r under a fresh key. The file only appears under its final
// name once fully written.
func (s *Store) Save(ctx context.Context, prefix, mimeType string, r io.Reader) (string, error) {
	if !imagestore.Supported(mimeType) {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrValidation, mimeType)
	}
	if prefix == "" || strings.ContainsAny(prefix, `/\.`) {
		return "", fmt.Errorf("%w: invalid image prefix %q", domain.ErrValidation, prefix)
	}

	key := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), imagestore.Extension(mimeType))

	tmp, err := os.CreateTemp(s.basePath, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	discard := func() {
		if rerr := os.Remove(tmp.Name()); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			s.logger.Error("failed to remove partial upload", "path", tmp.Name(), "error", rerr)
		}
	}

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		discard()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.basePath, key)); err != nil {
		discard()
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	s.logger.Debug("image saved", "key", key, "mime_type", mimeType)
	return key, nil
}

func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("image %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	return f, imagestore.MimeType(strings.ToLower(filepath.Ext(path))), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("image %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// resolve maps key to a path inside basePath. Keys that would escape it,
// or name the staging files, are rejected.
func (s *Store) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, ".") || !filepath.IsLocal(key) || filepath.Base(key) != key {
		return "", fmt.Errorf("%w: invalid image key %q", domain.ErrValidation, key)
	}
	return filepath.Join(s.basePath, key), nil
}
