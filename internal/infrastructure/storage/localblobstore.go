package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalBlobStore keeps attachment payloads on the local filesystem under a
// base directory. Keys are relative paths; a key is written once and never
// overwritten.
type LocalBlobStore struct {
	basePath string
}

func NewLocalBlobStore(basePath string) (*LocalBlobStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalBlobStore{basePath: basePath}, nil
}

// GenerateKey builds a fresh storage key from the upload time, a random ID
// and the original file extension. The original name itself never reaches
// the filesystem.
func (s *LocalBlobStore) GenerateKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	now := time.Now().UTC()
	return fmt.Sprintf("%s/%s%s", now.Format("2006/01"), uuid.NewString(), ext)
}

func (s *LocalBlobStore) Put(ctx context.Context, key string, data []byte) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

// Get opens the blob for reading. A missing file surfaces as-is so callers
// can detect it with errors.Is(err, fs.ErrNotExist).
func (s *LocalBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// resolve joins the key onto the base path and rejects keys that would
// escape it.
func (s *LocalBlobStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}
	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	base := filepath.Clean(s.basePath) + string(filepath.Separator)
	if !strings.HasPrefix(path, base) {
		return "", fmt.Errorf("storage key %q escapes the base directory", key)
	}
	return path, nil
}
