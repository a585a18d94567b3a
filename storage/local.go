package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes uploads to a directory served by the fiber static
// handler. Used in development and as the fallback when no remote storage
// endpoint is configured.
type LocalStore struct {
	baseDir string
	baseURL string
}

func NewLocalStore(baseDir, baseURL string) *LocalStore {
	return &LocalStore{baseDir: baseDir, baseURL: baseURL}
}

func (s *LocalStore) Upload(data []byte, opts UploadOptions) (string, error) {
	dir := filepath.Join(s.baseDir, opts.Folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, opts.PublicID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, opts.Folder, opts.PublicID), nil
}
