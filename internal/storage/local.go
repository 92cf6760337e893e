// Package storage stores uploaded photos. The local implementation writes
// under a base directory that the HTTP layer serves statically; paths are
// namespaced by entity type, user and date, so no content addressing is
// needed.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	baseDir string
	baseURL string
}

func NewLocalStore(baseDir string, baseURL string) *LocalStore {
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload writes the bytes under the given relative path and returns the URL
// they will be served from. Parent directories are created as needed.
func (store *LocalStore) Upload(path string, data []byte) (string, error) {
	cleaned := filepath.Clean(strings.TrimLeft(path, "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid object path %q", path)
	}

	fullPath := filepath.Join(store.baseDir, cleaned)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", cleaned, err)
	}

	return store.baseURL + "/" + filepath.ToSlash(cleaned), nil
}
