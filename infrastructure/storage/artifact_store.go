package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"qadash/logging"
)

// ArtifactStore persists generated report files. The dashboard only needs a
// bucket-shaped surface: save, open, existence check, delete.
type ArtifactStore interface {
	// Save writes the artifact and returns its storage path and size.
	Save(clientID int64, fileName string, content io.Reader) (path string, size int64, err error)

	// Open returns a reader over a stored artifact.
	Open(path string) (io.ReadCloser, error)

	// Exists reports whether the artifact is present, with its size.
	Exists(path string) (bool, int64, error)

	// Delete removes a stored artifact. Missing artifacts are not an error.
	Delete(path string) error
}

// FileStore is a local-disk ArtifactStore, one directory per client.
type FileStore struct {
	root   string
	logger *logging.Logger
}

// NewFileStore creates the store root if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact root: %w", err)
	}
	return &FileStore{
		root:   root,
		logger: logging.Default().WithComponent("file_store"),
	}, nil
}

// Save writes the artifact and returns its storage path and size.
func (s *FileStore) Save(clientID int64, fileName string, content io.Reader) (string, int64, error) {
	dir := filepath.Join(s.root, strconv.FormatInt(clientID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create client directory: %w", err)
	}

	// Strip any path components from untrusted names
	path := filepath.Join(dir, filepath.Base(fileName))
	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create artifact: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, content)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write artifact: %w", err)
	}

	s.logger.Debug("Artifact saved", "path", path, "size", size)
	return path, size, nil
}

// Open returns a reader over a stored artifact.
func (s *FileStore) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return file, nil
}

// Exists reports whether the artifact is present, with its size.
func (s *FileStore) Exists(path string) (bool, int64, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to stat artifact: %w", err)
	}
	return true, info.Size(), nil
}

// Delete removes a stored artifact. Missing artifacts are not an error.
func (s *FileStore) Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}
