package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBlob stores each key as a JSON file inside a data directory.
type FileBlob struct {
	dir string
}

// NewFileBlob creates the data directory if needed and returns a file-backed
// blob store.
func NewFileBlob(dir string) (*FileBlob, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBlob{dir: dir}, nil
}

func (b *FileBlob) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Write goes through a temp file and rename so a crash mid-write never
// leaves a truncated collection behind.
func (b *FileBlob) Write(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (b *FileBlob) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}
