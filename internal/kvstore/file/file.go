package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vbonduro/imagestore/internal/kvstore"
)

const valueExt = ".dat"

var errInvalidKey = errors.New("invalid key")

// FileStore keeps one file per key under basePath.
type FileStore struct {
	basePath string
}

func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Put writes value to a temporary file and renames it into place, so
// concurrent readers see either the old or the new value.
func (s *FileStore) Put(ctx context.Context, key, value string) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.basePath, ".put-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.WriteString(value); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(tmpPath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(tmpPath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		if rerr := os.Remove(tmpPath); rerr != nil {
			slog.Error("failed to remove file after rename error", "error", rerr)
		}
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

// Get reports kvstore.ErrNotFound for keys Put would refuse, since no value
// can ever exist under them.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		if errors.Is(err, errInvalidKey) {
			return "", kvstore.ErrNotFound
		}
		return "", err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, syscall.ENAMETOOLONG) {
			return "", kvstore.ErrNotFound
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func (s *FileStore) Close() error {
	return nil
}

// safeJoin maps key to a file directly inside basePath and rejects keys that
// would resolve anywhere else.
func (s *FileStore) safeJoin(key string) (string, error) {
	// Dot-prefixed names are reserved for in-flight temp files.
	if key == "" || strings.HasPrefix(key, ".") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w %q", errInvalidKey, key)
	}

	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key+valueExt))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if filepath.Dir(absPath) != absBase {
		return "", fmt.Errorf("%w %q: path traversal attempt", errInvalidKey, key)
	}
	return absPath, nil
}
