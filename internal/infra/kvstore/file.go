// Package kvstore provides key-value byte stores backing the repositories:
// a file-per-key store for the CLI and TUI, and an in-memory store for tests.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/runoshun/timeflow/internal/domain"
)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("invalid key")

// File implements domain.KVStore with one JSON file per key under a directory.
// Reads take a shared flock on "<key>.json.lock", writes an exclusive one, so
// concurrent processes (a TUI and a CLI command) never observe a torn value.
type File struct {
	dir string
}

// NewFile creates a File store rooted at dir.
// The directory does not need to exist; it will be created on first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Dir returns the directory holding the store files.
func (s *File) Dir() string {
	return s.dir
}

// Path returns the file path used for key.
func (s *File) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the value stored under key.
func (s *File) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, &domain.StorageError{Op: "read", Key: key, Err: err}
	}
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, false, nil
	}

	var value []byte
	found := false
	err := s.withLock(key, syscall.LOCK_SH, func() error {
		content, err := os.ReadFile(s.Path(key))
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("read store file: %w", err)
		}
		value, found = content, true
		return nil
	})
	if err != nil {
		return nil, false, &domain.StorageError{Op: "read", Key: key, Err: err}
	}
	return value, found, nil
}

// Set replaces the value stored under key.
func (s *File) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return &domain.StorageError{Op: "write", Key: key, Err: err}
	}
	err := s.withLock(key, syscall.LOCK_EX, func() error {
		return s.write(s.Path(key), value)
	})
	if err != nil {
		return &domain.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (s *File) withLock(key string, lockType int, fn func() error) error {
	lock, err := s.acquireLock(s.Path(key)+".lock", lockType)
	if err != nil {
		return err
	}
	defer releaseLock(lock)
	return fn()
}

func (s *File) acquireLock(lockPath string, lockType int) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *File) write(path string, content []byte) error {
	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Ensure File implements KVStore.
var _ domain.KVStore = (*File)(nil)
