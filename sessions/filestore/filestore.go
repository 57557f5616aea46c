// Package filestore keeps session slots on disk, one small JSON file per key.
//
// Writes go to a temporary file in the same directory which is then renamed
// over the slot, so a reader sees either the old record or the new one.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jrsteele09/graphene-portal/internal/errors"
	"github.com/jrsteele09/graphene-portal/sessions"
)

var _ sessions.Storage = (*FileStore)(nil)

const fileExt = ".json"

// keys are device-id/slot, so escape anything a filesystem might object to
var encoder = strings.NewReplacer(
	"/", "!1",
	"\\", "!2",
	"?", "!3",
	"*", "!4",
	":", "!5",
	"\"", "!6",
	"<", "!7",
	">", "!8",
	"!", "!9",
	"|", "!0",
)

type FileStore struct {
	directory string

	// all access goes through this
	lock sync.Mutex
}

// New returns a store rooted at directory, creating it if needed.
func New(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, fmt.Errorf("[filestore New] directory is required")
	}
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, fmt.Errorf("[filestore New] failed to create %s: %w", directory, err)
	}
	return &FileStore{directory: directory}, nil
}

func (fs *FileStore) keyToFile(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", errors.ErrInvalid
	}
	return filepath.Join(fs.directory, encoder.Replace(key)+fileExt), nil
}

func (fs *FileStore) Get(key string) ([]byte, error) {
	filename, err := fs.keyToFile(key)
	if err != nil {
		return nil, err
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[FileStore.Get] %w", err)
	}
	return data, nil
}

func (fs *FileStore) Set(key string, value []byte) error {
	filename, err := fs.keyToFile(key)
	if err != nil {
		return err
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	tmp, err := os.CreateTemp(fs.directory, ".slot-*")
	if err != nil {
		return fmt.Errorf("[FileStore.Set] %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileStore.Set] write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileStore.Set] sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[FileStore.Set] close: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("[FileStore.Set] rename: %w", err)
	}
	return nil
}

func (fs *FileStore) Remove(key string) error {
	filename, err := fs.keyToFile(key)
	if err != nil {
		return err
	}

	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[FileStore.Remove] %w", err)
	}
	return nil
}
