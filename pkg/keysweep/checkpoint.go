package keysweep

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// CheckpointStore persists the scan cursor: the count of keys already
// processed relative to the start of the range. The scanner saves it only
// after a batch is fully accounted for, so a crash mid-batch replays that
// batch on resume (at-least-once, never at-most-once).
type CheckpointStore interface {
	// Load returns the saved cursor, or zero when no checkpoint exists.
	Load() (*big.Int, error)

	// Save durably replaces the cursor with count.
	Save(count *big.Int) error
}

// FileCheckpoint stores the cursor as a single decimal text record. Saves
// are atomic (temp file + rename), so an interrupted save leaves the
// previous cursor intact for resume.
type FileCheckpoint struct {
	path string
}

// NewFileCheckpoint creates a checkpoint store backed by the given file.
func NewFileCheckpoint(path string) *FileCheckpoint {
	return &FileCheckpoint{path: path}
}

// Load implements the CheckpointStore interface.
func (c *FileCheckpoint) Load() (*big.Int, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return new(big.Int), nil
	}

	count, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("corrupt checkpoint %s: %q is not a decimal count", c.path, text)
	}
	return count, nil
}

// Save implements the CheckpointStore interface.
func (c *FileCheckpoint) Save(count *big.Int) error {
	dir := filepath.Dir(c.path)

	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("failed to create checkpoint temp file: %w", err)
	}

	if _, err := tmp.WriteString(count.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close checkpoint temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// memoryCheckpoint keeps the cursor in memory only; used when no checkpoint
// path is configured.
type memoryCheckpoint struct {
	count big.Int
}

func (c *memoryCheckpoint) Load() (*big.Int, error) {
	return new(big.Int).Set(&c.count), nil
}

func (c *memoryCheckpoint) Save(count *big.Int) error {
	c.count.Set(count)
	return nil
}
