package statestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/dockwork/pkg/debug"
	"github.com/vanderheijden86/dockwork/pkg/layout"
)

// ErrNotFound is returned when no snapshot exists at the requested location.
var ErrNotFound = errors.New("no saved layout")

// SaveFile atomically writes the snapshot to path: the bytes land in a temp
// file in the same directory first, then replace the target with a rename,
// so the watcher never observes a half-written snapshot.
func SaveFile(path string, s *layout.LayoutState) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create layout directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".layout-*.json")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("cannot write layout snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cannot close layout snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cannot replace layout snapshot: %w", err)
	}
	debug.Log("statestore: saved %d bytes to %s", len(data), path)
	return nil
}

// LoadFile reads the snapshot at path. A missing file is ErrNotFound so
// callers can fall back to the welcome layout without special-casing.
func LoadFile(path string) (*layout.LayoutState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot read layout snapshot: %w", err)
	}
	return Decode(data)
}
