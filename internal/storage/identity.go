// Package storage persists the node identity across restarts in a small
// TOML state file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

var ErrCorruptState = errors.New("storage: corrupt state file")

type state struct {
	Callsign string `toml:"callsign"`
}

// File is a Store backed by one TOML file.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// LoadIdentity returns the persisted callsign, or "" when no state file
// exists yet (a fresh node).
func (f *File) LoadIdentity() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	var st state
	if err := toml.Unmarshal(data, &st); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorruptState, f.path, err)
	}
	return st.Callsign, nil
}

// SaveIdentity writes the callsign via a temp file and rename, so a crash
// mid-write leaves the previous identity intact.
func (f *File) SaveIdentity(callsign string) error {
	data, err := toml.Marshal(state{Callsign: callsign})
	if err != nil {
		return fmt.Errorf("storage: marshal: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}
