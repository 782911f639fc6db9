package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIdentityMissingFileMeansFreshNode(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "identity.toml"))
	cs, err := f.LoadIdentity()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cs != "" {
		t.Fatalf("expected empty identity, got %q", cs)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "identity.toml")
	f := NewFile(path)

	if err := f.SaveIdentity("PU5EPX-11"); err != nil {
		t.Fatalf("save: %v", err)
	}
	cs, err := f.LoadIdentity()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cs != "PU5EPX-11" {
		t.Fatalf("round trip mismatch: %q", cs)
	}

	// Overwrite replaces, not appends.
	if err := f.SaveIdentity("K1ABC"); err != nil {
		t.Fatalf("resave: %v", err)
	}
	cs, err = f.LoadIdentity()
	if err != nil || cs != "K1ABC" {
		t.Fatalf("expected K1ABC, got %q err=%v", cs, err)
	}
}

func TestLoadIdentityCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.toml")
	if err := os.WriteFile(path, []byte("callsign = [not toml"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewFile(path).LoadIdentity(); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}
