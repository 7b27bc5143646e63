package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscoverFirstMatch(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.db")
	if err := os.WriteFile(second, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Discover([]string{
		filepath.Join(dir, "missing.db"),
		second,
		filepath.Join(dir, "third.db"),
	})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != second {
		t.Errorf("got %q, want %q", got, second)
	}
}

func TestDiscoverSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "data.db")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	real := filepath.Join(dir, "real.db")
	if err := os.WriteFile(real, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Discover([]string{sub, real})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != real {
		t.Errorf("got %q, want %q", got, real)
	}
}

func TestDiscoverErrorNamesCandidates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.db")
	b := filepath.Join(dir, "b.db")

	_, err := Discover([]string{a, b})
	if err == nil {
		t.Fatal("expected error when nothing exists")
	}
	if !strings.Contains(err.Error(), a) || !strings.Contains(err.Error(), b) {
		t.Errorf("error %q should name every searched path", err)
	}
}

func TestDiscoverEmptyCandidates(t *testing.T) {
	if _, err := Discover(nil); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}
