package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTakeAndRemove(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.grd")
	if err := os.WriteFile(file, []byte("before"), 0644); err != nil {
		t.Fatal(err)
	}

	if Exists(file) {
		t.Fatal("snapshot exists before Take")
	}
	if err := Take(file); err != nil {
		t.Fatalf("Take: %v", err)
	}
	if !Exists(file) {
		t.Fatal("snapshot missing after Take")
	}

	// Rewriting the file must not affect the snapshot.
	if err := os.WriteFile(file, []byte("after"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(Path(file))
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != "before" {
		t.Errorf("snapshot = %q, want %q", data, "before")
	}

	if err := Remove(file, filepath.Join(dir, "never-snapshotted.grdp")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if Exists(file) {
		t.Error("snapshot still exists after Remove")
	}
}

func TestTake_ReplacesStaleSnapshot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "part.grdp")
	if err := os.WriteFile(Path(file), []byte("stale stale stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("fresh"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Take(file); err != nil {
		t.Fatalf("Take: %v", err)
	}
	data, _ := os.ReadFile(Path(file))
	if string(data) != "fresh" {
		t.Errorf("snapshot = %q, want %q", data, "fresh")
	}
}

func TestTake_MissingFile(t *testing.T) {
	if err := Take(filepath.Join(t.TempDir(), "missing.grd")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPath(t *testing.T) {
	if got := Path("a/b.grd"); got != "a/b.grd.origin" {
		t.Errorf("Path = %q", got)
	}
}
