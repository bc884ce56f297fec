package discover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rhizome-lab/moss/internal/lang"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverBasic(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.go"), "package main\n")
	write(t, filepath.Join(dir, "app.py"), "def main(): pass\n")
	write(t, filepath.Join(dir, "README.md"), "# readme\n")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	for _, f := range files {
		if f.Path == "" || f.RelPath == "" || f.Language == "" {
			t.Errorf("incomplete FileInfo: %+v", f)
		}
	}
}

func TestDiscoverSkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "src", "lib.rs"), "fn main() {}\n")
	write(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "x\n")
	write(t, filepath.Join(dir, ".git", "hook.py"), "x\n")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "src/lib.rs" {
		t.Fatalf("expected only src/lib.rs, got %+v", files)
	}
}

func TestDiscoverMossignore(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, ".mossignore"), "# comment\ngenerated\n")
	write(t, filepath.Join(dir, "generated", "gen.go"), "package gen\n")
	write(t, filepath.Join(dir, "main.go"), "package main\n")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "main.go" {
		t.Fatalf("expected only main.go, got %+v", files)
	}
}

func TestDiscoverCancellation(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.go"), "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // pre-cancel

	_, err := Discover(ctx, dir, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGroupByLanguage(t *testing.T) {
	files := []FileInfo{
		{RelPath: "a.go", Language: lang.Go},
		{RelPath: "b.rs", Language: lang.Rust},
		{RelPath: "c.go", Language: lang.Go},
	}
	groups, order := GroupByLanguage(files)

	if len(order) != 2 || order[0] != lang.Go || order[1] != lang.Rust {
		t.Fatalf("unexpected language order: %v", order)
	}
	if len(groups[lang.Go]) != 2 || groups[lang.Go][1].RelPath != "c.go" {
		t.Fatalf("go group out of order: %+v", groups[lang.Go])
	}
}
