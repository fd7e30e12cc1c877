package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testFS(t *testing.T) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return f, dir
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFS_MissingDir(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestList_OnlyMarkdownSorted(t *testing.T) {
	f, dir := testFS(t)
	write(t, dir, "b.md", "b")
	write(t, dir, "a.md", "a")
	write(t, dir, "sub/c.md", "c")
	write(t, dir, "ignore.txt", "x")

	metas, err := f.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("len = %d, want 3", len(metas))
	}
	want := []string{"a.md", "b.md", "sub/c.md"}
	for i, w := range want {
		if metas[i].Path != w {
			t.Errorf("metas[%d].Path = %q, want %q", i, metas[i].Path, w)
		}
	}
}

func TestRead(t *testing.T) {
	f, dir := testFS(t)
	write(t, dir, "post.md", "hello")

	data, err := f.Read("post.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
}

func TestRead_TraversalRejected(t *testing.T) {
	f, _ := testFS(t)
	if _, err := f.Read("../outside.md"); err == nil {
		t.Fatal("expected traversal rejection")
	}
	if _, err := f.Read("/etc/passwd"); err == nil {
		t.Fatal("expected absolute path rejection")
	}
}
