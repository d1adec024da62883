package clients

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetURL_AbsoluteAndRelative(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := NewLocalStorage(tmpDir, "/files", "http://example.com:7070/")
	if err != nil {
		t.Fatalf("failed create storage: %v", err)
	}

	got := c.GetURL("a.xlsx")
	want := "http://example.com:7070/files/a.xlsx"
	if got != want {
		t.Fatalf("expected %s; got %s", want, got)
	}

	c2, _ := NewLocalStorage(tmpDir, "files", "")
	if got2 := c2.GetURL("b.xlsx"); got2 != "/files/b.xlsx" {
		t.Fatalf("expected /files/b.xlsx; got %s", got2)
	}
}

func TestStoreAndOpen(t *testing.T) {
	c, err := NewLocalStorage(t.TempDir(), "/files", "")
	if err != nil {
		t.Fatalf("storage init: %v", err)
	}

	content := []byte("hello world")
	url, err := c.Store(context.Background(), "../inventory 1.xlsx", content)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasPrefix(url, "/files/") || !strings.HasSuffix(url, "_inventory 1.xlsx") {
		t.Fatalf("unexpected url %s", url)
	}

	stored := strings.TrimPrefix(url, "/files/")
	if OriginalName(stored) != "inventory 1.xlsx" {
		t.Fatalf("expected original name, got %s", OriginalName(stored))
	}

	path, err := c.Open(stored)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := os.ReadFile(path)
	if string(body) != string(content) {
		t.Fatalf("content mismatch: %s", string(body))
	}
}

func TestOpen_RejectsTraversal(t *testing.T) {
	c, _ := NewLocalStorage(t.TempDir(), "/files", "")

	for _, name := range []string{"", "../secret", "a/b", ".hidden", "missing.xlsx"} {
		if _, err := c.Open(name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open(%q): expected not-exist, got %v", name, err)
		}
	}
}

func TestCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewLocalStorage(dir, "/files", "")

	oldFile := filepath.Join(dir, "old.xlsx")
	newFile := filepath.Join(dir, "new.xlsx")
	_ = os.WriteFile(oldFile, []byte("x"), 0o644)
	_ = os.WriteFile(newFile, []byte("x"), 0o644)
	past := time.Now().Add(-2 * time.Hour)
	_ = os.Chtimes(oldFile, past, past)

	if err := c.CleanupOlderThan(time.Hour); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Fatalf("expected old file removed")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Fatalf("expected new file kept: %v", err)
	}
}
