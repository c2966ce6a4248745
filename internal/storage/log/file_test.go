package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFile_AppendReturnsStartOffset(t *testing.T) {
	f := openTemp(t)

	off1, err := f.Append([]byte("aaaa"))
	if err != nil {
		t.Fatalf("Append 1: %v", err)
	}
	off2, err := f.Append([]byte("bb"))
	if err != nil {
		t.Fatalf("Append 2: %v", err)
	}

	if off1 != 0 {
		t.Fatalf("off1 = %d, want 0", off1)
	}
	if off2 != 4 {
		t.Fatalf("off2 = %d, want 4", off2)
	}
	if f.Size() != 6 {
		t.Fatalf("Size = %d, want 6", f.Size())
	}
}

func TestFile_ReadAt(t *testing.T) {
	f := openTemp(t)

	if _, err := f.Append([]byte("hello world")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	buf := make([]byte, 5)
	if _, err := f.ReadAt(buf, 6); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != "world" {
		t.Fatalf("read %q, want %q", buf, "world")
	}
}

func TestFile_ReopenKeepsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kv.log")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := f.Append([]byte("persist")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := f.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f2.Close()

	if f2.Size() != 7 {
		t.Fatalf("Size after reopen = %d, want 7", f2.Size())
	}

	// New appends land after the existing content.
	off, err := f2.Append([]byte("!"))
	if err != nil {
		t.Fatalf("Append after reopen: %v", err)
	}
	if off != 7 {
		t.Fatalf("offset after reopen = %d, want 7", off)
	}
}

func TestFile_Truncate(t *testing.T) {
	f := openTemp(t)

	if _, err := f.Append([]byte("0123456789")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := f.Truncate(4); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	if f.Size() != 4 {
		t.Fatalf("Size = %d, want 4", f.Size())
	}

	off, err := f.Append([]byte("x"))
	if err != nil {
		t.Fatalf("Append after truncate: %v", err)
	}
	if off != 4 {
		t.Fatalf("offset after truncate = %d, want 4", off)
	}
}

func TestFile_Replace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kv.log")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if _, err := f.Append([]byte("old old old")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	tempPath := path + ".compact"
	if err := os.WriteFile(tempPath, []byte("new"), 0600); err != nil {
		t.Fatalf("write temp: %v", err)
	}

	if err := f.Replace(tempPath); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if f.Size() != 3 {
		t.Fatalf("Size after replace = %d, want 3", f.Size())
	}

	buf := make([]byte, 3)
	if _, err := f.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt after replace: %v", err)
	}
	if !bytes.Equal(buf, []byte("new")) {
		t.Fatalf("content = %q, want %q", buf, "new")
	}

	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Fatalf("temp file still present after replace: %v", err)
	}

	// The file keeps accepting appends on the new generation.
	off, err := f.Append([]byte("er"))
	if err != nil {
		t.Fatalf("Append after replace: %v", err)
	}
	if off != 3 {
		t.Fatalf("offset after replace = %d, want 3", off)
	}
}

func openTemp(t *testing.T) *File {
	t.Helper()

	f, err := Open(filepath.Join(t.TempDir(), "kv.log"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}
