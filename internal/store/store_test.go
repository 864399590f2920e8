package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteCreatesIntermediateDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.srt")

	s := FileStore{}
	if err := s.Write(context.Background(), path, "hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestFileStoreExistsAndStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.srt")
	s := FileStore{}
	if s.Exists(path) {
		t.Fatal("Exists true before write")
	}
	if err := s.Write(context.Background(), path, "content"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !s.Exists(path) {
		t.Fatal("Exists false after write")
	}
	info, err := s.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.SizeBytes != int64(len("content")) {
		t.Errorf("SizeBytes = %d, want %d", info.SizeBytes, len("content"))
	}
}

func TestFileStoreRejectsSymlinkRead(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.srt")
	if err := os.WriteFile(target, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	link := filepath.Join(dir, "link.srt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	s := FileStore{}
	if _, err := s.Read(context.Background(), link); err == nil {
		t.Fatal("expected error reading through symlink")
	}
}

func TestFileStoreReadMissing(t *testing.T) {
	s := FileStore{}
	if _, err := s.Read(context.Background(), filepath.Join(t.TempDir(), "missing.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
