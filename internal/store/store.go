// Package store provides a filesystem-backed reference implementation of
// the pipeline's TextStore collaborator.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Info mirrors the stat() shape from spec §6.
type Info struct {
	Path      string
	Name      string
	Extension string
	SizeBytes int64
	ModTime   time.Time
}

// FileStore implements pipeline.TextStore over the local filesystem.
// Writes are atomic: content is written to a uniquely-named temp file in
// the destination directory, fsynced, then renamed into place.
type FileStore struct{}

// Read decodes path as UTF-8 text. BOM stripping is the parser's
// responsibility, not this collaborator's.
func (FileStore) Read(_ context.Context, path string) (string, error) {
	if err := rejectSymlink(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("store: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write atomically writes content to path, creating intermediate
// directories as needed.
func (FileStore) Write(_ context.Context, path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	defer os.Remove(tmp)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("store: fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}

	if err := renameAtomic(tmp, path); err != nil {
		return fmt.Errorf("store: rename into place: %w", err)
	}
	syncDir(dir)
	return nil
}

// Exists reports whether path refers to an existing file.
func (FileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns file metadata for path.
func (FileStore) Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("store: stat %s: %w", path, err)
	}
	return Info{
		Path:      path,
		Name:      fi.Name(),
		Extension: filepath.Ext(path),
		SizeBytes: fi.Size(),
		ModTime:   fi.ModTime(),
	}, nil
}
