//go:build windows

package store

import "os"

// renameAtomic renames src to dst. os.Rename on Windows fails if dst
// already exists, so the stale destination is removed first; this
// narrows, but does not eliminate, the atomicity window.
func renameAtomic(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	return os.Rename(src, dst)
}

// syncDir is a no-op on Windows; directory fsync has no standard
// equivalent there.
func syncDir(dir string) {}
