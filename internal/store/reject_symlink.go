package store

import (
	"fmt"
	"os"
)

// rejectSymlink refuses to read through a symlink, so a malicious or
// stray link in the input directory cannot redirect a read outside the
// caller's intended tree.
func rejectSymlink(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("store: lstat %s: %w", path, err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("store: refusing to read symlink %s", path)
	}
	return nil
}
