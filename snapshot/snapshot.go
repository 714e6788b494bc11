// Package snapshot manages the ".origin" copies of GRD and GRDP files.
//
// A snapshot is taken right before a manifest or part file is rewritten and
// serves as the "before" side when translation ids are reconciled. It is
// removed once reconciliation for its manifest has succeeded.
package snapshot

import (
	"fmt"
	"io"
	"os"
)

// Suffix is appended to a file's path to name its snapshot.
const Suffix = ".origin"

// Path returns the snapshot path for file.
func Path(file string) string {
	return file + Suffix
}

// Exists reports whether file has a snapshot.
func Exists(file string) bool {
	info, err := os.Stat(Path(file))
	return err == nil && info.Mode().IsRegular()
}

// Take copies file to its snapshot path, replacing any stale snapshot.
func Take(file string) error {
	return Copy(file, Path(file))
}

// Remove deletes the snapshot of each file. Missing snapshots are ignored.
func Remove(files ...string) error {
	for _, f := range files {
		if err := os.Remove(Path(f)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", Path(f), err)
		}
	}
	return nil
}

// Copy copies src to dst, preserving src's permission bits.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
