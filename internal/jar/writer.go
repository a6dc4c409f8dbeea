package jar

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// writeAtomic produces dst through a temporary file in the same directory and
// renames it into place only after fn succeeded. On failure dst is untouched.
func writeAtomic(dst string, fn func(w io.Writer) error) error {
	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, ".jvmch-*.tmp")
	if err != nil {
		return &ArchiveIOError{Op: "create", Path: dst, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &ArchiveIOError{Op: op, Path: dst, Err: err}
	}

	if err := fn(tmp); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ArchiveIOError{Op: "close", Path: dst, Err: err}
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return &ArchiveIOError{Op: "rename", Path: dst, Err: err}
	}
	return nil
}

// writeBytes copies raw bytes to dst atomically
func writeBytes(dst string, data []byte) error {
	return writeAtomic(dst, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeManifest adds the manifest entry, deflated, stamped with modified
func writeManifest(zw *zip.Writer, m *Manifest, modified time.Time) error {
	h := &zip.FileHeader{Name: ManifestPath, Method: zip.Deflate}
	h.SetMode(0o644)
	h.Modified = modified
	w, err := zw.CreateHeader(h)
	if err != nil {
		return fmt.Errorf("create %s: %w", ManifestPath, err)
	}
	if _, err := m.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", ManifestPath, err)
	}
	return nil
}

// copyEntry re-emits an entry with its original header and compressed bytes
func copyEntry(zw *zip.Writer, e *Entry) error {
	if err := zw.Copy(e.file); err != nil {
		return fmt.Errorf("copy %s: %w", e.Name(), err)
	}
	return nil
}
