package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"

	"github.com/wippyai/capigen/errors"
)

// writeFile replaces path with data via a temp file and rename, so readers
// never observe a partial header. Identical content is left untouched.
func writeFile(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, errors.IO(errors.PhaseWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, errors.IO(errors.PhaseWrite, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return false, errors.IO(errors.PhaseWrite, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return false, errors.IO(errors.PhaseWrite, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return false, errors.IO(errors.PhaseWrite, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return false, errors.IO(errors.PhaseWrite, tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		// windows refuses to rename over an existing file
		if runtime.GOOS != "windows" {
			return false, errors.IO(errors.PhaseWrite, path, err)
		}
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return false, errors.IO(errors.PhaseWrite, path, rmErr)
		}
		if err := os.Rename(tmpName, path); err != nil {
			return false, errors.IO(errors.PhaseWrite, path, err)
		}
	}
	committed = true
	return true, nil
}
