// Package target performs the pre-flight safety check on the output
// directory before any archive bytes are requested.
package target

import (
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/repopick/repopick/internal/domain"
)

// FallbackDirName is used when the subfolder path normalizes to nothing
const FallbackDirName = "output"

// Resolve computes the absolute output directory for a request: the explicit
// target when given, otherwise the basename of the subfolder.
func Resolve(targetDir, subfolder string) (string, error) {
	dir := targetDir
	if dir == "" {
		dir = path.Base(subfolder)
		if dir == "." || dir == "/" || dir == "" {
			dir = FallbackDirName
		}
	}
	return filepath.Abs(dir)
}

// Check verifies the output directory is safe to write to:
//   - exists as a regular file: TargetConflictError
//   - exists as a non-empty directory: TargetConflictError
//   - exists as an empty directory, or does not exist: ok
//   - any other probe failure: TargetProbeError
func Check(fs afero.Fs, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return domain.NewTargetProbeError(dir, err)
	}

	if !info.IsDir() {
		return domain.NewTargetConflictError(dir, "exists as a file")
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return domain.NewTargetProbeError(dir, err)
	}
	if len(entries) > 0 {
		return domain.NewTargetConflictError(dir, "not empty")
	}

	return nil
}
