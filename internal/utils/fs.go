package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// EnsureDir ensures the parent directory of path exists, creating it if necessary
func EnsureDir(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	return fs.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
