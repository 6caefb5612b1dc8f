package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := EnsureDir(fs, "/out/nested/deep/file.txt")
	require.NoError(t, err)

	info, err := fs.Stat("/out/nested/deep")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out/sub", 0755))

	assert.NoError(t, EnsureDir(fs, "/out/sub/file.txt"))
	assert.NoError(t, EnsureDir(fs, "/out/sub/file.txt"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde prefix", "~/output", filepath.Join(home, "output")},
		{"bare tilde", "~", home},
		{"absolute", "/tmp/output", "/tmp/output"},
		{"relative", "output", "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}
