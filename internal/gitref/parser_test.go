package gitref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repopick/repopick/internal/domain"
	"github.com/repopick/repopick/internal/gitref"
)

func TestParse_Shorthand(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		expected  domain.RepoRef
	}{
		{
			name:      "owner/repo",
			reference: "golang/go",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go"},
		},
		{
			name:      "owner/repo with branch",
			reference: "golang/go#release-branch.go1.22",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go", Branch: "release-branch.go1.22"},
		},
		{
			name:      "dotted owner",
			reference: "my.org/my-repo",
			expected:  domain.RepoRef{Owner: "my.org", Repo: "my-repo"},
		},
		{
			name:      "trailing .git stripped",
			reference: "golang/go.git",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := gitref.Parse(tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
			assert.Empty(t, ref.Subfolder)
		})
	}
}

func TestParse_TreeURL(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		expected  domain.RepoRef
	}{
		{
			name:      "branch and nested subfolder",
			reference: "https://github.com/golang/go/tree/master/src/io",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go", Branch: "master", Subfolder: "src/io"},
		},
		{
			name:      "branch only",
			reference: "https://github.com/golang/go/tree/master",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go", Branch: "master"},
		},
		{
			name:      "trailing slash on subfolder",
			reference: "https://github.com/o/r/tree/main/docs/",
			expected:  domain.RepoRef{Owner: "o", Repo: "r", Branch: "main", Subfolder: "docs"},
		},
		{
			name:      "percent-encoded subfolder",
			reference: "https://github.com/o/r/tree/main/docs%20site",
			expected:  domain.RepoRef{Owner: "o", Repo: "r", Branch: "main", Subfolder: "docs site"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := gitref.Parse(tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestParse_RepoURL(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		expected  domain.RepoRef
	}{
		{
			name:      "https URL",
			reference: "https://github.com/golang/go",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go"},
		},
		{
			name:      "URL with .git suffix",
			reference: "https://github.com/golang/go.git",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go"},
		},
		{
			name:      "URL with branch fragment",
			reference: "https://github.com/golang/go#master",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go", Branch: "master"},
		},
		{
			name:      "scheme-less URL",
			reference: "github.com/golang/go",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go"},
		},
		{
			name:      "trailing slash",
			reference: "https://github.com/golang/go/",
			expected:  domain.RepoRef{Owner: "golang", Repo: "go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := gitref.Parse(tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"justoneword",
		"https://gitlab.com/o/r",
		"https://github.com/owneronly",
		"o/r/extra",
	}

	for _, reference := range tests {
		t.Run(reference, func(t *testing.T) {
			_, err := gitref.Parse(reference)
			assert.ErrorIs(t, err, domain.ErrInvalidReference)
		})
	}
}

func TestParse_FragmentIsAlwaysBranch(t *testing.T) {
	ref, err := gitref.Parse("o/r#docs/setup")
	require.NoError(t, err)
	assert.Equal(t, "docs/setup", ref.Branch)
	assert.Empty(t, ref.Subfolder)
}

func TestNormalizeSubfolder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"docs", "docs"},
		{"/docs/", "docs"},
		{"docs//guides", "docs/guides"},
		{"docs/./guides", "docs/guides"},
		{"docs\\guides", "docs/guides"},
		{"", ""},
		{"/", ""},
		{".", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, gitref.NormalizeSubfolder(tt.input))
		})
	}
}
