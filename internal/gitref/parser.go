// Package gitref parses user-supplied repository references.
//
// Three formats are recognized, tried in order:
//   - tree URL: https://github.com/owner/repo/tree/branch[/sub/folder]
//   - shorthand: owner/repo[#branch]
//   - repo URL: https://github.com/owner/repo[.git][#branch]
//
// The first pattern that matches wins; a subfolder is only ever recovered
// from a tree URL.
package gitref

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/repopick/repopick/internal/domain"
)

var (
	treePattern      = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/tree/([^/#]+)(?:/(.+?))?/?$`)
	shorthandPattern = regexp.MustCompile(`^([^/@#\s]+)/([^/@#\s]+?)(?:\.git)?(?:#(.+))?$`)
	repoURLPattern   = regexp.MustCompile(`^(?:https?://)?github\.com/([^/]+)/([^/#]+?)(?:\.git)?/?(?:#(.+))?$`)
)

// Parse turns a reference string into a RepoRef. It fails with
// domain.ErrInvalidReference when no pattern matches.
func Parse(reference string) (domain.RepoRef, error) {
	reference = strings.TrimSpace(reference)

	if m := treePattern.FindStringSubmatch(reference); m != nil {
		return domain.RepoRef{
			Owner:     m[1],
			Repo:      m[2],
			Branch:    m[3],
			Subfolder: NormalizeSubfolder(m[4]),
		}, nil
	}

	// The repo URL form carries slashes the shorthand must not swallow.
	if !strings.Contains(reference, "github.com/") {
		if m := shorthandPattern.FindStringSubmatch(reference); m != nil {
			return domain.RepoRef{
				Owner:  m[1],
				Repo:   m[2],
				Branch: m[3],
			}, nil
		}
	}

	if m := repoURLPattern.FindStringSubmatch(reference); m != nil {
		return domain.RepoRef{
			Owner:  m[1],
			Repo:   m[2],
			Branch: m[3],
		}, nil
	}

	return domain.RepoRef{}, domain.ErrInvalidReference
}

// NormalizeSubfolder normalizes a subfolder path: percent-decoded,
// forward slashes, no leading or trailing slash. Returns "" when the path
// normalizes to nothing.
func NormalizeSubfolder(p string) string {
	if p == "" {
		return ""
	}

	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}

	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(p, "/")
	p = path.Clean(p)

	if p == "." || p == "/" {
		return ""
	}
	return p
}
