package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepoRef_HasBranch(t *testing.T) {
	assert.False(t, RepoRef{Owner: "golang", Repo: "go"}.HasBranch())
	assert.True(t, RepoRef{Owner: "golang", Repo: "go", Branch: "master"}.HasBranch())
}

func TestRepoRef_Slug(t *testing.T) {
	ref := RepoRef{Owner: "golang", Repo: "go"}
	assert.Equal(t, "golang/go", ref.Slug())
}

func TestRepoRef_ArchivePrefix(t *testing.T) {
	ref := RepoRef{Owner: "golang", Repo: "go", Branch: "master"}
	assert.Equal(t, "go-master/", ref.ArchivePrefix())
}

func TestExtractionOutcome_RecordError(t *testing.T) {
	var outcome ExtractionOutcome

	outcome.RecordError("keep/a.txt", errors.New("disk full"))
	outcome.RecordError("keep/b.txt", errors.New("permission denied"))

	assert.Len(t, outcome.Errors, 2)
	assert.Equal(t, "keep/a.txt", outcome.Errors[0].Path)
	assert.Equal(t, "disk full", outcome.Errors[0].Message)
	assert.Equal(t, "permission denied", outcome.Errors[1].Message)
}
