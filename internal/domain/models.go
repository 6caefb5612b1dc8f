package domain

// RepoRef identifies a repository parsed from user input.
// Branch and Subfolder are empty when the reference did not carry them.
type RepoRef struct {
	Owner     string
	Repo      string
	Branch    string
	Subfolder string
}

// HasBranch reports whether the reference carried an explicit branch
func (r RepoRef) HasBranch() bool {
	return r.Branch != ""
}

// Slug returns the owner/repo form of the reference
func (r RepoRef) Slug() string {
	return r.Owner + "/" + r.Repo
}

// ArchivePrefix returns the synthetic top-level directory GitHub wraps
// branch archives in (`<repo>-<branch>/`).
func (r RepoRef) ArchivePrefix() string {
	return r.Repo + "-" + r.Branch + "/"
}

// DownloadRequest is a fully resolved extraction request. Branch is always
// set and Subfolder is normalized (non-empty, no leading/trailing slash).
type DownloadRequest struct {
	Ref       RepoRef
	Subfolder string
	TargetDir string
}

// EntryError records a non-fatal failure for a single archive entry
type EntryError struct {
	Path    string
	Message string
}

// ExtractionOutcome accumulates the result of iterating the archive stream
type ExtractionOutcome struct {
	FilesExtracted int
	MatchedAny     bool
	Errors         []EntryError
}

// RecordError appends a per-entry failure without aborting the extraction
func (o *ExtractionOutcome) RecordError(path string, err error) {
	o.Errors = append(o.Errors, EntryError{Path: path, Message: err.Error()})
}

// RunContext carries run-scoped state through the pipeline instead of
// ambient globals: the scratch directory and the accumulated outcome.
type RunContext struct {
	ScratchDir string
	OutputDir  string
	Outcome    ExtractionOutcome
}
