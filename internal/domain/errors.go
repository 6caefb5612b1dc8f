package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidReference indicates the repo reference matched no known format
	ErrInvalidReference = errors.New("invalid repository reference")

	// ErrNoArchiveBody indicates the archive response carried no readable body
	ErrNoArchiveBody = errors.New("archive response has no body")

	// ErrSubfolderNotFound indicates the archive contained no entry under the
	// requested subfolder
	ErrSubfolderNotFound = errors.New("subfolder not found in repo")
)

// FetchError represents a transport-layer failure while talking to the
// hosting service (repository metadata or archive download)
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// TargetConflictError indicates the output directory is not safe to write
// to: it exists as a file, or as a directory that is not empty. The user
// resolves this by choosing a different target.
type TargetConflictError struct {
	Path   string
	Reason string
}

func (e *TargetConflictError) Error() string {
	return fmt.Sprintf("target %s: %s", e.Path, e.Reason)
}

// NewTargetConflictError creates a new TargetConflictError
func NewTargetConflictError(path, reason string) *TargetConflictError {
	return &TargetConflictError{
		Path:   path,
		Reason: reason,
	}
}

// TargetProbeError indicates an unexpected filesystem error while checking
// the output directory
type TargetProbeError struct {
	Path string
	Err  error
}

func (e *TargetProbeError) Error() string {
	return fmt.Sprintf("cannot probe target %s: %v", e.Path, e.Err)
}

func (e *TargetProbeError) Unwrap() error {
	return e.Err
}

// NewTargetProbeError creates a new TargetProbeError
func NewTargetProbeError(path string, err error) *TargetProbeError {
	return &TargetProbeError{
		Path: path,
		Err:  err,
	}
}
