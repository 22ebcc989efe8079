package materialize

import (
	"errors"
	"fmt"
)

// Sentinel errors for the materialize package.
var (
	// ErrDirectory indicates the target directory is missing, not a
	// directory, or not writable.
	ErrDirectory = errors.New("materialize: invalid target directory")

	// ErrGeneration indicates the generator failed.
	ErrGeneration = errors.New("materialize: generation failed")

	// ErrCopy indicates an auxiliary file could not be copied.
	ErrCopy = errors.New("materialize: auxiliary file copy failed")

	// ErrSourceMissing indicates an auxiliary file has no source in the
	// template directory.
	ErrSourceMissing = errors.New("materialize: template source missing")

	// ErrPermissionDenied indicates a copy was refused by the filesystem.
	ErrPermissionDenied = errors.New("materialize: permission denied")
)

// CopyReason classifies a CopyError.
type CopyReason int

const (
	ReasonOther CopyReason = iota
	ReasonSourceMissing
	ReasonPermissionDenied
)

// String returns the reason name.
func (r CopyReason) String() string {
	switch r {
	case ReasonSourceMissing:
		return "SourceMissing"
	case ReasonPermissionDenied:
		return "PermissionDenied"
	default:
		return "Other"
	}
}

// DirectoryError reports an unusable target directory.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("target directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() []error { return []error{ErrDirectory, e.Err} }

// GenerationError wraps the generator's error verbatim.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating sources: %v", e.Err)
}

func (e *GenerationError) Unwrap() []error { return []error{ErrGeneration, e.Err} }

// CopyError reports the first auxiliary file that could not be copied.
type CopyError struct {
	File   string
	Reason CopyReason
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying auxiliary file %s (%s): %v", e.File, e.Reason, e.Err)
}

func (e *CopyError) Unwrap() []error {
	errs := []error{ErrCopy, e.Err}
	switch e.Reason {
	case ReasonSourceMissing:
		errs = append(errs, ErrSourceMissing)
	case ReasonPermissionDenied:
		errs = append(errs, ErrPermissionDenied)
	}
	return errs
}
