package sidebar

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	// ErrInvalidMetadata marks any MetadataError.
	ErrInvalidMetadata = errors.New("invalid category metadata")

	// ErrOutsideRoot marks a StructuralError raised for a document outside
	// the generation target.
	ErrOutsideRoot = errors.New("document outside the generation target")
)

// MetadataError reports a category metadata file that exists but cannot be
// used, either because it fails to parse or because a recognized field
// carries the wrong type. The error is fatal for the generation call; no
// partial tree is returned alongside it.
type MetadataError struct {
	// Path is the offending metadata file.
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("invalid category metadata in %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrInvalidMetadata
}

// StructuralError reports a violated construction invariant, such as a
// breadcrumb computed for a document outside the generation target. It
// indicates a bug in the calling pipeline rather than bad input data.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return e.Msg
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrOutsideRoot
}
