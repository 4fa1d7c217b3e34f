package model

import "errors"

// Informational conditions: recovered locally, no state change
var (
	ErrNoFilesSelected   = errors.New("no files selected")
	ErrNoSupportedImages = errors.New("no supported images among selected files")
	ErrAlreadyStaged     = errors.New("selected files are already staged")
	ErrNoDestination     = errors.New("no save location selected")
)

// Programming errors and guards
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyWorkingSet = errors.New("working set is empty")
	ErrMergeInProgress = errors.New("merge already in progress")
)

// ThumbnailError reports that the backend could not produce previews for a batch.
// The whole batch is discarded.
type ThumbnailError struct {
	Paths []string
	Err   error
}

func (e *ThumbnailError) Error() string {
	return "thumbnail generation failed: " + e.Err.Error()
}

func (e *ThumbnailError) Unwrap() error {
	return e.Err
}

// MergeError reports that the backend could not produce the PDF. Error returns
// the backend text verbatim so it can be shown to the user as is.
type MergeError struct {
	Destination string
	Err         error
}

func (e *MergeError) Error() string {
	return e.Err.Error()
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// ViewerOpenError reports that the merged file could not be opened. It never
// rolls back a successful merge.
type ViewerOpenError struct {
	Path string
	Err  error
}

func (e *ViewerOpenError) Error() string {
	return "failed to open " + e.Path + ": " + e.Err.Error()
}

func (e *ViewerOpenError) Unwrap() error {
	return e.Err
}
