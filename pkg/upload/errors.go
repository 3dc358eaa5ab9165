package upload

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMultipart is returned by decoders for non-multipart bodies.
	ErrNotMultipart = errors.New("request is not multipart")
	// ErrMissingBoundary is returned when the multipart boundary parameter is absent.
	ErrMissingBoundary = errors.New("multipart boundary is missing")
	// ErrFileClosed is returned when reading a part whose content was discarded.
	ErrFileClosed = errors.New("uploaded content was discarded")
)

// SizeLimitError reports that the request body or a single part is larger than permitted.
// Field is empty when the whole request exceeded the total limit.
type SizeLimitError struct {
	Field     string
	Actual    int64
	Permitted int64
}

func (e *SizeLimitError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("request size %d exceeds the permitted %d bytes", e.Actual, e.Permitted)
	}
	return fmt.Sprintf("part %q size %d exceeds the permitted %d bytes", e.Field, e.Actual, e.Permitted)
}

// UploadError wraps any other failure to decode a multipart body:
// malformed syntax, a truncated body, or an I/O error while buffering.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "multipart decode failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
