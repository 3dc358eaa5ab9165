package storage

import "errors"

var (
	ErrNilSource  = errors.New("source is nil")
	ErrInvalidKey = errors.New("invalid key")

	ErrFileNotFound       = errors.New("file not found")
	ErrFailedToOpenSource = errors.New("failed to open source")
	ErrFailedToWriteFile  = errors.New("failed to write file")
	ErrFailedToDelete     = errors.New("failed to delete file")
	ErrFailedToCreateDir  = errors.New("failed to create directory")

	// S3 error classes
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
