package upload

import (
	"errors"

	"github.com/dmitrymomot/mvckit/pkg/validator"
)

// Message category and keys used for decode failures.
const (
	MessageCategory    = "upload"
	KeyLimitExceeded   = "file.limit.exceeded"
	KeyUploadException = "file.upload.exception"
)

// FailureMessage converts a decode failure into a validation message.
// A size limit failure carries the actual and permitted sizes as arguments.
func FailureMessage(err error) validator.Message {
	var sizeErr *SizeLimitError
	if errors.As(err, &sizeErr) {
		return validator.NewMessage(MessageCategory, KeyLimitExceeded, sizeErr.Actual, sizeErr.Permitted)
	}
	return validator.NewMessage(MessageCategory, KeyUploadException)
}

func failureReason(err error) string {
	var sizeErr *SizeLimitError
	if errors.As(err, &sizeErr) {
		return ReasonSizeLimit
	}
	return ReasonMalformed
}
