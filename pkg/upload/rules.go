package upload

import (
	"mime"
	"slices"
	"strings"

	"github.com/dmitrymomot/mvckit/pkg/request"
	"github.com/dmitrymomot/mvckit/pkg/validator"
)

// Message keys of the file rules.
const (
	KeyFileRequired       = "file.required"
	KeyFileTypeNotAllowed = "file.type.not_allowed"
)

// FileFrom returns the file attached under field, if any.
func FileFrom(req *request.Request, field string) (*File, bool) {
	f, ok := req.Attribute(field).(*File)
	return f, ok && f != nil
}

// RequiredFile fails when no file was attached under field.
func RequiredFile(req *request.Request, field string) validator.Rule {
	return validator.Rule{
		Check: func() bool {
			_, ok := FileFrom(req, field)
			return ok
		},
		Message: validator.NewMessage(field, KeyFileRequired),
	}
}

// AllowedTypes fails when the file under field has a media type outside
// allowed. Entries ending in "/*" match a whole top-level type. A missing file
// passes; combine with RequiredFile.
func AllowedTypes(req *request.Request, field string, allowed ...string) validator.Rule {
	f, ok := FileFrom(req, field)
	contentType := ""
	if ok {
		contentType = f.ContentType()
	}
	return validator.Rule{
		Check: func() bool {
			return !ok || typeAllowed(contentType, allowed)
		},
		Message: validator.NewMessage(field, KeyFileTypeNotAllowed, contentType),
	}
}

func typeAllowed(contentType string, allowed []string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if slices.Contains(allowed, mediaType) {
		return true
	}
	for _, a := range allowed {
		if prefix, ok := strings.CutSuffix(a, "/*"); ok && strings.HasPrefix(mediaType, prefix+"/") {
			return true
		}
	}
	return false
}
