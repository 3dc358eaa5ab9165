package upload_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

// formPart describes one section of a test multipart body.
// A part with file set is written with a filename disposition, even an empty one.
type formPart struct {
	name        string
	value       string
	file        bool
	filename    string
	contentType string
}

func field(name, value string) formPart {
	return formPart{name: name, value: value}
}

func filePart(name, filename, contentType, content string) formPart {
	return formPart{name: name, value: content, file: true, filename: filename, contentType: contentType}
}

// multipartBody encodes parts and returns the body with its Content-Type.
func multipartBody(t *testing.T, parts ...formPart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		if p.file {
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.name, p.filename))
			if p.contentType != "" {
				h.Set("Content-Type", p.contentType)
			}
		} else {
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, p.name))
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(p.value))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// newMultipartRequest builds a POST request carrying parts.
func newMultipartRequest(t *testing.T, target string, parts ...formPart) *http.Request {
	t.Helper()

	body, contentType := multipartBody(t, parts...)
	r := httptest.NewRequest(http.MethodPost, target, body)
	r.Header.Set("Content-Type", contentType)
	return r
}
