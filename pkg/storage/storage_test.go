package storage_test

import (
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mvckit/pkg/storage"
)

// stringSource is an in-memory Source.
type stringSource struct {
	content     string
	contentType string
	openErr     error
}

func (s stringSource) Open() (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

func (s stringSource) ContentType() string {
	return s.contentType
}

var uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

func TestNewKey(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, regexp.MustCompile(`^avatars/`+uuidPattern+`\.png$`), storage.NewKey("avatars", "Me.PNG"))
	assert.Regexp(t, regexp.MustCompile(`^a/b/`+uuidPattern+`$`), storage.NewKey("/a/b/", "noext"))
	assert.Regexp(t, regexp.MustCompile(`^`+uuidPattern+`\.txt$`), storage.NewKey("", "../../x.txt"))
	assert.NotEqual(t, storage.NewKey("p", "a.txt"), storage.NewKey("p", "a.txt"))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"report.pdf":          "report.pdf",
		"../../../etc/passwd": "passwd",
		`C:\Windows\file.txt`: "file.txt",
		"bad\x00name.txt":     "badname.txt",
		"":                    "unnamed",
		"..":                  "unnamed",
		"/":                   "unnamed",
	}
	for in, want := range tests {
		assert.Equal(t, want, storage.SanitizeFilename(in), in)
	}
}
