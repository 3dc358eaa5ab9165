package upload

import (
	"bytes"
	"io"
	"net/textproto"
	"os"
)

// RawPart is one decoded section of a multipart body.
// Content lives either in memory or in a spooled temp file.
type RawPart struct {
	FieldName   string
	FormField   bool
	Filename    string
	ContentType string
	Header      textproto.MIMEHeader
	Size        int64

	data      []byte
	path      string
	discarded bool
}

// NewFormPart builds an in-memory form-field part. Useful for custom decoders and tests.
func NewFormPart(field, value string) *RawPart {
	return &RawPart{
		FieldName: field,
		FormField: true,
		Header:    textproto.MIMEHeader{},
		Size:      int64(len(value)),
		data:      []byte(value),
	}
}

// NewFilePart builds an in-memory file part.
func NewFilePart(field, filename, contentType string, content []byte) *RawPart {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &RawPart{
		FieldName:   field,
		Filename:    filename,
		ContentType: contentType,
		Header:      h,
		Size:        int64(len(content)),
		data:        content,
	}
}

// TempPath returns the spool file path, or an empty string for in-memory content.
func (p *RawPart) TempPath() string {
	return p.path
}

// Open returns a reader over the part content. The reader also implements io.Seeker.
func (p *RawPart) Open() (io.ReadCloser, error) {
	if p.discarded {
		return nil, ErrFileClosed
	}
	if p.path != "" {
		return os.Open(p.path)
	}
	return memoryContent{bytes.NewReader(p.data)}, nil
}

type memoryContent struct {
	*bytes.Reader
}

func (memoryContent) Close() error { return nil }

// Bytes returns the whole content.
func (p *RawPart) Bytes() ([]byte, error) {
	if p.discarded {
		return nil, ErrFileClosed
	}
	if p.path != "" {
		return os.ReadFile(p.path)
	}
	return p.data, nil
}

// Discard releases the content, removing the spool file if any.
func (p *RawPart) Discard() error {
	if p.discarded {
		return nil
	}
	p.discarded = true
	p.data = nil
	if p.path == "" {
		return nil
	}
	err := os.Remove(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
