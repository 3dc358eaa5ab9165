package upload

import (
	"fmt"
	"io"
	"mime"
	"net/textproto"
	"os"
	"path/filepath"
)

// File is an uploaded file attached to a request.
// The content is owned by the request and is gone after the request cleanup runs.
type File struct {
	// FieldName is the normalized form field name.
	FieldName string
	// Filename is the base name supplied by the client.
	Filename string
	// Size is the content length in bytes.
	Size int64
	// Header holds the MIME headers of the part.
	Header textproto.MIMEHeader

	part *RawPart
}

func newFile(name string, part *RawPart) *File {
	return &File{
		FieldName: name,
		Filename:  part.Filename,
		Size:      part.Size,
		Header:    part.Header,
		part:      part,
	}
}

// ContentType returns the declared media type, falling back to a guess from
// the file extension and finally to application/octet-stream.
func (f *File) ContentType() string {
	if ct := f.part.ContentType; ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}
	if byExt := mime.TypeByExtension(filepath.Ext(f.Filename)); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return "application/octet-stream"
}

// Open returns a reader over the content. The caller closes it.
func (f *File) Open() (io.ReadCloser, error) {
	return f.part.Open()
}

// Bytes reads the whole content into memory.
func (f *File) Bytes() ([]byte, error) {
	return f.part.Bytes()
}

// WriteTo copies the content to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	src, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()
	return io.Copy(w, src)
}

// SaveTo writes the content to path, creating or truncating it.
func (f *File) SaveTo(path string) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save upload %q: %w", f.Filename, err)
	}
	if _, err := f.WriteTo(dst); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("save upload %q: %w", f.Filename, err)
	}
	return dst.Close()
}

// TempPath returns the spool file path, or an empty string when the content is in memory.
func (f *File) TempPath() string {
	return f.part.TempPath()
}

// Remove releases the content and deletes the spool file.
func (f *File) Remove() error {
	return f.part.Discard()
}

func (f *File) String() string {
	return fmt.Sprintf("upload.File{field=%s, filename=%s, size=%d, type=%s}", f.FieldName, f.Filename, f.Size, f.ContentType())
}
