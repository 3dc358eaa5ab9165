package upload

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
)

// Decoder turns a multipart request body into a sequence of parts, enforcing limits.
type Decoder interface {
	Decode(r *http.Request, limits Limits) (PartReader, error)
}

// PartReader yields parts in arrival order. It returns io.EOF after the last part,
// *SizeLimitError when a limit is exceeded and *UploadError for anything else.
// The sequence is consumed once.
type PartReader interface {
	NextPart() (*RawPart, error)
}

// IsMultipart reports whether the request content type is a multipart one.
// The request method is not checked.
func IsMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "multipart/")
}

// MultipartDecoder is the default Decoder, built on mime/multipart.
// Content larger than maxMemory is spooled to files in dir.
type MultipartDecoder struct {
	dir       string
	maxMemory int64
}

// NewMultipartDecoder creates a decoder spooling to dir. Non-positive maxMemory
// spools every non-empty part.
func NewMultipartDecoder(dir string, maxMemory int64) *MultipartDecoder {
	if maxMemory < 0 {
		maxMemory = 0
	}
	return &MultipartDecoder{dir: dir, maxMemory: maxMemory}
}

func (d *MultipartDecoder) Decode(r *http.Request, limits Limits) (PartReader, error) {
	if bounded(limits.Size) && r.ContentLength > limits.Size {
		return nil, &SizeLimitError{Actual: r.ContentLength, Permitted: limits.Size}
	}

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, &UploadError{Err: ErrNotMultipart}
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, &UploadError{Err: ErrMissingBoundary}
	}
	if r.Body == nil {
		return nil, &UploadError{Err: io.ErrUnexpectedEOF}
	}

	body := &countingReader{r: r.Body, limit: limits.Size}
	return &multipartPartReader{
		mr:        multipart.NewReader(body, boundary),
		body:      body,
		limits:    limits,
		dir:       d.dir,
		maxMemory: d.maxMemory,
	}, nil
}

type multipartPartReader struct {
	mr        *multipart.Reader
	body      *countingReader
	limits    Limits
	dir       string
	maxMemory int64
	done      bool
}

func (pr *multipartPartReader) NextPart() (*RawPart, error) {
	if pr.done {
		return nil, io.EOF
	}

	p, err := pr.mr.NextPart()
	if err != nil {
		pr.done = true
		// Only a bare io.EOF marks the closing boundary; a wrapped EOF means a truncated body.
		if err == io.EOF && pr.body.exceeded() == nil {
			return nil, io.EOF
		}
		return nil, pr.classify(err)
	}
	defer func() { _ = p.Close() }()

	raw := &RawPart{
		FieldName:   p.FormName(),
		Header:      p.Header,
		ContentType: p.Header.Get("Content-Type"),
	}
	_, disposition, _ := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if _, hasFilename := disposition["filename"]; hasFilename {
		raw.Filename = p.FileName()
	} else {
		raw.FormField = true
	}

	if err := pr.readContent(p, raw); err != nil {
		pr.done = true
		_ = raw.Discard()
		return nil, err
	}
	return raw, nil
}

// readContent buffers the part, spooling to disk past maxMemory, and enforces the per-part limit.
func (pr *multipartPartReader) readContent(p *multipart.Part, raw *RawPart) error {
	var src io.Reader = p
	if bounded(pr.limits.FileSize) {
		src = io.LimitReader(p, past(pr.limits.FileSize))
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, src, past(pr.maxMemory))
	if err != nil && !errors.Is(err, io.EOF) {
		return pr.classify(err)
	}

	if n > pr.maxMemory {
		f, err := os.CreateTemp(pr.dir, "upload-*")
		if err != nil {
			return &UploadError{Err: err}
		}
		raw.path = f.Name()
		written, err := buf.WriteTo(f)
		if err == nil {
			var rest int64
			rest, err = io.Copy(f, src)
			written += rest
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return pr.classify(err)
		}
		n = written
	} else {
		raw.data = buf.Bytes()
	}
	raw.Size = n

	if bounded(pr.limits.FileSize) && n > pr.limits.FileSize {
		// Drain the rest so the reported size is the real part size.
		rest, _ := io.Copy(io.Discard, p)
		if le := pr.body.exceeded(); le != nil {
			return le
		}
		return &SizeLimitError{Field: raw.FieldName, Actual: n + rest, Permitted: pr.limits.FileSize}
	}
	return nil
}

// classify maps a read error to the error taxonomy. A tripped body limit wins
// over whatever the multipart reader reported for it.
func (pr *multipartPartReader) classify(err error) error {
	if le := pr.body.exceeded(); le != nil {
		return le
	}
	var sizeErr *SizeLimitError
	if errors.As(err, &sizeErr) {
		return sizeErr
	}
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr
	}
	return &UploadError{Err: err}
}

// countingReader counts body bytes and fails once more than limit bytes were read.
type countingReader struct {
	r     io.Reader
	n     int64
	limit int64
	err   *SizeLimitError
}

func (c *countingReader) Read(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.r.Read(p)
	c.n += int64(n)
	if bounded(c.limit) && c.n > c.limit {
		c.err = &SizeLimitError{Actual: c.n, Permitted: c.limit}
		return n, c.err
	}
	return n, err
}

func (c *countingReader) exceeded() *SizeLimitError {
	return c.err
}
