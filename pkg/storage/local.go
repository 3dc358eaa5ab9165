package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage stores files under a base directory. Keys never resolve
// outside of it.
type LocalStorage struct {
	baseDir     string
	baseURL     string
	saveTimeout time.Duration
}

type LocalOption func(*LocalStorage)

// WithLocalSaveTimeout bounds the duration of a single Save.
func WithLocalSaveTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.saveTimeout = timeout
	}
}

// NewLocalStorage creates the base directory if needed. baseURL prefixes the
// keys returned by URL, e.g. "/files/".
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDir, err)
	}
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{baseDir: abs, baseURL: baseURL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save copies src to key, replacing an existing file. A partial file is
// removed when the copy fails or ctx is done.
func (s *LocalStorage) Save(ctx context.Context, src Source, key string) (*Object, error) {
	if s.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.saveTimeout)
		defer cancel()
	}
	if src == nil {
		return nil, ErrNilSource
	}
	key, abs, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDir, err)
	}

	in, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenSource, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	written, err := io.Copy(out, &contextReader{ctx: ctx, r: in})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(abs)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return &Object{
		Key:         key,
		Size:        written,
		ContentType: contentType(src),
		Path:        abs,
		URL:         s.URL(key),
	}, nil
}

// Delete removes the file stored under key.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, abs, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDelete, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, abs, err := s.resolve(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(filepath.ToSlash(key), "/")
}

// resolve maps key to an absolute path inside baseDir.
func (s *LocalStorage) resolve(key string) (string, string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", err, key)
	}
	abs := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if !strings.HasPrefix(abs, s.baseDir+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, abs, nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
