package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Source is content that can be persisted. *upload.File satisfies it.
type Source interface {
	Open() (io.ReadCloser, error)
	ContentType() string
}

// Object describes stored content.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	// Path is the absolute file path for local storage, empty otherwise.
	Path string
	URL  string
}

// Storage persists content under slash-separated keys.
type Storage interface {
	Save(ctx context.Context, src Source, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	URL(key string) string
}

// NewKey builds a unique key under prefix, keeping the lower-cased extension
// of filename: NewKey("avatars", "Me.PNG") gives "avatars/<uuid>.png".
func NewKey(prefix, filename string) string {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(SanitizeFilename(filename)))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// SanitizeFilename strips directory components and NUL bytes from a
// client-supplied name. Returns "unnamed" when nothing usable is left.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		return "unnamed"
	}
	return filename
}

// cleanKey normalizes key and rejects traversal outside the root.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" || strings.Contains(key, "\x00") {
		return "", ErrInvalidKey
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", ErrInvalidKey
		}
	}
	key = path.Clean(key)
	if key == "." {
		return "", ErrInvalidKey
	}
	return key, nil
}

func contentType(src Source) string {
	if ct := src.ContentType(); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
