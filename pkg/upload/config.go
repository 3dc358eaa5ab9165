package upload

import "os"

// Unbounded disables a size limit.
const Unbounded int64 = -1

const (
	DefaultSizeLimit     int64 = 2 << 20
	DefaultFileSizeLimit int64 = 2 << 20
	DefaultMaxMemory     int64 = 1 << 20
)

// Config holds process-wide upload settings. It is read-only while requests are served.
type Config struct {
	// SizeLimit bounds the whole request body in bytes. Negative means unbounded.
	SizeLimit int64 `env:"UPLOAD_SIZE_LIMIT" envDefault:"2097152"`
	// FileSizeLimit bounds every single part in bytes. Negative means unbounded.
	FileSizeLimit int64 `env:"UPLOAD_FILE_SIZE_LIMIT" envDefault:"2097152"`
	// Directory receives part content larger than MaxMemory. Empty means os.TempDir().
	Directory string `env:"UPLOAD_DIR"`
	// MaxMemory is how much of a part is kept in memory before spooling to disk.
	MaxMemory int64 `env:"UPLOAD_MAX_MEMORY" envDefault:"1048576"`
	// AtomicAttachments publishes file attributes together with parameters,
	// only when the whole body decoded successfully.
	AtomicAttachments bool `env:"UPLOAD_ATOMIC_ATTACHMENTS" envDefault:"false"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		SizeLimit:     DefaultSizeLimit,
		FileSizeLimit: DefaultFileSizeLimit,
		MaxMemory:     DefaultMaxMemory,
	}
}

// Limits returns the global size limits.
func (c Config) Limits() Limits {
	return Limits{Size: normalizeLimit(c.SizeLimit), FileSize: normalizeLimit(c.FileSizeLimit)}
}

// TempDir returns the directory used for spooled content.
func (c Config) TempDir() string {
	if c.Directory == "" {
		return os.TempDir()
	}
	return c.Directory
}

func normalizeLimit(v int64) int64 {
	if v < 0 {
		return Unbounded
	}
	return v
}
