package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option tunes a Load call.
type Option func(*options)

type options struct {
	prefix   string
	envFiles []string
	optional bool
	environ  map[string]string
}

// WithPrefix prepends prefix to every variable name, e.g. "APP_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles reads variables from the given files. Missing files are an error.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, files...) }
}

// WithOptionalEnvFiles is like WithEnvFiles but skips files that do not exist.
func WithOptionalEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, files...)
		o.optional = true
	}
}

// WithEnvironment replaces the process environment as the source of values.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) { o.environ = environ }
}

// Load parses environment variables into v.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	environ := make(map[string]string)
	for _, file := range o.envFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if o.optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", file, err))
		}
		for k, val := range values {
			environ[k] = val
		}
	}

	if o.environ != nil {
		for k, val := range o.environ {
			environ[k] = val
		}
	} else {
		for _, kv := range os.Environ() {
			if k, val, ok := strings.Cut(kv, "="); ok {
				environ[k] = val
			}
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: environ,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
