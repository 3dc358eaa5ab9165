package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvckit/pkg/config"
)

type testConfig struct {
	Name  string `env:"NAME" envDefault:"default"`
	Limit int64  `env:"LIMIT" envDefault:"42"`
	On    bool   `env:"ON"`
}

type requiredConfig struct {
	Value string `env:"REQUIRED_VALUE,required"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, "default", cfg.Name)
		assert.Equal(t, int64(42), cfg.Limit)
		assert.False(t, cfg.On)
	})

	t.Run("values with prefix", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_NAME": "svc", "APP_LIMIT": "7", "APP_ON": "true", "NAME": "ignored"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "svc", cfg.Name)
		assert.Equal(t, int64(7), cfg.Limit)
		assert.True(t, cfg.On)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg, config.WithEnvironment(map[string]string{})) })
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"LIMIT": "lots"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoad_EnvFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("NAME=from-file\nLIMIT=9\n"), 0o600))

	t.Run("file fills unset values", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvFiles(file), config.WithEnvironment(map[string]string{"LIMIT": "11"}))
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, int64(11), cfg.Limit)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(dir, "nope.env")))
		assert.ErrorIs(t, err, config.ErrReadingEnvFile)
	})

	t.Run("optional missing file", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.Load(&cfg,
			config.WithOptionalEnvFiles(filepath.Join(dir, "nope.env")),
			config.WithEnvironment(map[string]string{}),
		)
		require.NoError(t, err)
		assert.Equal(t, "default", cfg.Name)
	})
}
