package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/config"
)

type sampleConfig struct {
	Format string `env:"QRKIT_TEST_FORMAT" envDefault:"gif"`
	Scale  int    `env:"QRKIT_TEST_SCALE" envDefault:"8"`
	Strict bool   `env:"QRKIT_TEST_STRICT"`
}

type requiredConfig struct {
	Bucket string `env:"QRKIT_TEST_REQUIRED_BUCKET,required"`
}

type prefixedConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, sampleConfig{Format: "gif", Scale: 8}, cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("QRKIT_TEST_FORMAT", "svg")
	t.Setenv("QRKIT_TEST_SCALE", "3")
	t.Setenv("QRKIT_TEST_STRICT", "true")

	var cfg sampleConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, sampleConfig{Format: "svg", Scale: 3, Strict: true}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[sampleConfig](nil), config.ErrNilPointer)
	})

	t.Run("bad value", func(t *testing.T) {
		t.Setenv("QRKIT_TEST_SCALE", "big")
		var cfg sampleConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("missing required", func(t *testing.T) {
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("missing env file", func(t *testing.T) {
		var cfg sampleConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env")))
		assert.ErrorIs(t, err, config.ErrLoadingEnv)
	})

	t.Run("must load panics", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("QRKIT_TEST_REQUIRED_BUCKET=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QRKIT_TEST_REQUIRED_BUCKET") })

	var cfg requiredConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
	assert.Equal(t, "from-file", cfg.Bucket)
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("QRSERVER_ADDR", ":9090")

	var cfg prefixedConfig
	require.NoError(t, config.Load(&cfg, config.WithPrefix("QRSERVER_")))
	assert.Equal(t, ":9090", cfg.Addr)
}
