package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textgate/pkg/config"
)

type testConfig struct {
	Name    string        `env:"TEST_CFG_NAME" envDefault:"textgate"`
	Port    int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
	Secret  string        `env:"TEST_CFG_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_CFG_SECRET", "s3cret")
	t.Setenv("TEST_CFG_PORT", "9090")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "textgate", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad(t *testing.T) {
	t.Run("returns parsed config", func(t *testing.T) {
		t.Setenv("TEST_CFG_SECRET", "s3cret")

		cfg := config.MustLoad[testConfig]()
		assert.Equal(t, "s3cret", cfg.Secret)
	})

	t.Run("panics on missing required variable", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = config.MustLoad[testConfig]()
		})
	})
}
