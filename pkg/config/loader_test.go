package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/config"
)

type testConfig struct {
	Name  string `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
	Count int    `env:"CONFIG_TEST_COUNT" envDefault:"7"`
}

type requiredConfig struct {
	Token string `env:"CONFIG_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "fallback", cfg.Name)
		assert.Equal(t, 7, cfg.Count)
	})

	t.Run("cached across calls", func(t *testing.T) {
		var first testConfig
		require.NoError(t, config.Load(&first))

		// Changing the environment after the first parse has no effect.
		t.Setenv("CONFIG_TEST_NAME", "changed")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.Name, second.Name)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})

	assert.NotPanics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}
