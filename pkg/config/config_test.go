package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should return the defaults with no overrides set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.TimeoutSymbolic)
		assert.Equal(t, 360*time.Second, cfg.TimeoutNeural)
		assert.Equal(t, 360*time.Second, cfg.TimeoutHybrid)
		assert.Equal(t, 3, cfg.MaxRetries)
		assert.Equal(t, 1*time.Second, cfg.RetryDelayBase)
		assert.Equal(t, 10*time.Second, cfg.RetryDelayMax)
		assert.Equal(t, 4, cfg.ParallelWorkers)
	})
	t.Run("Should apply environment overrides", func(t *testing.T) {
		t.Setenv("SYMFLOW_TIMEOUT_NEURAL", "120s")
		t.Setenv("SYMFLOW_MAX_RETRIES", "5")
		t.Setenv("SYMFLOW_RETRY_DELAY_BASE", "250ms")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 120*time.Second, cfg.TimeoutNeural)
		assert.Equal(t, 5, cfg.MaxRetries)
		assert.Equal(t, 250*time.Millisecond, cfg.RetryDelayBase)
		// untouched values keep their defaults
		assert.Equal(t, 30*time.Second, cfg.TimeoutSymbolic)
	})
	t.Run("Should reject values outside the validated ranges", func(t *testing.T) {
		t.Setenv("SYMFLOW_MAX_RETRIES", "101")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
	t.Run("Should reject a non-positive timeout", func(t *testing.T) {
		t.Setenv("SYMFLOW_TIMEOUT_SYMBOLIC", "0s")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}

func TestDefault(t *testing.T) {
	t.Run("Should return a fresh copy each call", func(t *testing.T) {
		a := Default()
		b := Default()
		a.MaxRetries = 99
		assert.Equal(t, 3, b.MaxRetries)
	})
}
