package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors t.Chdir (Go 1.24+) for the Go 1.21 toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestInitializeConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, 1, cfg.CSV.SkipRows)
	assert.Equal(t, "EUR", cfg.OFX.Currency)
	assert.Equal(t, "CHECKING", cfg.OFX.AccountType)
	assert.Equal(t, "output.ofx", cfg.OFX.Output)
}

func TestInitializeConfigFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CSVOFX_OFX_CURRENCY", "CHF")
	t.Setenv("CSVOFX_CSV_DELIMITER", ";")
	t.Setenv("CSVOFX_LOG_LEVEL", "debug")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "CHF", cfg.OFX.Currency)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitializeConfigRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CSVOFX_LOG_LEVEL", "noisy")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestInitializeConfigRejectsMultiCharDelimiter(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CSVOFX_CSV_DELIMITER", ";;")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimiter")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	cfg.Log.Level = "debug"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, "debug", logger.GetLevel().String())
}
