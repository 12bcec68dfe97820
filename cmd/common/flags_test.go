package common

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/csv-ofx/internal/config"
	"fjacquet/csv-ofx/internal/converter"
)

// chdir mirrors t.Chdir (Go 1.24+) for the Go 1.21 toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func testConfig(t *testing.T) *config.Config {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	return cfg
}

func buildWithArgs(t *testing.T, cfg *config.Config, args ...string) (converter.Options, error) {
	t.Helper()
	var flags ConversionFlags
	cmd := &cobra.Command{Use: "test"}
	AddConversionFlags(cmd, &flags)
	require.NoError(t, cmd.ParseFlags(args))
	return BuildOptions(cmd, &flags, cfg)
}

func TestBuildOptionsFromFlags(t *testing.T) {
	cfg := testConfig(t)

	opts, err := buildWithArgs(t, cfg,
		"--usecols", "0,1,8,13",
		"--skiprows", "10",
		"--parser", "02.01.2006",
		"--encoding", "ISO-8859-1",
		"--delimiter", ";",
		"--lenient")
	require.NoError(t, err)

	assert.Equal(t, 0, opts.Load.Columns.Date)
	assert.Equal(t, 13, opts.Load.Columns.Amount)
	assert.Equal(t, 10, opts.Load.SkipRows)
	assert.Equal(t, "02.01.2006", opts.Load.DateLayout)
	assert.Equal(t, "ISO-8859-1", opts.Load.Encoding)
	assert.Equal(t, ';', opts.Load.Delimiter)
	assert.True(t, opts.Load.Lenient)
}

func TestBuildOptionsRequiresColumns(t *testing.T) {
	cfg := testConfig(t)

	_, err := buildWithArgs(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usecols")
}

func TestBuildOptionsProfileProvidesColumns(t *testing.T) {
	cfg := testConfig(t)

	opts, err := buildWithArgs(t, cfg, "--profile", "camt-v2")
	require.NoError(t, err)

	assert.Equal(t, 1, opts.Load.Columns.Date)
	assert.Equal(t, 14, opts.Load.Columns.Amount)
	assert.Equal(t, ';', opts.Load.Delimiter)
	assert.Equal(t, "ISO-8859-1", opts.Load.Encoding)
	assert.Equal(t, "02.01.06", opts.Load.DateLayout)
}

func TestBuildOptionsFlagsOverrideProfile(t *testing.T) {
	cfg := testConfig(t)

	opts, err := buildWithArgs(t, cfg,
		"--profile", "camt-v2",
		"--usecols", "0,1,2,3",
		"--encoding", "windows-1252")
	require.NoError(t, err)

	assert.Equal(t, 3, opts.Load.Columns.Amount, "explicit usecols wins over profile")
	assert.Equal(t, "windows-1252", opts.Load.Encoding)
	assert.Equal(t, ';', opts.Load.Delimiter, "unset flags keep the profile value")
}

func TestBuildOptionsUnknownProfile(t *testing.T) {
	cfg := testConfig(t)

	_, err := buildWithArgs(t, cfg, "--profile", "no-such-bank")
	require.Error(t, err)
}

func TestBuildOptionsRejectsBadDelimiter(t *testing.T) {
	cfg := testConfig(t)

	_, err := buildWithArgs(t, cfg, "--usecols", "0,1,2,3", "--delimiter", ";;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimiter")
}

func TestBuildOptionsCarriesOFXConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.OFX.Currency = "CHF"
	cfg.OFX.Org = "Testbank"

	opts, err := buildWithArgs(t, cfg, "--usecols", "0,1,2,3")
	require.NoError(t, err)
	assert.Equal(t, "CHF", opts.OFX.Currency)
	assert.Equal(t, "Testbank", opts.OFX.Org)
}
