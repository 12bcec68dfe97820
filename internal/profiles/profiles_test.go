package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/csv-ofx/internal/csvloader"
)

func TestBuiltinProfiles(t *testing.T) {
	builtin := Builtin()

	profile, err := builtin.Get("camt-v2")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 11, 14}, profile.UseCols)
	assert.Equal(t, ";", profile.Delimiter)
	assert.Equal(t, "ISO-8859-1", profile.Encoding)

	_, err = builtin.Get("camt-v8")
	require.NoError(t, err)
}

func TestGetUnknownProfile(t *testing.T) {
	_, err := Builtin().Get("no-such-bank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-bank")
	assert.Contains(t, err.Error(), "camt-v2", "error lists available profiles")
}

func TestLoadUserProfiles(t *testing.T) {
	content := `mybank:
  description: custom export
  usecols: [0, 2, 3, 5]
  skiprows: 2
  date_format: "2006-01-02"
camt-v2:
  usecols: [9, 8, 7, 6]
`
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "profiles.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	loaded, err := Load(file)
	require.NoError(t, err)

	mybank, err := loaded.Get("mybank")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 5}, mybank.UseCols)
	require.NotNil(t, mybank.SkipRows)
	assert.Equal(t, 2, *mybank.SkipRows)

	// User entries override builtins on name collision
	override, err := loaded.Get("camt-v2")
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8, 7, 6}, override.UseCols)
}

func TestLoadEmptyPathReturnsBuiltin(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)
	_, err = loaded.Get("camt-v2")
	assert.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/profiles.yaml")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	profile, err := Builtin().Get("camt-v2")
	require.NoError(t, err)

	opts := csvloader.Options{SkipRows: 0, Delimiter: ','}
	require.NoError(t, profile.Apply(&opts))

	assert.Equal(t, 1, opts.Columns.Date)
	assert.Equal(t, 14, opts.Columns.Amount)
	assert.Equal(t, 1, opts.SkipRows)
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, "ISO-8859-1", opts.Encoding)
	assert.Equal(t, "02.01.06", opts.DateLayout)
}

func TestApplyLeavesUnsetFieldsAlone(t *testing.T) {
	profile := Profile{UseCols: []int{0, 1, 2, 3}}

	opts := csvloader.Options{SkipRows: 5, Encoding: "windows-1252", Delimiter: '\t'}
	require.NoError(t, profile.Apply(&opts))

	assert.Equal(t, 5, opts.SkipRows)
	assert.Equal(t, "windows-1252", opts.Encoding)
	assert.Equal(t, '\t', opts.Delimiter)
	assert.Equal(t, 3, opts.Columns.Amount)
}

func TestApplyRejectsBadColumns(t *testing.T) {
	profile := Profile{UseCols: []int{0, 0, 1, 2}}
	opts := csvloader.Options{}
	assert.Error(t, profile.Apply(&opts))
}
