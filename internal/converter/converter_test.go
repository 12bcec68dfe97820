package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/csv-ofx/internal/csvloader"
	"fjacquet/csv-ofx/internal/models"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))
	return file
}

func basicOptions() Options {
	return Options{
		Load: csvloader.Options{
			Columns:  models.ColumnMap{Date: 0, Memo: 1, Title: 2, Amount: 3},
			SkipRows: 1,
		},
	}
}

func TestConvertEndToEnd(t *testing.T) {
	input := writeInput(t, "Datum,Verwendungszweck,Beguenstigter,Betrag\n"+
		"2023-01-05,Grocery Store,Groceries,-45.67\n"+
		"2023-01-09,Gehalt,Arbeitgeber,1890.41\n")
	output := filepath.Join(t.TempDir(), "statement.ofx")

	summary, err := Convert(input, output, basicOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "1844.74", summary.Balance.StringFixed(2))
	assert.Equal(t, "2023-01-05", summary.Start.Format("2006-01-02"))
	assert.Equal(t, "2023-01-09", summary.End.Format("2006-01-02"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	content := string(data)
	assert.Equal(t, 2, strings.Count(content, "<STMTTRN>"), "one entry per data row")
	assert.Contains(t, content, "<TRNAMT>-45.67</TRNAMT>")
	assert.Contains(t, content, "<BALAMT>1844.74</BALAMT>")
}

func TestConvertIsDeterministic(t *testing.T) {
	input := writeInput(t, "header\n2023-01-05,a,b,-1.50\n2023-01-06,c,d,2.25\n")
	outDir := t.TempDir()
	first := filepath.Join(outDir, "first.ofx")
	second := filepath.Join(outDir, "second.ofx")

	_, err := Convert(input, first, basicOptions())
	require.NoError(t, err)
	_, err = Convert(input, second, basicOptions())
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "re-running on unchanged input yields identical bytes")
}

func TestConvertEmptyInputWritesValidStatement(t *testing.T) {
	input := writeInput(t, "header only\n")
	output := filepath.Join(t.TempDir(), "empty.ofx")

	summary, err := Convert(input, output, basicOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<BALAMT>0.00</BALAMT>")
}

func TestConvertBadRowLeavesNoOutput(t *testing.T) {
	input := writeInput(t, "header\n2023-01-05,a,b,N/A\n")
	output := filepath.Join(t.TempDir(), "statement.ofx")

	_, err := Convert(input, output, basicOptions())
	require.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "failed runs must not leave an output file")
}

func TestConvertWithCSVDump(t *testing.T) {
	input := writeInput(t, "header\n2023-01-05,Grocery Store,Groceries,-45.67\n")
	outDir := t.TempDir()
	opts := basicOptions()
	opts.CSVDumpPath = filepath.Join(outDir, "normalized.csv")

	_, err := Convert(input, filepath.Join(outDir, "statement.ofx"), opts)
	require.NoError(t, err)

	data, err := os.ReadFile(opts.CSVDumpPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Date,Memo,Title,Amount,CreditDebit")
	assert.Contains(t, content, "05.01.2023,Grocery Store,Groceries,-45.67,DBIT")
}

func TestExportCSV(t *testing.T) {
	day, _ := time.Parse("2006-01-02", "2023-01-09")
	transactions := []models.Transaction{
		{Date: day, Memo: "Gehalt", Title: "Arbeitgeber", Amount: decimal.RequireFromString("1890.41")},
	}
	file := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, ExportCSV(transactions, file))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "09.01.2023,Gehalt,Arbeitgeber,1890.41,CRDT")
}
