// Package csvloader reads bank CSV exports and turns them into normalized
// transactions. Columns are selected by position rather than header name, since
// exports routinely carry locale-dependent or missing headers.
package csvloader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"fjacquet/csv-ofx/internal/converterror"
	"fjacquet/csv-ofx/internal/currencyutils"
	"fjacquet/csv-ofx/internal/dateutils"
	"fjacquet/csv-ofx/internal/encodingutils"
	"fjacquet/csv-ofx/internal/logging"
	"fjacquet/csv-ofx/internal/models"
)

var log = logging.NewLogrusAdapter("info", "text")

// SetLogger sets a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// DefaultSkipRows matches the usual single header line of bank exports.
const DefaultSkipRows = 1

// Options configures a load pass.
type Options struct {
	Columns    models.ColumnMap
	SkipRows   int    // leading lines to discard, header included
	Encoding   string // IANA encoding name; empty means UTF-8
	DateLayout string // Go reference layout; empty triggers auto-detection
	Delimiter  rune   // cell delimiter; zero means comma
	Lenient    bool   // skip unparseable rows instead of failing
}

// Validate checks the option set eagerly, before any file is touched.
func (o Options) Validate() error {
	if err := o.Columns.Validate(); err != nil {
		return err
	}
	if o.SkipRows < 0 {
		return &converterror.ConfigError{
			Field:  "skiprows",
			Reason: fmt.Sprintf("must not be negative, got %d", o.SkipRows),
		}
	}
	if _, err := encodingutils.Lookup(o.Encoding); err != nil {
		return &converterror.ConfigError{
			Field:  "encoding",
			Reason: err.Error(),
		}
	}
	return nil
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Load reads and parses the CSV file at path.
func Load(path string, opts Options) ([]models.Transaction, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &converterror.InputError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	transactions, err := Parse(file, opts)
	if err != nil {
		var rowErr *converterror.RowParseError
		var cfgErr *converterror.ConfigError
		if errors.As(err, &rowErr) || errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &converterror.InputError{Path: path, Err: err}
	}
	return transactions, nil
}

// rawRow is one CSV record together with its 1-based line number in the raw
// file, skipped lines included.
type rawRow struct {
	line  int
	cells []string
}

// Parse reads delimited text from r and converts every non-skipped, non-blank
// row into a transaction. Rows keep their file order.
func Parse(r io.Reader, opts Options) ([]models.Transaction, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	decoded, err := encodingutils.NewReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input as %s: %w", opts.Encoding, err)
	}

	body, ok := skipLines(string(data), opts.SkipRows)
	if !ok {
		log.Warn("File has fewer lines than skiprows, nothing to convert",
			logging.Field{Key: "skiprows", Value: opts.SkipRows})
		return []models.Transaction{}, nil
	}

	rows, err := readRows(body, opts)
	if err != nil {
		return nil, err
	}

	layout := opts.DateLayout
	if layout == "" {
		layout, err = detectDateLayout(rows, opts.Columns.Date)
		if err != nil {
			return nil, err
		}
		log.Debug("Auto-detected date layout", logging.Field{Key: "layout", Value: layout})
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := convertRow(row, opts.Columns, layout)
		if err != nil {
			if opts.Lenient {
				log.WithError(err).Warn("Skipping unparseable row",
					logging.Field{Key: "line", Value: row.line})
				continue
			}
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	log.Info("Loaded transactions from CSV",
		logging.Field{Key: "count", Value: len(transactions)})
	return transactions, nil
}

// skipLines drops the first n lines of s. The second return value is false
// when the file has no content left after skipping.
func skipLines(s string, n int) (string, bool) {
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			return "", false
		}
		s = s[idx+1:]
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// readRows parses the post-skip section as delimited text. Blank rows are
// dropped; a row with fewer cells than the column map requires is always a
// hard error, lenient mode included, since it points at a configuration or
// export problem rather than a single bad value.
func readRows(body string, opts Options) ([]rawRow, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	minCells := opts.Columns.Max() + 1
	var rows []rawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)
		line += opts.SkipRows

		if isBlank(record) {
			continue
		}
		if len(record) < minCells {
			return nil, &converterror.RowParseError{
				Line:  line,
				Field: "row",
				Value: strings.Join(record, string(opts.delimiter())),
				Err:   fmt.Errorf("row has %d cells, column map requires at least %d", len(record), minCells),
			}
		}
		rows = append(rows, rawRow{line: line, cells: record})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// detectDateLayout runs layout auto-detection over the date column of every
// data row, so a file where only late rows disambiguate day/month still
// detects correctly.
func detectDateLayout(rows []rawRow, dateCol int) (string, error) {
	samples := make([]string, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, row.cells[dateCol])
	}
	layout, err := dateutils.DetectLayout(samples)
	if err != nil {
		return "", &converterror.ConfigError{Field: "date format", Reason: err.Error()}
	}
	return layout, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText trims surrounding whitespace and collapses internal runs to a
// single space, matching how bank exports pad fixed-width description fields.
func cleanText(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

func convertRow(row rawRow, columns models.ColumnMap, layout string) (models.Transaction, error) {
	date, err := dateutils.ParseDate(row.cells[columns.Date], layout)
	if err != nil {
		return models.Transaction{}, &converterror.RowParseError{
			Line:  row.line,
			Field: "date",
			Value: row.cells[columns.Date],
			Err:   err,
		}
	}

	amountCell := row.cells[columns.Amount]
	amount, err := currencyutils.ParseAmount(amountCell)
	if err != nil {
		// Exports leave the amount blank for informational entries; those
		// count as zero.
		if strings.TrimSpace(amountCell) != "" {
			return models.Transaction{}, &converterror.RowParseError{
				Line:  row.line,
				Field: "amount",
				Value: amountCell,
				Err:   err,
			}
		}
	}

	return models.Transaction{
		Date:   date,
		Memo:   cleanText(row.cells[columns.Memo]),
		Title:  cleanText(row.cells[columns.Title]),
		Amount: amount,
	}, nil
}
