// Package converter orchestrates the two passes of a conversion run: load the
// CSV export, then serialize the transactions to OFX.
package converter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/csv-ofx/internal/converterror"
	"fjacquet/csv-ofx/internal/csvloader"
	"fjacquet/csv-ofx/internal/fileutils"
	"fjacquet/csv-ofx/internal/logging"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/ofxwriter"
)

var log = logging.NewLogrusAdapter("info", "text")

// SetLogger sets a configured logger for this package and its collaborators.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
	csvloader.SetLogger(logger)
	ofxwriter.SetLogger(logger)
}

// Options bundles everything one conversion run needs.
type Options struct {
	Load csvloader.Options
	OFX  ofxwriter.Options

	// CSVDumpPath, when set, additionally writes the normalized transactions
	// to a CSV file for inspection.
	CSVDumpPath string
}

// Convert runs one load pass and one write pass. It returns the statement
// summary of the converted transactions; any error aborts the run without
// leaving a partial output file.
func Convert(inputPath, outputPath string, opts Options) (models.StatementSummary, error) {
	log.Info("Converting CSV to OFX",
		logging.Field{Key: "input", Value: inputPath},
		logging.Field{Key: "output", Value: outputPath})

	transactions, err := csvloader.Load(inputPath, opts.Load)
	if err != nil {
		return models.StatementSummary{}, err
	}

	summary := models.Summarize(transactions)
	if summary.Count == 0 {
		log.Warn("No transactions found, writing empty statement")
	}

	if err := ofxwriter.Write(transactions, outputPath, opts.OFX); err != nil {
		return models.StatementSummary{}, err
	}

	if opts.CSVDumpPath != "" {
		if err := ExportCSV(transactions, opts.CSVDumpPath); err != nil {
			return models.StatementSummary{}, err
		}
	}

	log.Info("Conversion completed",
		logging.Field{Key: "transactions", Value: summary.Count},
		logging.Field{Key: "balance", Value: summary.Balance.StringFixed(2)})
	return summary, nil
}

// ExportCSV writes the normalized transactions to a CSV file for inspection,
// in the standard record layout.
func ExportCSV(transactions []models.Transaction, csvFile string) error {
	records := make([]*models.TransactionRecord, 0, len(transactions))
	for _, tx := range transactions {
		record := models.NewTransactionRecord(tx)
		records = append(records, &record)
	}

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		return &converterror.OutputError{Path: csvFile, Err: err}
	}
	file, err := os.Create(csvFile)
	if err != nil {
		return &converterror.OutputError{Path: csvFile, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close CSV export file")
		}
	}()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return &converterror.OutputError{Path: csvFile, Err: fmt.Errorf("error writing CSV: %w", err)}
	}

	log.Info("Wrote normalized transaction CSV",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(records)})
	return nil
}
