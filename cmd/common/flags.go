// Package common contains shared functionality for command handlers
package common

import (
	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/internal/config"
	"fjacquet/csv-ofx/internal/converter"
	"fjacquet/csv-ofx/internal/converterror"
	"fjacquet/csv-ofx/internal/csvloader"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/ofxwriter"
	"fjacquet/csv-ofx/internal/profiles"
)

// ConversionFlags holds the per-command flags that shape a conversion run.
type ConversionFlags struct {
	UseCols    []int
	SkipRows   int
	DateFormat string
	Encoding   string
	Delimiter  string
	Profile    string
	Lenient    bool
	CSVDump    string
}

// AddConversionFlags registers the conversion flag set on a command.
func AddConversionFlags(cmd *cobra.Command, f *ConversionFlags) {
	cmd.Flags().IntSliceVarP(&f.UseCols, "usecols", "c", nil,
		"column index numbers of date, memo, title, amount (counting from zero), e.g. -c 1,4,11,14")
	cmd.Flags().IntVarP(&f.SkipRows, "skiprows", "s", csvloader.DefaultSkipRows,
		"number of leading lines to skip, header included")
	cmd.Flags().StringVarP(&f.DateFormat, "parser", "p", "",
		"date format as Go reference layout, e.g. 02.01.2006 (default: auto-detect)")
	cmd.Flags().StringVarP(&f.Encoding, "encoding", "e", "",
		"input file encoding by IANA name, e.g. ISO-8859-1 (default: UTF-8)")
	cmd.Flags().StringVar(&f.Delimiter, "delimiter", "",
		"cell delimiter (default: comma, or the profile's)")
	cmd.Flags().StringVar(&f.Profile, "profile", "",
		"named bank export preset, e.g. camt-v2; explicit flags override it")
	cmd.Flags().BoolVar(&f.Lenient, "lenient", false,
		"skip unparseable rows with a warning instead of failing")
	cmd.Flags().StringVar(&f.CSVDump, "csv", "",
		"also write the normalized transactions to this CSV file")
}

// BuildOptions resolves the effective conversion options: configuration
// defaults first, then the selected profile, then explicit flags.
func BuildOptions(cmd *cobra.Command, f *ConversionFlags, cfg *config.Config) (converter.Options, error) {
	load := csvloader.Options{
		SkipRows:   cfg.CSV.SkipRows,
		Encoding:   cfg.CSV.Encoding,
		DateLayout: cfg.CSV.DateFormat,
		Delimiter:  []rune(cfg.CSV.Delimiter)[0],
	}

	haveColumns := false
	if f.Profile != "" {
		available, err := profiles.Load(cfg.Profiles.Path)
		if err != nil {
			return converter.Options{}, err
		}
		profile, err := available.Get(f.Profile)
		if err != nil {
			return converter.Options{}, err
		}
		if err := profile.Apply(&load); err != nil {
			return converter.Options{}, err
		}
		haveColumns = len(profile.UseCols) > 0
	}

	if cmd.Flags().Changed("usecols") {
		columns, err := models.NewColumnMap(f.UseCols)
		if err != nil {
			return converter.Options{}, err
		}
		load.Columns = columns
		haveColumns = true
	}
	if !haveColumns {
		return converter.Options{}, &converterror.ConfigError{
			Field:  "usecols",
			Reason: "column indices are required; pass --usecols or --profile",
		}
	}

	if cmd.Flags().Changed("skiprows") {
		load.SkipRows = f.SkipRows
	}
	if cmd.Flags().Changed("parser") {
		load.DateLayout = f.DateFormat
	}
	if cmd.Flags().Changed("encoding") {
		load.Encoding = f.Encoding
	}
	if cmd.Flags().Changed("delimiter") {
		if len([]rune(f.Delimiter)) != 1 {
			return converter.Options{}, &converterror.ConfigError{
				Field:  "delimiter",
				Reason: "must be a single character",
			}
		}
		load.Delimiter = []rune(f.Delimiter)[0]
	}
	load.Lenient = f.Lenient

	if err := load.Validate(); err != nil {
		return converter.Options{}, err
	}

	return converter.Options{
		Load: load,
		OFX: ofxwriter.Options{
			Currency:    cfg.OFX.Currency,
			BankID:      cfg.OFX.BankID,
			AccountID:   cfg.OFX.AccountID,
			AccountType: cfg.OFX.AccountType,
			Org:         cfg.OFX.Org,
			FID:         cfg.OFX.FID,
		},
		CSVDumpPath: f.CSVDump,
	}, nil
}
