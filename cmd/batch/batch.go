// Package batch handles batch processing of files
package batch

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/cmd/common"
	"fjacquet/csv-ofx/cmd/root"
	"fjacquet/csv-ofx/internal/converter"
	"fjacquet/csv-ofx/internal/fileutils"
)

var flags common.ConversionFlags

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every CSV file in a directory to OFX",
	Long: `Convert all CSV files in an input directory to OFX files in an output
directory, one OFX per CSV, using a single shared option set.

Example:
  csv-ofx batch -i exports/ -o statements/ --profile camt-v2`,
	Run: batchFunc,
}

func init() {
	common.AddConversionFlags(Cmd, &flags)
}

func batchFunc(cmd *cobra.Command, args []string) {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		root.Log.Fatal("Input and output directories must be specified")
	}

	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		root.Log.Fatalf("Failed to create output directory: %v", err)
	}

	files, err := fileutils.ListFilesWithExtension(inputDir, ".csv")
	if err != nil {
		root.Log.Fatalf("Failed to read input directory: %v", err)
	}
	if len(files) == 0 {
		root.Log.Warn("No CSV files found in input directory")
		return
	}

	opts, err := common.BuildOptions(cmd, &flags, root.Cfg)
	if err != nil {
		root.Log.Fatalf("%v", err)
	}
	// The debug dump path only makes sense for a single file
	opts.CSVDumpPath = ""

	converted := 0
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		outputFile := filepath.Join(outputDir, name+".ofx")

		summary, err := converter.Convert(file, outputFile, opts)
		if err != nil {
			root.Log.Errorf("Failed to convert %s: %v", file, err)
			continue
		}
		root.Log.Infof("Converted %s: %d transactions", filepath.Base(file), summary.Count)
		converted++
	}

	if converted < len(files) {
		root.Log.Fatalf("Batch completed with errors: %d of %d files converted", converted, len(files))
	}
	root.Log.Infof("Batch processing completed: %d files converted", converted)
}
