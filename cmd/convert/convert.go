// Package convert implements the single-file CSV to OFX conversion command
package convert

import (
	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/cmd/common"
	"fjacquet/csv-ofx/cmd/root"
	"fjacquet/csv-ofx/internal/converter"
)

var flags common.ConversionFlags

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert [csvfile]",
	Short: "Convert one CSV bank export to an OFX file",
	Long: `Convert a CSV file exported from your credit or bank account to OFX.

The four semantic columns (date, memo, title, amount) are selected by
position via --usecols or a named --profile.

Example:
  csv-ofx convert export.csv -c 1,4,11,14 -s 1 -e ISO-8859-1 -o statement.ofx`,
	Args: cobra.MaximumNArgs(1),
	Run:  convertFunc,
}

func init() {
	common.AddConversionFlags(Cmd, &flags)
}

func convertFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		root.Log.Fatal("No input file given; pass it as an argument or with --input")
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = root.Cfg.OFX.Output
	}

	opts, err := common.BuildOptions(cmd, &flags, root.Cfg)
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	summary, err := converter.Convert(input, output, opts)
	if err != nil {
		root.Log.Fatalf("Conversion failed: %v", err)
	}

	root.Log.Infof("Successfully converted %d transactions to %s (balance %s)",
		summary.Count, output, summary.Balance.StringFixed(2))
}
