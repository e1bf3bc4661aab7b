package commands

import (
	"fmt"

	"github.com/penwyp/go-inbox-csv/internal/data/concat"
	"github.com/spf13/cobra"
)

var (
	concatDir string
	concatOut string
)

var concatCmd = &cobra.Command{
	Use:   "concat",
	Short: "Concatenate every CSV file in a directory",
	Long: `Concatenates all .csv files in --dir, sorted by file name, into one file.
Columns are the union of all headers in first-seen order; missing cells stay empty.
The output defaults to concatenated_csv.csv inside --dir and is never read as input.`,
	RunE: runConcat,
}

func init() {
	rootCmd.AddCommand(concatCmd)

	concatCmd.Flags().StringVar(&concatDir, "dir", defaultConcatDir,
		"Directory holding the CSV files")
	concatCmd.Flags().StringVar(&concatOut, "out", "",
		"Output file (default <dir>/concatenated_csv.csv)")
}

func runConcat(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	output := concatOut
	if output != "" {
		output = expandPath(output)
	}

	result, err := concat.Concat(expandPath(concatDir), output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Concatenated %d files into %s (%d rows, %d columns)\n",
		len(result.Files), result.Path, result.Rows, len(result.Columns))
	return nil
}
