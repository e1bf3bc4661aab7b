package commands

import (
	"fmt"
	"path/filepath"

	"github.com/penwyp/go-inbox-csv/internal/converter"
	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/core/encoding"
	"github.com/penwyp/go-inbox-csv/internal/data/extractor"
	"github.com/spf13/cobra"
)

var (
	fileInput          string
	fileOutput         string
	fileEmptyContent   string
	fileEncodingPolicy string
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Convert a single export file to a 3-column CSV",
	Long: `Converts one message_*.json export into a Date and Time,Name,Content table.
Messages without text are written as "No content available" unless --empty-content=drop.`,
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)

	fileCmd.Flags().StringVarP(&fileInput, "input", "i", constants.DefaultInputFile,
		"Export file to convert")
	fileCmd.Flags().StringVarP(&fileOutput, "output", "o", constants.DefaultOutputFile,
		"CSV file to write")
	fileCmd.Flags().StringVar(&fileEmptyContent, "empty-content", string(extractor.EmptyContentPlaceholder),
		"Messages without text (drop, placeholder)")
	fileCmd.Flags().StringVar(&fileEncodingPolicy, "on-encoding-error", string(encoding.PolicyKeep),
		"Text that cannot be re-encoded (abort, keep, skip)")
}

func runFile(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	input := expandPath(fileInput)
	output := expandPath(fileOutput)

	config, err := convertConfig(filepath.Dir(input), fileEmptyContent, fileEncodingPolicy)
	if err != nil {
		return err
	}
	c, err := converter.New(config)
	if err != nil {
		return err
	}

	summary, err := c.ConvertFile(input, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "CSV file has been created at %s with the message data (%d rows)\n",
		summary.Output, summary.Rows)
	return nil
}
