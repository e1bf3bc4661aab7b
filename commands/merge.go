package commands

import (
	"fmt"

	"github.com/penwyp/go-inbox-csv/internal/data/merger"
	"github.com/penwyp/go-inbox-csv/internal/data/scanner"
	"github.com/spf13/cobra"
)

var mergeDir string

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Rebuild all_messages_dataset.csv from existing combined files",
	Long: `Merges the combined_messages.csv of every conversation folder into
all_messages_dataset.csv without re-reading the JSON exports.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeDir, "dir", defaultInboxDir,
		"Inbox directory with one folder per conversation")
}

func runMerge(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	dir := expandPath(mergeDir)
	folders, err := scanner.NewFolderScanner(dir).Folders()
	if err != nil {
		return err
	}

	result, err := merger.Merge(dir, folders)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Dataset written to %s (%d rows from %d folders, %d blank names)\n",
		result.Path, result.Rows, result.Folders, result.BlankRenamed)
	return nil
}
