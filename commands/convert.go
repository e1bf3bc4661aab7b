package commands

import (
	"github.com/penwyp/go-inbox-csv/internal/converter"
	"github.com/penwyp/go-inbox-csv/internal/core/encoding"
	"github.com/penwyp/go-inbox-csv/internal/data/extractor"
	"github.com/penwyp/go-inbox-csv/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	inboxDir       string
	emptyContent   string
	encodingPolicy string
	noMerge        bool
	outputFormat   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every conversation folder and merge the dataset",
	Long: `Converts every conversation folder under --dir into combined_messages.csv,
then merges all of them into all_messages_dataset.csv in the inbox directory.
Existing .csv files inside conversation folders are deleted first.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inboxDir, "dir", defaultInboxDir,
		"Inbox directory with one folder per conversation")
	cmd.Flags().StringVar(&emptyContent, "empty-content", string(extractor.EmptyContentDrop),
		"Messages without text (drop, placeholder)")
	cmd.Flags().StringVar(&encodingPolicy, "on-encoding-error", string(encoding.PolicyKeep),
		"Text that cannot be re-encoded (abort, keep, skip)")
	cmd.Flags().BoolVar(&noMerge, "no-merge", false,
		"Skip writing all_messages_dataset.csv")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Summary format (table, json)")
}

func convertConfig(dir, empty, policy string) (*converter.Config, error) {
	mode, err := extractor.ParseEmptyContent(empty)
	if err != nil {
		return nil, err
	}
	p, err := encoding.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	return &converter.Config{
		BaseDir:        expandPath(dir),
		Timezone:       timezone,
		EmptyContent:   mode,
		EncodingPolicy: p,
		SkipMerge:      noMerge,
	}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	config, err := convertConfig(inboxDir, emptyContent, encodingPolicy)
	if err != nil {
		return err
	}
	f, err := formatter.NewFormatter(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	c, err := converter.New(config)
	if err != nil {
		return err
	}
	summary, err := c.Run()
	if err != nil {
		return err
	}
	return f.Format(summary)
}
