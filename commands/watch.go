package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-inbox-csv/internal/converter"
	"github.com/penwyp/go-inbox-csv/internal/data/watcher"
	"github.com/penwyp/go-inbox-csv/internal/presentation/formatter"
	"github.com/penwyp/go-inbox-csv/internal/util"
	"github.com/spf13/cobra"
)

var watchQuiet time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert, then re-convert whenever exports change",
	Long: `Runs a full conversion, then watches the inbox for .json changes and
re-runs the conversion once changes settle. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addConvertFlags(watchCmd)

	watchCmd.Flags().DurationVar(&watchQuiet, "quiet", 2*time.Second,
		"Wait this long after the last change before converting")
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	run := func() error {
		summary, err := c.Run()
		if err != nil {
			return err
		}
		return f.Format(summary)
	}

	// A failed first run is reported but does not stop watching
	if err := run(); err != nil {
		util.LogErrorf("Conversion failed: %v", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Conversion failed: %v\n", err)
	}

	w, err := watcher.New(config.BaseDir)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", config.BaseDir)
	if err := w.Run(ctx, watchQuiet, run); err != nil && ctx.Err() == nil {
		return err
	}
	util.LogInfo("Watch stopped")
	return nil
}
