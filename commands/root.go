package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-inbox-csv/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Output related
	timezone string

	rootCmd = &cobra.Command{
		Use:   "go-inbox-csv [flags]",
		Short: "Chat export to CSV converter",
		Long: `go-inbox-csv is a command-line tool for converting exported chat histories into CSV datasets.

Each folder under the inbox directory holds one conversation as message_*.json files.
Every folder gets a combined_messages.csv, and all folders are merged into all_messages_dataset.csv.

Examples:
  go-inbox-csv                                         # Convert ./your_facebook_activity/messages/inbox
  go-inbox-csv --dir /path/to/inbox                    # Convert specified inbox
  go-inbox-csv --dir inbox --timezone UTC              # Render timestamps in UTC
  go-inbox-csv --dir inbox --on-encoding-error skip    # Drop rows whose text cannot be repaired
  go-inbox-csv file --input message_1.json             # Convert a single export file
  go-inbox-csv concat --dir files                      # Concatenate every CSV in ./files
  go-inbox-csv watch --dir inbox                       # Re-convert whenever exports change`,
		RunE: runConvert,
	}
)

const (
	defaultLogFile   = "~/.go-inbox-csv/logs/app.log"
	defaultInboxDir  = "your_facebook_activity/messages/inbox"
	defaultConcatDir = "files"
)

func init() {
	// Bare invocation behaves like convert
	addConvertFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for the Date and Time column (e.g., Asia/Shanghai, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(util.FormatText),
		"Log entry format (text, json)")
}

// setup initializes logging and the timezone shared by all commands
func setup() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	path := expandPath(logFile)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, path, logFormat, debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return util.InitializeTimeProvider(timezone)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
