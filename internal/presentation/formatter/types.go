package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// FolderSummary describes one converted conversation folder
type FolderSummary struct {
	Folder           string `json:"folder"`
	Conversation     string `json:"conversation"`
	Files            int    `json:"files"`
	Messages         int    `json:"messages"`
	Rows             int    `json:"rows"`
	EmptySkipped     int    `json:"empty_skipped"`
	EncodingFailures int    `json:"encoding_failures"`
	EncodingSkipped  int    `json:"encoding_skipped"`
	Output           string `json:"output"`
}

// RunSummary describes a whole conversion run
type RunSummary struct {
	RunID       string          `json:"run_id,omitempty"`
	BaseDir     string          `json:"base_dir"`
	Folders     []FolderSummary `json:"folders"`
	Dataset     string          `json:"dataset,omitempty"`
	DatasetRows int             `json:"dataset_rows"`
	Duration    time.Duration   `json:"duration_ns"`
}

// Formatter renders a run summary
type Formatter interface {
	Format(summary RunSummary) error
}

// NewFormatter returns the formatter for format ("table" or "json")
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s' (valid: table, json)", format)
	}
}
