package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/core/encoding"
	"github.com/penwyp/go-inbox-csv/internal/data/extractor"
	"github.com/penwyp/go-inbox-csv/internal/data/merger"
	"github.com/penwyp/go-inbox-csv/internal/data/parser"
	"github.com/penwyp/go-inbox-csv/internal/data/scanner"
	"github.com/penwyp/go-inbox-csv/internal/presentation/formatter"
	"github.com/penwyp/go-inbox-csv/internal/util"
)

type Config struct {
	BaseDir        string
	Timezone       string
	EmptyContent   extractor.EmptyContent
	EncodingPolicy encoding.Policy
	SkipMerge      bool
}

type Converter struct {
	config    *Config
	scanner   *scanner.FolderScanner
	extractor *extractor.Extractor
}

func New(config *Config) (*Converter, error) {
	tp, err := util.NewTimeProvider(config.Timezone)
	if err != nil {
		return nil, err
	}

	return &Converter{
		config:    config,
		scanner:   scanner.NewFolderScanner(config.BaseDir),
		extractor: extractor.New(tp, config.EmptyContent, config.EncodingPolicy),
	}, nil
}

// Run converts every conversation folder under the base directory, threading
// the unknown-conversation counter from folder to folder, then merges the
// results. The first error aborts the run; folders finished before it keep
// their output.
func (c *Converter) Run() (formatter.RunSummary, error) {
	start := time.Now()
	summary := formatter.RunSummary{RunID: uuid.NewString(), BaseDir: c.config.BaseDir}
	runField := util.Field{Key: "run_id", Value: summary.RunID}
	util.LogInfo("Starting conversion", runField, util.Field{Key: "dir", Value: c.config.BaseDir})

	folders, err := c.scanner.Folders()
	if err != nil {
		return summary, err
	}
	util.LogInfof("Found %d conversation folders", len(folders))

	unknownCount := 0
	for _, folder := range folders {
		var folderSummary formatter.FolderSummary
		folderSummary, unknownCount, err = c.ProcessFolder(folder, unknownCount)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("folder %s: %w", folder, err)
		}
		summary.Folders = append(summary.Folders, folderSummary)
	}

	if !c.config.SkipMerge {
		result, err := merger.Merge(c.config.BaseDir, folders)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("failed to merge dataset: %w", err)
		}
		summary.Dataset = result.Path
		summary.DatasetRows = result.Rows
	}

	summary.Duration = time.Since(start)
	util.LogInfo("Conversion finished", runField,
		util.Field{Key: "folders", Value: len(summary.Folders)},
		util.Field{Key: "duration", Value: summary.Duration.String()})
	return summary, nil
}

// ProcessFolder regenerates combined_messages.csv for one conversation folder.
// Every existing .csv in the folder is deleted first, so repeated runs over
// the same input produce identical files. It returns the counter value for the
// next folder.
func (c *Converter) ProcessFolder(folderPath string, unknownCount int) (formatter.FolderSummary, int, error) {
	name, next := ConversationName(filepath.Base(folderPath), unknownCount)
	summary := formatter.FolderSummary{
		Folder:       folderPath,
		Conversation: name,
		Output:       filepath.Join(folderPath, constants.CombinedFileName),
	}

	if err := removeCSVFiles(folderPath); err != nil {
		return summary, unknownCount, err
	}

	jsonFiles, err := scanner.Files(folderPath, constants.JSONExt)
	if err != nil {
		return summary, unknownCount, err
	}

	out, err := formatter.CreateCSVFile(summary.Output, true)
	if err != nil {
		return summary, unknownCount, err
	}

	stats, err := c.extractFiles(jsonFiles, name, out)
	if err != nil {
		out.Close()
		os.Remove(summary.Output)
		return summary, unknownCount, err
	}
	if err := out.Close(); err != nil {
		return summary, unknownCount, err
	}

	summary.Files = len(jsonFiles)
	applyStats(&summary, stats)
	util.LogInfof("CSV file has been created at %s", summary.Output)
	return summary, next, nil
}

// ConvertFile writes one export file as a 3-column table without the
// conversation column.
func (c *Converter) ConvertFile(jsonPath, csvPath string) (formatter.FolderSummary, error) {
	summary := formatter.FolderSummary{
		Folder: filepath.Dir(jsonPath),
		Files:  1,
		Output: csvPath,
	}

	export, err := parser.ParseFile(jsonPath)
	if err != nil {
		return summary, err
	}
	rows, stats, err := c.extractor.Extract(export, "")
	if err != nil {
		return summary, fmt.Errorf("%s: %w", jsonPath, err)
	}

	out, err := formatter.CreateCSVFile(csvPath, false)
	if err != nil {
		return summary, err
	}
	if err := out.WriteRows(rows); err != nil {
		out.Close()
		return summary, fmt.Errorf("failed to write %s: %w", csvPath, err)
	}
	if err := out.Close(); err != nil {
		return summary, err
	}

	applyStats(&summary, stats)
	util.LogInfof("CSV file has been created at %s with the message data", csvPath)
	return summary, nil
}

func (c *Converter) extractFiles(files []string, conversation string, out *formatter.CSVFile) (extractor.Stats, error) {
	var total extractor.Stats
	for _, path := range files {
		export, err := parser.ParseFile(path)
		if err != nil {
			return total, err
		}

		rows, stats, err := c.extractor.Extract(export, conversation)
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}
		if err := out.WriteRows(rows); err != nil {
			return total, fmt.Errorf("failed to write %s: %w", out.Path(), err)
		}
		total.Add(stats)
	}
	return total, nil
}

func removeCSVFiles(dir string) error {
	files, err := scanner.Files(dir, constants.CSVExt)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("failed to remove %s: %w", f, err)
		}
		util.LogDebugf("Removed stale CSV: %s", f)
	}
	return nil
}

func applyStats(summary *formatter.FolderSummary, stats extractor.Stats) {
	summary.Messages = stats.Messages
	summary.Rows = stats.Rows
	summary.EmptySkipped = stats.EmptySkipped
	summary.EncodingFailures = stats.EncodingFailures
	summary.EncodingSkipped = stats.EncodingSkipped
}
