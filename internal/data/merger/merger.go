package merger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/presentation/formatter"
	"github.com/penwyp/go-inbox-csv/internal/util"
)

// nameColumn is the index of the Name field in the 4-column table
const nameColumn = 1

// Result describes a written master dataset
type Result struct {
	Path         string
	Folders      int // folders that contributed a combined file
	Rows         int
	BlankRenamed int
}

// Merge concatenates the combined_messages.csv of every folder, in the given
// order, into all_messages_dataset.csv at baseDir. Each file's header row is
// dropped and blank names are rewritten to "Unknown". Folders without a
// combined file are skipped.
func Merge(baseDir string, folders []string) (Result, error) {
	result := Result{Path: filepath.Join(baseDir, constants.DatasetFileName)}

	out, err := formatter.CreateCSVFile(result.Path, true)
	if err != nil {
		return result, err
	}

	for _, folder := range folders {
		combined := filepath.Join(folder, constants.CombinedFileName)
		rows, renamed, err := appendFile(out, combined)
		if errors.Is(err, os.ErrNotExist) {
			util.LogDebugf("Skip folder without %s: %s", constants.CombinedFileName, folder)
			continue
		}
		if err != nil {
			out.Close()
			return result, err
		}
		result.Folders++
		result.Rows += rows
		result.BlankRenamed += renamed
	}

	if err := out.Close(); err != nil {
		return result, err
	}

	util.LogInfof("Dataset written to %s: %d rows from %d folders", result.Path, result.Rows, result.Folders)
	return result, nil
}

func appendFile(out *formatter.CSVFile, path string) (rows, renamed int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, renamed, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if len(record) > nameColumn && strings.TrimSpace(record[nameColumn]) == "" {
			record[nameColumn] = constants.UnknownName
			renamed++
		}
		if err := out.WriteRecord(record); err != nil {
			return rows, renamed, fmt.Errorf("failed to write %s: %w", out.Path(), err)
		}
		rows++
	}
	return rows, renamed, nil
}
