package concat

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/data/scanner"
	"github.com/penwyp/go-inbox-csv/internal/util"
)

// Result describes a written concatenation
type Result struct {
	Path    string
	Files   []string
	Columns []string
	Rows    int
}

// Concat joins every .csv file in dir, sorted by file name, into output.
// Columns are the union of all headers in first-seen order; cells for columns
// a file lacks are left empty. output itself is never read as an input.
// An empty output path writes concatenated_csv.csv inside dir.
func Concat(dir, output string) (Result, error) {
	if output == "" {
		output = filepath.Join(dir, constants.ConcatFileName)
	}
	result := Result{Path: output}

	files, err := inputs(dir, output)
	if err != nil {
		return result, err
	}
	result.Files = files

	// First pass: build the column union so rows can be streamed afterwards
	index := make(map[string]int)
	for _, path := range files {
		header, err := readHeader(path)
		if err != nil {
			return result, err
		}
		for _, column := range header {
			if _, ok := index[column]; !ok {
				index[column] = len(result.Columns)
				result.Columns = append(result.Columns, column)
			}
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return result, fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if len(result.Columns) > 0 {
		if err := w.Write(result.Columns); err != nil {
			return result, err
		}
	}

	for _, path := range files {
		rows, err := copyRows(w, path, index, len(result.Columns))
		if err != nil {
			return result, err
		}
		util.LogDebugf("Concatenated %s: %d rows", path, rows)
		result.Rows += rows
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return result, fmt.Errorf("failed to close %s: %w", output, err)
	}

	util.LogInfof("Concatenated %d files into %s: %d rows, %d columns", len(files), output, result.Rows, len(result.Columns))
	return result, nil
}

func inputs(dir, output string) ([]string, error) {
	files, err := scanner.Files(dir, constants.CSVExt)
	if err != nil {
		return nil, err
	}

	outAbs, _ := filepath.Abs(output)
	kept := files[:0]
	for _, f := range files {
		if abs, _ := filepath.Abs(f); abs == outAbs {
			continue
		}
		kept = append(kept, f)
	}
	return kept, nil
}

func readHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header, err := newReader(file).Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: no columns to parse", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	trimBOM(header)

	seen := make(map[string]bool, len(header))
	for _, column := range header {
		if seen[column] {
			return nil, fmt.Errorf("%s: duplicate column %q", path, column)
		}
		seen[column] = true
	}
	return header, nil
}

func copyRows(w *csv.Writer, path string, index map[string]int, width int) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := newReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	trimBOM(header)

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return rows, fmt.Errorf("%s line %d: expected %d fields, saw %d", path, line, len(header), len(record))
		}

		out := make([]string, width)
		for i, value := range record {
			out[index[header[i]]] = value
		}
		if err := w.Write(out); err != nil {
			return rows, err
		}
		rows++
	}
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}

// trimBOM drops a UTF-8 byte order mark from the first column name
func trimBOM(header []string) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
}
