package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/penwyp/go-inbox-csv/internal/core/constants"
	"github.com/penwyp/go-inbox-csv/internal/core/model"
)

// RowWriter writes message rows as CSV
type RowWriter struct {
	w                *csv.Writer
	withConversation bool
	rows             int
}

// NewRowWriter creates a writer for the 4-column table, or the 3-column
// single-file table when withConversation is false
func NewRowWriter(w io.Writer, withConversation bool) *RowWriter {
	return &RowWriter{
		w:                csv.NewWriter(w),
		withConversation: withConversation,
	}
}

// WriteHeader writes the column header row
func (rw *RowWriter) WriteHeader() error {
	header := constants.HeaderSingleFile
	if rw.withConversation {
		header = constants.HeaderWithConversation
	}
	return rw.w.Write(header)
}

// WriteRows appends rows
func (rw *RowWriter) WriteRows(rows []model.Row) error {
	for _, row := range rows {
		if err := rw.w.Write(row.Record(rw.withConversation)); err != nil {
			return err
		}
		rw.rows++
	}
	return nil
}

// WriteRecord appends an already split record
func (rw *RowWriter) WriteRecord(record []string) error {
	if err := rw.w.Write(record); err != nil {
		return err
	}
	rw.rows++
	return nil
}

// Rows returns the number of data rows written so far
func (rw *RowWriter) Rows() int {
	return rw.rows
}

// Flush flushes buffered output and reports any write error
func (rw *RowWriter) Flush() error {
	rw.w.Flush()
	return rw.w.Error()
}

// CSVFile is a RowWriter bound to a file it owns
type CSVFile struct {
	*RowWriter
	file *os.File
	path string
}

// CreateCSVFile truncates or creates path and writes the header row
func CreateCSVFile(path string, withConversation bool) (*CSVFile, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	f := &CSVFile{
		RowWriter: NewRowWriter(file, withConversation),
		file:      file,
		path:      path,
	}
	if err := f.WriteHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	return f, nil
}

// Path returns the file path
func (f *CSVFile) Path() string {
	return f.path
}

// Close flushes and closes the file
func (f *CSVFile) Close() error {
	flushErr := f.Flush()
	closeErr := f.file.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", f.path, closeErr)
	}
	return nil
}
